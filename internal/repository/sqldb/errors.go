package sqldb

import (
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Code returns the Postgres SQLSTATE code carried by err, or "" when err did
// not come from lib/pq. Codes are for operator logs only; clients always get
// a generic 500 for driver errors.
//
//	42P01  undefined_table
//	23502  not_null_violation
//	22001  string_data_right_truncation (name longer than 100 chars)
//	08006  connection_failure
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// timestamp scans a timestamp column regardless of how the driver hands it over.
//
// lib/pq returns TIMESTAMPTZ as time.Time. modernc.org/sqlite only converts
// text to time.Time when it can see a DATETIME column type; for values that
// come back through RETURNING it may hand over the raw CURRENT_TIMESTAMP text
// ("2006-01-02 15:04:05", always UTC) instead.
type timestamp struct {
	t *time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*ts.t = time.Time{}
		return nil
	case time.Time:
		*ts.t = v
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case int64:
		*ts.t = time.Unix(v, 0).UTC()
		return nil
	}
	return fmt.Errorf("sqldb: cannot scan %T into a timestamp", src)
}

func (ts timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts.t = t
			return nil
		}
	}
	return fmt.Errorf("sqldb: unrecognised timestamp %q", s)
}
