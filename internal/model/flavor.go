// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Flavor represents one ice-cream flavor row in the flavors table.
//
// JSON field names follow the column names (snake_case), so the API shape is
// exactly the row shape:
//
//	{"id": 1, "name": "Coconut", "updated_at": "2026-10-19T09:00:00Z"}
//
// WHY int64 FOR ID?
// The id is a database-assigned serial. Postgres SERIAL is a 32-bit integer and
// SQLite rowids are 64-bit, so int64 holds both without overflow.
//
// UpdatedAt is set by the column default when the row is inserted.
// Renaming a flavor does NOT touch it.
type Flavor struct {
	ID        int64     `json:"id"         db:"id"`
	Name      string    `json:"name"       db:"name"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SeedFlavors are the names inserted, in this order, every time the schema is reset.
var SeedFlavors = []string{"Coconut", "Mint", "Honeyberry", "Choco"}
