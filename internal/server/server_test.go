package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/acme-ice-cream/internal/config"
	"github.com/sakif/acme-ice-cream/internal/model"
)

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.DatabaseURL = "sqlite::memory:"
	for _, m := range mutate {
		m(&cfg)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func listFlavors(t *testing.T, base string) []model.Flavor {
	t.Helper()
	res := do(t, http.MethodGet, base+"/api/flavors", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var flavors []model.Flavor
	require.NoError(t, json.NewDecoder(res.Body).Decode(&flavors))
	return flavors
}

func flavorNames(flavors []model.Flavor) []string {
	out := make([]string, 0, len(flavors))
	for _, f := range flavors {
		out = append(out, f.Name)
	}
	return out
}

func errorMessage(t *testing.T, res *http.Response) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body.Error
}

func TestStartupSeedsFlavors(t *testing.T) {
	ts := newTestServer(t)

	flavors := listFlavors(t, ts.URL)
	assert.ElementsMatch(t, []string{"Coconut", "Mint", "Honeyberry", "Choco"}, flavorNames(flavors))
}

func TestCreateFlavor(t *testing.T) {
	ts := newTestServer(t)

	res := do(t, http.MethodPost, ts.URL+"/api/flavors", `{"name":"Vanilla"}`)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var created model.Flavor
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	assert.Equal(t, int64(5), created.ID)
	assert.Equal(t, "Vanilla", created.Name)
	assert.False(t, created.UpdatedAt.IsZero())

	count := 0
	for _, f := range listFlavors(t, ts.URL) {
		if f.Name == "Vanilla" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestCreateFlavor_MissingName(t *testing.T) {
	ts := newTestServer(t)

	res := do(t, http.MethodPost, ts.URL+"/api/flavors", `{}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Name is required", errorMessage(t, res))

	assert.Len(t, listFlavors(t, ts.URL), 4)
}

func TestUpdateFlavor(t *testing.T) {
	ts := newTestServer(t)
	before := listFlavors(t, ts.URL)

	res := do(t, http.MethodPut, ts.URL+"/api/flavors/1", `{"name":"Toasted Coconut"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var updated model.Flavor
	require.NoError(t, json.NewDecoder(res.Body).Decode(&updated))
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, "Toasted Coconut", updated.Name)

	after := listFlavors(t, ts.URL)
	require.Len(t, after, len(before))
	for i := range after {
		if after[i].ID == 1 {
			assert.Equal(t, "Toasted Coconut", after[i].Name)
			continue
		}
		assert.Equal(t, before[i].Name, after[i].Name)
	}
}

func TestUpdateFlavor_NotFound(t *testing.T) {
	ts := newTestServer(t)

	res := do(t, http.MethodPut, ts.URL+"/api/flavors/999", `{"name":"X"}`)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Flavor not found", errorMessage(t, res))

	assert.Equal(t, []string{"Coconut", "Mint", "Honeyberry", "Choco"}, flavorNames(listFlavors(t, ts.URL)))
}

func TestUpdateFlavor_MissingName(t *testing.T) {
	ts := newTestServer(t)

	res := do(t, http.MethodPut, ts.URL+"/api/flavors/1", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Coconut", listFlavors(t, ts.URL)[0].Name)
}

func TestDeleteFlavor(t *testing.T) {
	ts := newTestServer(t)

	res := do(t, http.MethodDelete, ts.URL+"/api/flavors/2", "")
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	body, _ := io.ReadAll(res.Body)
	assert.Empty(t, body)

	assert.Equal(t, []string{"Coconut", "Honeyberry", "Choco"}, flavorNames(listFlavors(t, ts.URL)))

	res = do(t, http.MethodDelete, ts.URL+"/api/flavors/2", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Flavor not found", errorMessage(t, res))
}

func TestDeleteFlavor_NotFound(t *testing.T) {
	ts := newTestServer(t)

	res := do(t, http.MethodDelete, ts.URL+"/api/flavors/999", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Len(t, listFlavors(t, ts.URL), 4)
}

func TestLandingPage(t *testing.T) {
	t.Run("embedded", func(t *testing.T) {
		ts := newTestServer(t)

		res := do(t, http.MethodGet, ts.URL+"/", "")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, res.Header.Get("Content-Type"), "text/html")
	})

	t.Run("from disk", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "landing.html")
		require.NoError(t, os.WriteFile(path, []byte("<p>scoops</p>"), 0o644))

		ts := newTestServer(t, func(c *config.Config) { c.IndexPath = path })

		res := do(t, http.MethodGet, ts.URL+"/", "")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		body, _ := io.ReadAll(res.Body)
		assert.Equal(t, "<p>scoops</p>", string(body))
	})
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t)

	res := do(t, http.MethodGet, ts.URL+"/api/flavors", "")
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}

func TestNew_UnreachableDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.DatabaseURL = "sqlite://" + filepath.Join(t.TempDir(), "missing-dir", "flavors.db")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := New(context.Background(), cfg, logger)
	assert.Error(t, err)
}

func TestStart_StopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.DatabaseURL = "sqlite::memory:"
	cfg.Port = 0 // any free port

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
