// Package handler contains HTTP request handlers for the flavors service.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming HTTP request (path values, body)
// 2. Call the service layer
// 3. Write the HTTP response (status code, headers, body)
//
// Handlers should NOT contain business logic — they are the glue between HTTP and the app.
package handler

import (
	"io/fs"
	"log/slog"
	"net/http"
)

// LandingHandler serves the static landing page at "/".
//
// The page is one fixed HTML file read from fsys on every request, so an
// operator can swap the file on disk without a restart when fsys is an
// os.DirFS. By default fsys is the copy embedded in the binary (package web).
type LandingHandler struct {
	fsys   fs.FS
	name   string
	logger *slog.Logger
}

// NewLandingHandler creates a LandingHandler that serves name from fsys.
func NewLandingHandler(fsys fs.FS, name string, logger *slog.Logger) *LandingHandler {
	return &LandingHandler{
		fsys:   fsys,
		name:   name,
		logger: logger,
	}
}

// HandleIndex serves the landing page.
//
// http.ServeFileFS sets Content-Type from the extension and answers
// conditional requests. A missing file is a deployment problem and gets the
// file server's plain 404.
func (h *LandingHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, h.fsys, h.name)
}
