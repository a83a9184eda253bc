// Package web holds the landing page compiled into the binary.
package web

import "embed"

// IndexFile is the name of the landing page inside FS.
const IndexFile = "index.html"

//go:embed index.html
var FS embed.FS
