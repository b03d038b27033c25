// Package mimetype implements the path -> media-type lookup the core
// treats as an external collaborator rather than a built-in concern.
package mimetype

import (
	"mime"
	"path/filepath"
	"strings"
)

// DefaultMediaType is used when the extension is unrecognized.
const DefaultMediaType = "application/octet-stream"

// commonTypes seeds extensions the standard library's built-in table
// (populated from the host's /etc/mime.types on some platforms, and
// a small hardcoded table on others) doesn't reliably cover the same
// way on every OS, keeping static-file serving deterministic across
// build environments.
var commonTypes = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".txt":  "text/plain",
	".xml":  "application/xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".pdf":  "application/pdf",
	".woff": "font/woff",
	".woff2": "font/woff2",
}

// Lookup is the path -> media-type function signature the core
// consumes from this collaborator.
type Lookup func(path string) string

// Default returns the built-in Lookup implementation: a small fixed
// table for the extensions static sites use most, falling back to the
// standard library's mime.TypeByExtension, and finally to
// DefaultMediaType.
func Default() Lookup {
	return func(path string) string {
		ext := strings.ToLower(filepath.Ext(path))
		if mt, ok := commonTypes[ext]; ok {
			return mt
		}
		if mt := mime.TypeByExtension(ext); mt != "" {
			if i := strings.IndexByte(mt, ';'); i >= 0 {
				mt = mt[:i]
			}
			return strings.TrimSpace(mt)
		}
		return DefaultMediaType
	}
}
