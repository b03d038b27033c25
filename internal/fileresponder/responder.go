// Package fileresponder builds an HTTP response from a resolved
// filesystem path, grounded on twebd's
// FileReader (srv/file.rs) and response/get.rs.
package fileresponder

import (
	"os"
	"strconv"

	"github.com/yourusername/staticd/internal/mimetype"
	"github.com/yourusername/staticd/internal/wire"
)

// Respond opens and reads path, returning a 200 response with
// Content-Type (via lookup) and Content-Length set, or a 500 response
// with a short category description if the file can't be read.
//
// path is assumed to already be validated as lying inside the jailed
// root; Respond does not re-check that.
func Respond(path string, lookup mimetype.Lookup) *wire.Response {
	data, err := os.ReadFile(path)
	if err != nil {
		return errorResponse(err)
	}

	resp := wire.NewResponse()
	resp.Header.Set("Content-Type", lookup(path))
	resp.Header.Set("Content-Length", strconv.Itoa(len(data)))
	resp.Body = data
	return resp
}

// errorResponse maps a filesystem error to a 500 response whose body
// names a category, never the raw OS error text (which can leak host
// paths or permission details).
func errorResponse(err error) *wire.Response {
	resp := wire.NewResponse()
	resp.Status = wire.StatusInternalServerError
	category := "file read error"
	switch {
	case os.IsPermission(err):
		category = "permission denied"
	case os.IsNotExist(err):
		category = "file not found"
	}
	resp.SetPlainTextBody(category)
	return resp
}
