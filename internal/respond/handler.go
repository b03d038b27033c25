// Package respond implements the response handler: per-method
// dispatch plus error-response synthesis, grounded on twebd's
// adapter/response.rs and response/mod.rs ("match request.method").
package respond

import (
	"github.com/yourusername/staticd/internal/fileresponder"
	"github.com/yourusername/staticd/internal/mimetype"
	"github.com/yourusername/staticd/internal/rootfs"
	"github.com/yourusername/staticd/internal/wire"
)

// Handle builds a complete response for req. It never returns an
// error — every failure path (path escape, missing file, unreadable
// file, unimplemented method) is itself a valid HTTP response.
func Handle(req *wire.Request, root *rootfs.Root, lookup mimetype.Lookup) *wire.Response {
	switch req.Method {
	case wire.MethodGET:
		return get(req.Target, root, lookup)
	case wire.MethodHEAD:
		resp := get(req.Target, root, lookup)
		resp.StripBodyKeepLength()
		return resp
	default:
		return notImplemented()
	}
}

func get(target string, root *rootfs.Root, lookup mimetype.Lookup) *wire.Response {
	path, err := root.Resolve(target)
	if err != nil {
		// Both ErrNotFound and ErrPathEscape surface as 404: escape
		// must not be distinguishable from a missing file.
		resp := wire.NewResponse()
		resp.Status = wire.StatusNotFound
		resp.SetPlainTextBody(wire.ReasonPhrase(wire.StatusNotFound))
		return resp
	}
	return fileresponder.Respond(path, lookup)
}

func notImplemented() *wire.Response {
	resp := wire.NewResponse()
	resp.Status = wire.StatusNotImplemented
	resp.SetPlainTextBody(wire.ReasonPhrase(wire.StatusNotImplemented))
	return resp
}

// ErrorResponse builds a synthetic response for a decode-time failure,
// used by the connection state machine before a Request value even
// exists (malformed start line, oversize head, ...).
func ErrorResponse(status int) *wire.Response {
	resp := wire.NewResponse()
	resp.Status = status
	resp.SetPlainTextBody(wire.ReasonPhrase(status))
	return resp
}

// StatusForDecodeError maps a wire decode error to the response status
// the connection should emit, resolved
// pinned down by the concrete S3/S4 scenarios in §8: an unrecognized
// method token is a malformed request — 400 — while a recognized but
// unsupported method, e.g. POST, is a handler-level 501).
func StatusForDecodeError(err error) int {
	switch err {
	case wire.ErrUnsupportedVersion:
		return wire.StatusHTTPVersionNotSupp
	case wire.ErrMalformedStartLine, wire.ErrUnknownMethod, wire.ErrMalformedHeader, wire.ErrInvalidUTF8:
		return wire.StatusBadRequest
	default:
		return wire.StatusBadRequest
	}
}
