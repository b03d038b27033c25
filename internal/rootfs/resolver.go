// Package rootfs resolves an HTTP request target to a canonical
// filesystem path guaranteed to lie inside a jailed server root,
// grounded on twebd's sanitize_uri/absolute_uri
// pair (srv/root.rs, web/http/response/get.rs).
package rootfs

import (
	"errors"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrNotFound means the resolved path does not exist on disk, or the
// target contained a byte sequence (NUL, malformed percent-encoding)
// that can never name a real file.
var ErrNotFound = errors.New("rootfs: not found")

// ErrPathEscape means the target resolved outside root. Callers must
// map this to the same response as ErrNotFound (404, not 403) so a
// client cannot distinguish "missing" from "out of jail".
var ErrPathEscape = errors.New("rootfs: path escapes server root")

// Root is a pre-canonicalized server root directory, computed once at
// startup so every Resolve call reuses it instead of re-walking
// symlinks per request.
type Root struct {
	canonical string
}

// NewRoot canonicalizes dir (resolving symlinks and relative
// components) and returns a Root. dir must already exist and be a
// directory; callers validate that during configuration loading.
func NewRoot(dir string) (*Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	return &Root{canonical: canonical}, nil
}

// String returns the canonical root directory path.
func (r *Root) String() string {
	return r.canonical
}

// Resolve maps target (the path component of a request line, still
// percent-encoded as it came off the wire) to a canonical absolute
// path under r. "/" is substituted with "/index.html" before joining.
func (r *Root) Resolve(target string) (string, error) {
	decoded, err := url.PathUnescape(target)
	if err != nil {
		return "", ErrNotFound
	}
	if strings.ContainsRune(decoded, 0) {
		return "", ErrNotFound
	}

	if decoded == "/" {
		decoded = "/index.html"
	}

	candidate := filepath.Join(r.canonical, filepath.FromSlash(strings.TrimPrefix(decoded, "/")))

	canonical, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return "", ErrNotFound
	}

	if !isUnderRoot(canonical, r.canonical) {
		return "", ErrPathEscape
	}
	return canonical, nil
}

// isUnderRoot reports whether path is root itself or a descendant of
// it, compared component-wise rather than via a raw string prefix
// check (which would wrongly accept "/srv/wwwroot-evil" against root
// "/srv/wwwroot").
func isUnderRoot(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
