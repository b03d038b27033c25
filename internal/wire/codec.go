// Package wire implements the HTTP/1.1 wire codec: bidirectional
// conversion between raw bytes and the Request/Response values used by
// the rest of the server. It knows nothing about sockets, TLS, or
// files — only the grammar on the wire.
package wire

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxHeadSize is the largest a request head (start line + headers, up
// to and including the terminating CRLFCRLF) may be before the
// connection responds 431 and gives up.
const MaxHeadSize = 16 * 1024

const crlf = "\r\n"
const headEndMarker = "\r\n\r\n"

// imfFixdate is the RFC 7231 §7.1.1.1 IMF-fixdate layout, e.g.
// "Sun, 06 Nov 1994 08:49:37 GMT".
const imfFixdate = "Mon, 02 Jan 2006 15:04:05 GMT"

// ProductName/ProductVersion populate the Server response header when
// the handler hasn't already set one.
const (
	ProductName    = "staticd"
	ProductVersion = "1.0"
)

// HeadEnd scans buf for the CRLFCRLF that terminates a request head.
// It returns the index of the first byte of the terminator and true
// if found; otherwise false, meaning the caller should keep reading.
func HeadEnd(buf []byte) (int, bool) {
	i := strings.Index(string(buf), headEndMarker)
	if i < 0 {
		return 0, false
	}
	return i, true
}

// DecodeHead parses the start line and headers out of head, which must
// be exactly the bytes up to (not including) the terminating
// CRLFCRLF. The returned Request's Body is always nil; the caller is
// responsible for reading Content-Length bytes of body separately and
// attaching them.
func DecodeHead(head []byte) (*Request, error) {
	if !utf8.Valid(head) {
		return nil, ErrInvalidUTF8
	}

	lines := strings.Split(string(head), crlf)
	if len(lines) == 0 {
		return nil, ErrMalformedStartLine
	}

	startLine := collapseSpaces(strings.TrimSpace(lines[0]))
	tokens := strings.Fields(startLine)
	if len(tokens) != 3 {
		return nil, ErrMalformedStartLine
	}

	method := parseMethod(tokens[0])
	if method == MethodUnknown {
		return nil, ErrUnknownMethod
	}

	version := parseVersion(tokens[2])
	if version == VersionUnknown {
		return nil, ErrUnsupportedVersion
	}

	header := NewHeader()
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			return nil, ErrMalformedHeader
		}
		name := strings.TrimSpace(line[:colon])
		value := strings.TrimSpace(line[colon+1:])
		header.Add(name, value)
	}

	return &Request{
		Method:  method,
		Target:  tokens[1],
		Version: version,
		Header:  header,
	}, nil
}

// ContentLength returns the declared Content-Length of req, or 0 if
// absent or unparsable (unparsable is treated as "no body" rather than
// an error — chunked transfer encoding is out of scope).
func ContentLength(req *Request) int {
	raw := req.Header.Get("Content-Length")
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// collapseSpaces reduces runs of ASCII spaces/tabs inside s to a
// single space, used on the start line only (header values keep their
// internal whitespace verbatim).
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' {
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteByte(c)
	}
	return b.String()
}

// Encode serializes resp as a complete HTTP/1.1 response: status line,
// headers, blank line, body. It injects Date and Server headers when
// the caller hasn't already set them.
func Encode(resp *Response) []byte {
	if resp.Header == nil {
		resp.Header = NewHeader()
	}
	if !resp.Header.Has("Date") {
		resp.Header.Set("Date", time.Now().UTC().Format(imfFixdate))
	}
	if !resp.Header.Has("Server") {
		resp.Header.Set("Server", ProductName+"/"+ProductVersion)
	}

	var b strings.Builder
	b.WriteString("HTTP/1.1 ")
	b.WriteString(strconv.Itoa(resp.Status))
	b.WriteByte(' ')
	b.WriteString(ReasonPhrase(resp.Status))
	b.WriteString(crlf)

	resp.Header.VisitAll(func(name, value string) {
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString(crlf)
	})
	b.WriteString(crlf)

	out := make([]byte, 0, b.Len()+len(resp.Body))
	out = append(out, b.String()...)
	out = append(out, resp.Body...)
	return out
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
