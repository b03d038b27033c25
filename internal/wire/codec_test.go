package wire

import (
	"strings"
	"testing"
)

func TestDecodeHeadBasicGet(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost: x\r\n"
	req, err := DecodeHead([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeHead: %v", err)
	}
	if req.Method != MethodGET {
		t.Fatalf("method = %v, want GET", req.Method)
	}
	if req.Target != "/" {
		t.Fatalf("target = %q, want /", req.Target)
	}
	if req.Version != VersionHTTP11 {
		t.Fatalf("version = %v, want HTTP/1.1", req.Version)
	}
	if got := req.Header.Get("Host"); got != "x" {
		t.Fatalf("Host = %q, want x", got)
	}
}

func TestDecodeHeadUnknownMethod(t *testing.T) {
	_, err := DecodeHead([]byte("PATCHX / HTTP/1.1"))
	if err != ErrUnknownMethod {
		t.Fatalf("err = %v, want ErrUnknownMethod", err)
	}
}

func TestDecodeHeadMalformedStartLine(t *testing.T) {
	_, err := DecodeHead([]byte("GET /"))
	if err != ErrMalformedStartLine {
		t.Fatalf("err = %v, want ErrMalformedStartLine", err)
	}
}

func TestDecodeHeadUnsupportedVersion(t *testing.T) {
	_, err := DecodeHead([]byte("GET / HTTP/2.0"))
	if err != ErrUnsupportedVersion {
		t.Fatalf("err = %v, want ErrUnsupportedVersion", err)
	}
}

func TestDecodeHeadMalformedHeader(t *testing.T) {
	_, err := DecodeHead([]byte("GET / HTTP/1.1\r\nNotAHeader"))
	if err != ErrMalformedHeader {
		t.Fatalf("err = %v, want ErrMalformedHeader", err)
	}
}

func TestDecodeHeadDuplicateHeadersJoin(t *testing.T) {
	req, err := DecodeHead([]byte("GET / HTTP/1.1\r\nX-Tag: a\r\nX-Tag: b\r\n"))
	if err != nil {
		t.Fatalf("DecodeHead: %v", err)
	}
	if got := req.Header.Get("X-Tag"); got != "a,b" {
		t.Fatalf("X-Tag = %q, want a,b", got)
	}
}

func TestHeadEnd(t *testing.T) {
	buf := []byte("GET / HTTP/1.1\r\nHost: x\r\n\r\nbody")
	idx, ok := HeadEnd(buf)
	if !ok {
		t.Fatal("HeadEnd: not found")
	}
	head := buf[:idx]
	if !strings.Contains(string(head), "Host: x") {
		t.Fatalf("head = %q", head)
	}
	rest := buf[idx+4:]
	if string(rest) != "body" {
		t.Fatalf("rest = %q, want body", rest)
	}
}

func TestEncodeInjectsDateAndServer(t *testing.T) {
	resp := NewResponse()
	resp.SetPlainTextBody("hi")
	out := Encode(resp)
	s := string(out)
	if !strings.HasPrefix(s, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("status line wrong: %q", s)
	}
	if !strings.Contains(s, "Date: ") {
		t.Fatalf("missing Date header: %q", s)
	}
	if !strings.Contains(s, "Server: staticd/") {
		t.Fatalf("missing Server header: %q", s)
	}
	if !strings.HasSuffix(s, "hi") {
		t.Fatalf("missing body: %q", s)
	}
}

func TestContentLength(t *testing.T) {
	req, _ := DecodeHead([]byte("POST / HTTP/1.1\r\nContent-Length: 5\r\n"))
	if n := ContentLength(req); n != 5 {
		t.Fatalf("ContentLength = %d, want 5", n)
	}
}
