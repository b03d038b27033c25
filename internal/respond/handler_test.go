package respond

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yourusername/staticd/internal/mimetype"
	"github.com/yourusername/staticd/internal/rootfs"
	"github.com/yourusername/staticd/internal/wire"
)

func setupRoot(t *testing.T) *rootfs.Root {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>hi</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	root, err := rootfs.NewRoot(dir)
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func TestHandleGetIndex(t *testing.T) {
	root := setupRoot(t)
	req := &wire.Request{Method: wire.MethodGET, Target: "/", Header: wire.NewHeader()}
	resp := Handle(req, root, mimetype.Default())
	if resp.Status != wire.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Status)
	}
	if string(resp.Body) != "<h1>hi</h1>" {
		t.Fatalf("body = %q", resp.Body)
	}
	if resp.Header.Get("Content-Type") != "text/html" {
		t.Fatalf("content-type = %q", resp.Header.Get("Content-Type"))
	}
	if resp.Header.Get("Content-Length") != "11" {
		t.Fatalf("content-length = %q", resp.Header.Get("Content-Length"))
	}
}

func TestHandleHeadMatchesGetHeaders(t *testing.T) {
	root := setupRoot(t)
	getReq := &wire.Request{Method: wire.MethodGET, Target: "/index.html", Header: wire.NewHeader()}
	headReq := &wire.Request{Method: wire.MethodHEAD, Target: "/index.html", Header: wire.NewHeader()}

	getResp := Handle(getReq, root, mimetype.Default())
	headResp := Handle(headReq, root, mimetype.Default())

	if headResp.Status != getResp.Status {
		t.Fatalf("status mismatch: head=%d get=%d", headResp.Status, getResp.Status)
	}
	if headResp.Header.Get("Content-Length") != getResp.Header.Get("Content-Length") {
		t.Fatalf("content-length mismatch")
	}
	if len(headResp.Body) != 0 {
		t.Fatalf("HEAD body = %q, want empty", headResp.Body)
	}
}

func TestHandlePathEscapeIs404(t *testing.T) {
	root := setupRoot(t)
	req := &wire.Request{Method: wire.MethodGET, Target: "/../etc/passwd", Header: wire.NewHeader()}
	resp := Handle(req, root, mimetype.Default())
	if resp.Status != wire.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Status)
	}
}

func TestHandleUnimplementedMethod(t *testing.T) {
	root := setupRoot(t)
	req := &wire.Request{Method: wire.MethodPOST, Target: "/", Header: wire.NewHeader()}
	resp := Handle(req, root, mimetype.Default())
	if resp.Status != wire.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", resp.Status)
	}
}
