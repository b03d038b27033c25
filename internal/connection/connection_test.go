package connection

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/staticd/internal/mimetype"
	"github.com/yourusername/staticd/internal/rootfs"
)

func setupRoot(t *testing.T) *rootfs.Root {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	root, err := rootfs.NewRoot(dir)
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func serveOnPipe(t *testing.T, root *rootfs.Root) (client net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	conn := New(server, root, mimetype.Default(), nil)
	done := make(chan struct{})
	go func() {
		conn.Serve()
		close(done)
	}()
	t.Cleanup(func() {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("Serve did not return")
		}
	})
	return client
}

func TestServeGetIndex(t *testing.T) {
	root := setupRoot(t)
	client := serveOnPipe(t, root)
	defer client.Close()

	fmt.Fprint(client, "GET / HTTP/1.1\r\nHost: x\r\n\r\n")

	reader := bufio.NewReader(client)
	status, _ := reader.ReadString('\n')
	if !strings.Contains(status, "200") {
		t.Fatalf("status line = %q, want 200", status)
	}
}

func TestServeOversizeHeadReturns431(t *testing.T) {
	root := setupRoot(t)
	client := serveOnPipe(t, root)
	defer client.Close()

	go func() {
		fmt.Fprint(client, "GET / HTTP/1.1\r\n")
		huge := strings.Repeat("X-Pad: "+strings.Repeat("a", 200)+"\r\n", 200)
		fmt.Fprint(client, huge)
		// Deliberately never send the terminating CRLFCRLF; the
		// connection must respond 431 once MaxHeadSize is exceeded
		// without waiting for more input.
	}()

	reader := bufio.NewReader(client)
	status, _ := reader.ReadString('\n')
	if !strings.Contains(status, "431") {
		t.Fatalf("status line = %q, want 431", status)
	}
}

func TestServeMalformedRequestReturns400(t *testing.T) {
	root := setupRoot(t)
	client := serveOnPipe(t, root)
	defer client.Close()

	fmt.Fprint(client, "NOTAVERB\r\n\r\n")

	reader := bufio.NewReader(client)
	status, _ := reader.ReadString('\n')
	if !strings.Contains(status, "400") {
		t.Fatalf("status line = %q, want 400", status)
	}
}

func TestServeUnimplementedMethodReturns501(t *testing.T) {
	root := setupRoot(t)
	client := serveOnPipe(t, root)
	defer client.Close()

	fmt.Fprint(client, "POST / HTTP/1.1\r\nHost: x\r\nContent-Length: 0\r\n\r\n")

	reader := bufio.NewReader(client)
	status, _ := reader.ReadString('\n')
	if !strings.Contains(status, "501") {
		t.Fatalf("status line = %q, want 501", status)
	}
}

func TestServeClosesAfterResponse(t *testing.T) {
	root := setupRoot(t)
	client := serveOnPipe(t, root)
	defer client.Close()

	fmt.Fprint(client, "GET / HTTP/1.1\r\nHost: x\r\n\r\n")

	reader := bufio.NewReader(client)
	for {
		line, err := reader.ReadString('\n')
		if err != nil || line == "\r\n" {
			break
		}
	}
	buf := make([]byte, 5)
	if _, err := reader.Read(buf); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(buf) != "hello" {
		t.Fatalf("body = %q, want hello", buf)
	}

	// Connection is one-shot: after the body, the server side must
	// have closed, so a further read observes EOF.
	tail := make([]byte, 1)
	client.SetReadDeadline(time.Now().Add(time.Second))
	if _, err := reader.Read(tail); err == nil {
		t.Fatal("expected EOF after single response, connection stayed open")
	}
}

func TestServeClientClosesBeforeFullHead(t *testing.T) {
	root := setupRoot(t)
	server, client := net.Pipe()
	conn := New(server, root, mimetype.Default(), nil)
	done := make(chan struct{})
	go func() {
		conn.Serve()
		close(done)
	}()

	fmt.Fprint(client, "GET / HTTP/1.1\r\n")
	client.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after peer closed mid-head")
	}
}
