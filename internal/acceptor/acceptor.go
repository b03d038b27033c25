// Package acceptor implements the event loop: accept connections off a
// net.Listener, register them, and hand each one to the right
// execution path — the fixed worker pool for plaintext connections,
// its own goroutine for TLS connections, since a TLS handshake can
// block far longer than a pooled worker should be tied up. Grounded
// on shockwave/server's BaseServer.Serve/trackConnection/Shutdown
// (the Go-native Accept-loop-plus-WaitGroup shape) and, for the
// worker-vs-own-goroutine split, on twebd's
// srv::server registering both a TcpListener and a TlsAcceptor with
// the same event loop but dispatching differently once a connection is
// ready.
package acceptor

import (
	"crypto/tls"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/staticd/internal/connection"
	"github.com/yourusername/staticd/internal/mimetype"
	"github.com/yourusername/staticd/internal/rootfs"
	"github.com/yourusername/staticd/internal/sockettune"
	"github.com/yourusername/staticd/internal/workerpool"
)

// token identifies a registered connection, mirroring twebd's
// mio::Token keyed registry (here an incrementing counter rather than
// a reused slab index, since Go's GC makes slab reuse unnecessary).
type token uint64

// Acceptor runs the accept loop for one listener and owns the
// registry of in-flight connections it has handed out.
type Acceptor struct {
	listener net.Listener
	pool     *workerpool.Pool
	root     *rootfs.Root
	mime     mimetype.Lookup
	log      *logrus.Logger
	tls      bool
	tune     sockettune.Config

	mu      sync.Mutex
	conns   map[token]net.Conn
	nextTok token

	closing  chan struct{}
	closeOne sync.Once
	wg       sync.WaitGroup
}

// New builds an Acceptor over ln. When tlsListener is true, every
// accepted connection is assumed to already be wrapped by
// tls.NewListener and is served on its own goroutine rather than
// through pool, since a handshake stall must never starve plaintext
// traffic waiting on the same fixed worker set.
func New(ln net.Listener, pool *workerpool.Pool, root *rootfs.Root, mime mimetype.Lookup, log *logrus.Logger, tlsListener bool, tune sockettune.Config) *Acceptor {
	return &Acceptor{
		listener: ln,
		pool:     pool,
		root:     root,
		mime:     mime,
		log:      log,
		tls:      tlsListener,
		tune:     tune,
		conns:    make(map[token]net.Conn),
		closing:  make(chan struct{}),
	}
}

// Run blocks accepting connections until Shutdown is called, then
// returns nil. Any other accept error is logged and the loop keeps
// accepting.
func (a *Acceptor) Run() error {
	for {
		conn, err := a.listener.Accept()
		if err != nil {
			select {
			case <-a.closing:
				return nil
			default:
			}
			a.log.WithError(err).Warn("accept failed")
			continue
		}

		if tcp, ok := underlyingTCPConn(conn); ok {
			sockettune.Apply(tcp, a.tune)
		}

		tok := a.register(conn)

		if a.tls {
			a.wg.Add(1)
			go a.serveTLS(tok, conn)
			continue
		}

		a.wg.Add(1)
		a.pool.Submit(func() {
			a.servePlain(tok, conn)
		})
	}
}

func (a *Acceptor) servePlain(tok token, conn net.Conn) {
	defer a.wg.Done()
	defer a.deregister(tok)
	c := connection.New(conn, a.root, a.mime, a.entryLogger(conn))
	c.Serve()
}

func (a *Acceptor) serveTLS(tok token, conn net.Conn) {
	defer a.wg.Done()
	defer a.deregister(tok)
	c := connection.New(conn, a.root, a.mime, a.entryLogger(conn))
	c.Serve()
}

func (a *Acceptor) entryLogger(conn net.Conn) *logrus.Entry {
	if a.log == nil {
		return nil
	}
	return a.log.WithField("remote", conn.RemoteAddr().String())
}

func (a *Acceptor) register(conn net.Conn) token {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextTok++
	tok := a.nextTok
	a.conns[tok] = conn
	return tok
}

func (a *Acceptor) deregister(tok token) {
	a.mu.Lock()
	delete(a.conns, tok)
	a.mu.Unlock()
}

// Shutdown stops accepting new connections, waits up to grace for
// in-flight connections to finish on their own, then force-closes
// whatever remains. Idempotent.
func (a *Acceptor) Shutdown(grace time.Duration) {
	a.closeOne.Do(func() {
		close(a.closing)
		_ = a.listener.Close()
	})

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(grace):
	}

	a.mu.Lock()
	conns := make([]net.Conn, 0, len(a.conns))
	for _, c := range a.conns {
		conns = append(conns, c)
	}
	a.mu.Unlock()
	for _, c := range conns {
		_ = c.Close()
	}
	a.wg.Wait()
}

// underlyingTCPConn unwraps a *tls.Conn to the raw *net.TCPConn
// beneath it so socket tuning can still apply to HTTPS listeners.
func underlyingTCPConn(conn net.Conn) (*net.TCPConn, bool) {
	if tlsConn, ok := conn.(*tls.Conn); ok {
		conn = tlsConn.NetConn()
	}
	tcp, ok := conn.(*net.TCPConn)
	return tcp, ok
}
