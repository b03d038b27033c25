// Package connection implements the per-connection request/response
// cycle: accumulate a request head off the wire, decode it, read its
// body, dispatch it to the response handler, and write the encoded
// response back. Grounded on twebd's srv::conn,
// translated from its explicit readable/writable poll-interest
// bookkeeping to a single blocking goroutine per connection — the
// idiomatic Go analogue of a readiness-driven state machine.
package connection

import (
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/staticd/internal/bufpool"
	"github.com/yourusername/staticd/internal/mimetype"
	"github.com/yourusername/staticd/internal/respond"
	"github.com/yourusername/staticd/internal/rootfs"
	"github.com/yourusername/staticd/internal/wire"
)

// IdleTimeout bounds the whole request/response cycle: Serve sets it
// once as a deadline covering every read and write on the connection,
// standing in for a per-request timeout with a single fixed value
// rather than a configurable one (see DESIGN.md).
const IdleTimeout = 60 * time.Second

// Connection drives one accepted socket through a single
// request/response cycle. There is no keep-alive: every Connection
// closes its socket once its response has drained, matching the
// original implementation's one-shot connection handling.
type Connection struct {
	conn  net.Conn
	root  *rootfs.Root
	mime  mimetype.Lookup
	log   *logrus.Entry
	state atomic.Int32
}

// New wraps conn for a single Serve call. root and mime are shared,
// read-only collaborators owned by the server.
func New(conn net.Conn, root *rootfs.Root, mime mimetype.Lookup, log *logrus.Entry) *Connection {
	c := &Connection{conn: conn, root: root, mime: mime, log: log}
	c.setState(Opened)
	return c
}

// State returns the connection's current position in the state
// machine. Safe for concurrent use.
func (c *Connection) State() State {
	return State(c.state.Load())
}

func (c *Connection) setState(s State) {
	c.state.Store(int32(s))
	if c.log != nil {
		c.log.Debugf("connection %s -> %s", c.conn.RemoteAddr(), s)
	}
}

// Serve runs the full request/response cycle and always closes the
// underlying socket before returning, regardless of outcome. It never
// returns an error: every failure that can be expressed as an HTTP
// response is; failures that cannot (peer closed before sending a
// full head) result in a silent close, the chosen
// resolution for a client that disconnects mid-request.
func (c *Connection) Serve() {
	defer c.close()

	_ = c.conn.SetDeadline(time.Now().Add(IdleTimeout))

	c.setState(Reading)
	head, leftover, err := c.readHead()
	if err != nil {
		if err == errHeadTooLarge {
			c.respond(respond.ErrorResponse(wire.StatusRequestHeaderFields))
		}
		// Any other failure (EOF before CRLFCRLF, read error, timeout)
		// is a client that never finished asking: close without
		// responding, there being no well-formed request to answer.
		return
	}

	req, err := wire.DecodeHead(head)
	if err != nil {
		c.respond(respond.ErrorResponse(respond.StatusForDecodeError(err)))
		return
	}

	body, err := c.readBody(req, leftover)
	if err != nil {
		// Body shorter than declared Content-Length: the request is
		// incomplete, same disposition as a truncated head.
		return
	}
	req.Body = body

	c.setState(Responding)
	resp := respond.Handle(req, c.root, c.mime)
	c.respond(resp)
}

var errHeadTooLarge = wire.ErrHeadTooLarge

// readHead accumulates bytes from the connection until it has seen a
// full CRLFCRLF-terminated head, returning the head (without the
// terminator) and any bytes read past it (the start of the body, if
// any). It enforces wire.MaxHeadSize.
func (c *Connection) readHead() (head []byte, leftover []byte, err error) {
	buf := make([]byte, 0, bufpool.ChunkSize)
	chunk := bufpool.Get()
	defer bufpool.Put(chunk)

	for {
		if idx, ok := wire.HeadEnd(buf); ok {
			return buf[:idx], buf[idx+4:], nil
		}
		if len(buf) > wire.MaxHeadSize {
			return nil, nil, errHeadTooLarge
		}

		n, rerr := c.conn.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			if idx, ok := wire.HeadEnd(buf); ok {
				if idx+4 > wire.MaxHeadSize {
					return nil, nil, errHeadTooLarge
				}
				return buf[:idx], buf[idx+4:], nil
			}
			if len(buf) > wire.MaxHeadSize {
				return nil, nil, errHeadTooLarge
			}
		}
		if rerr != nil {
			return nil, nil, rerr
		}
	}
}

// readBody returns exactly wire.ContentLength(req) bytes of body,
// starting with whatever was already read past the head terminator
// and pulling the remainder off the wire.
func (c *Connection) readBody(req *wire.Request, leftover []byte) ([]byte, error) {
	want := wire.ContentLength(req)
	if want == 0 {
		return nil, nil
	}

	body := make([]byte, 0, want)
	body = append(body, leftover...)
	if len(body) > want {
		body = body[:want]
	}
	if len(body) >= want {
		return body, nil
	}

	remaining := want - len(body)
	buf := make([]byte, remaining)
	if _, err := io.ReadFull(c.conn, buf); err != nil {
		return nil, err
	}
	body = append(body, buf...)
	return body, nil
}

// respond encodes and writes resp in full, moving the state machine
// through Responding -> Draining -> Closing. Write errors are logged
// and swallowed: there is nothing further to do with a peer that has
// stopped reading.
func (c *Connection) respond(resp *wire.Response) {
	c.setState(Responding)
	out := wire.Encode(resp)

	c.setState(Draining)
	_, err := c.conn.Write(out)
	if err != nil && c.log != nil {
		c.log.Warnf("connection %s: write: %v", c.conn.RemoteAddr(), err)
	}

	c.setState(Closing)
}

func (c *Connection) close() {
	c.setState(Closing)
	_ = c.conn.Close()
	c.setState(Closed)
}
