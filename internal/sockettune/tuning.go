// Package sockettune applies cheap, portable socket options to an
// accepted connection immediately after accept, grounded on
// shockwave/socket's Config/Apply shape but reimplemented over
// net.TCPConn's portable setters instead of raw SetsockoptInt calls,
// so this server doesn't need a platform-specific build per GOOS for
// the options that matter for a static file responder. The one option
// genuinely worth a raw syscall — TCP_QUICKACK — stays behind a
// Linux-only file built on golang.org/x/sys/unix.
package sockettune

import (
	"net"
	"time"
)

// Config mirrors the tunable knobs a static file server's connections
// benefit from. Zero value means "leave the OS default".
type Config struct {
	// NoDelay disables Nagle's algorithm; worth enabling unconditionally
	// for a request/response protocol with no pipelining.
	NoDelay bool

	// RecvBuffer/SendBuffer override SO_RCVBUF/SO_SNDBUF in bytes. 0
	// leaves the system default untouched.
	RecvBuffer int
	SendBuffer int

	// KeepAlive enables SO_KEEPALIVE with KeepAlivePeriod as the probe
	// interval.
	KeepAlive       bool
	KeepAlivePeriod int // seconds; 0 uses net's own default when KeepAlive is set

	// QuickAck requests TCP_QUICKACK on platforms that support it
	// (Linux only; a no-op elsewhere). See quickack_linux.go.
	QuickAck bool
}

// Default returns the tuning this server applies unless overridden:
// Nagle off, keepalive on, no explicit buffer sizes.
func Default() Config {
	return Config{
		NoDelay:   true,
		KeepAlive: true,
		QuickAck:  true,
	}
}

// Apply sets every configured option on conn, ignoring failures from
// any individual option: a tuning knob that the kernel refuses is not
// a reason to drop the connection.
func Apply(conn *net.TCPConn, cfg Config) {
	if cfg.NoDelay {
		_ = conn.SetNoDelay(true)
	}
	if cfg.RecvBuffer > 0 {
		_ = conn.SetReadBuffer(cfg.RecvBuffer)
	}
	if cfg.SendBuffer > 0 {
		_ = conn.SetWriteBuffer(cfg.SendBuffer)
	}
	if cfg.KeepAlive {
		_ = conn.SetKeepAlive(true)
		if cfg.KeepAlivePeriod > 0 {
			_ = conn.SetKeepAlivePeriod(time.Duration(cfg.KeepAlivePeriod) * time.Second)
		}
	}
	if cfg.QuickAck {
		applyQuickAck(conn)
	}
}
