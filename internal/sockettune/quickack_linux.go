//go:build linux

package sockettune

import (
	"net"

	"golang.org/x/sys/unix"
)

// applyQuickAck requests TCP_QUICKACK, which tells the kernel to ack
// received segments immediately instead of coalescing with the next
// outgoing packet. It has to be re-armed after not being renewed by
// the kernel, but for a one-shot request/response connection it's
// applied once, right after accept, which is exactly the window it
// helps.
func applyQuickAck(conn *net.TCPConn) {
	rawConn, err := conn.SyscallConn()
	if err != nil {
		return
	}
	_ = rawConn.Control(func(fd uintptr) {
		_ = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_QUICKACK, 1)
	})
}
