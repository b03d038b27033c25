//go:build !linux

package sockettune

import "net"

// applyQuickAck is a no-op outside Linux; TCP_QUICKACK has no
// equivalent on other platforms' socket APIs.
func applyQuickAck(conn *net.TCPConn) {}
