package connection

// State is the connection's position in the state machine this
// connection moves through: Opened -> Reading -> Responding -> Draining
// -> Closing -> Closed. Go's blocking net.Conn I/O collapses what the
// mio source modeled as separate readable/writable poll iterations into
// a single goroutine's straight-line execution, but the states
// themselves are kept as an explicit sequence, readable through
// Connection.State and logged at debug level on every transition,
// rather than inlined away.
type State int32

const (
	// Opened is the state immediately after accept, before the first
	// byte of the request has been read.
	Opened State = iota

	// Reading covers partial-head accumulation and partial-body reads.
	Reading

	// Responding is set once a full request (or a synthesized error)
	// has produced a Response value and encoding has begun.
	Responding

	// Draining is set once the full response has been handed to the
	// socket write path, until every byte has left the connection.
	Draining

	// Closing is set once nothing further will be written or read;
	// the connection is about to shut down the socket.
	Closing

	// Closed is set after the socket has been closed. The owning
	// registry drops the connection once Serve has returned.
	Closed
)

// String renders the state for logging.
func (s State) String() string {
	switch s {
	case Opened:
		return "opened"
	case Reading:
		return "reading"
	case Responding:
		return "responding"
	case Draining:
		return "draining"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}
