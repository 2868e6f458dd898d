package port

// Conn is one live transport session (WebSocket or SSE stream). A Conn is
// owned by exactly one room at a time and is comparable, so it can key the
// registry maps directly.
//
// Send must be safe for concurrent use and must report delivery failure as
// an error; the dispatcher treats any send error as proof the connection is
// dead and evicts it instead of retrying.
type Conn interface {
	ID() string
	Send(payload []byte) error
	Close() error
}
