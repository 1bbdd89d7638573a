package transport

import "errors"

// ErrClosed is returned when sending on a closed connection
var ErrClosed = errors.New("connection is closed")

// Endpoint is a stable identifier for a connected peer
type Endpoint string

// Conn is one established connection to a peer. The discovery half of the
// transport (advertise, discover, connect) lives outside the core; the game
// only ever sees established connections.
//
// Implementations must invoke the receive and disconnect callbacks one
// message at a time.
type Conn interface {
	// Endpoint identifies the remote peer
	Endpoint() Endpoint

	// Send delivers one frame to the peer
	Send(b []byte) error

	// OnReceive registers the frame callback. Must be set before frames arrive
	OnReceive(fn func(b []byte))

	// OnDisconnect registers the disconnect callback
	OnDisconnect(fn func())

	// Close tears the connection down; the peer's disconnect callback fires
	Close() error
}
