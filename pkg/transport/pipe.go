package transport

import "sync"

// Pipe is an in-process Conn used for the host's local UI bridge and for
// tests. Sends deliver synchronously to the peer's receive callback
type Pipe struct {
	endpoint Endpoint
	peer     *Pipe

	mu           sync.Mutex
	onReceive    func([]byte)
	onDisconnect func()
	closed       bool
}

// NewPipe returns a connected pair of in-process connections
func NewPipe(a, b Endpoint) (*Pipe, *Pipe) {
	p1 := &Pipe{endpoint: a}
	p2 := &Pipe{endpoint: b}
	p1.peer = p2
	p2.peer = p1

	return p1, p2
}

// Endpoint identifies the remote peer
func (p *Pipe) Endpoint() Endpoint {
	return p.endpoint
}

// OnReceive registers the frame callback
func (p *Pipe) OnReceive(fn func(b []byte)) {
	p.mu.Lock()
	p.onReceive = fn
	p.mu.Unlock()
}

// OnDisconnect registers the disconnect callback
func (p *Pipe) OnDisconnect(fn func()) {
	p.mu.Lock()
	p.onDisconnect = fn
	p.mu.Unlock()
}

// Send delivers one frame to the peer's receive callback
func (p *Pipe) Send(b []byte) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.mu.Unlock()

	p.peer.mu.Lock()
	fn := p.peer.onReceive
	closed := p.peer.closed
	p.peer.mu.Unlock()

	if closed {
		return ErrClosed
	}

	if fn != nil {
		frame := make([]byte, len(b))
		copy(frame, b)
		fn(frame)
	}

	return nil
}

// Close closes both ends and fires the disconnect callbacks
func (p *Pipe) Close() error {
	p.close()
	p.peer.close()
	return nil
}

func (p *Pipe) close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}

	p.closed = true
	fn := p.onDisconnect
	p.mu.Unlock()

	if fn != nil {
		fn()
	}
}
