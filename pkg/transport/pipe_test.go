package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipe(t *testing.T) {
	a := assert.New(t)

	p1, p2 := NewPipe("server", "client")
	a.Equal(Endpoint("server"), p1.Endpoint())
	a.Equal(Endpoint("client"), p2.Endpoint())

	var got []byte
	p2.OnReceive(func(b []byte) {
		got = b
	})

	a.NoError(p1.Send([]byte("hello")))
	a.Equal([]byte("hello"), got)

	// sends copy the frame
	frame := []byte("mutated")
	p1.Send(frame)
	frame[0] = 'X'
	a.Equal([]byte("mutated"), got)
}

func TestPipe_Close(t *testing.T) {
	a := assert.New(t)

	p1, p2 := NewPipe("a", "b")

	disconnected := 0
	p1.OnDisconnect(func() { disconnected++ })
	p2.OnDisconnect(func() { disconnected++ })

	a.NoError(p2.Close())
	a.Equal(2, disconnected)

	a.Equal(ErrClosed, p1.Send([]byte("x")))
	a.Equal(ErrClosed, p2.Send([]byte("x")))

	// closing twice is a no-op
	a.NoError(p2.Close())
	a.Equal(2, disconnected)
}

func TestPipe_sendWithoutHandler(t *testing.T) {
	p1, _ := NewPipe("a", "b")
	assert.NoError(t, p1.Send([]byte("dropped")))
}
