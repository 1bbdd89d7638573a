package mux

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"wizard-server/pkg/transport"
)

const writeWait = time.Second * 10
const pongWait = time.Second * 60
const pingPeriod = pongWait * 9 / 10

// sendBuffer is how many outbound frames can queue before Send blocks
const sendBuffer = 64

func (m *Mux) getGameWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		endpoint := transport.Endpoint(remoteAddr(r) + "/" + uuid.New().String())
		wc := newWSConn(endpoint, conn)

		// callbacks must be registered before the read loop starts
		m.server.AddPeer(wc)

		go wc.writeLoop()
		wc.readLoop()
	}
}

// wsConn adapts a websocket to the game's connection contract. The read
// loop delivers frames one at a time; the write loop owns all writes
type wsConn struct {
	endpoint transport.Endpoint
	conn     *websocket.Conn
	send     chan []byte
	done     chan struct{}

	closeOnce sync.Once

	mu           sync.Mutex
	onReceive    func([]byte)
	onDisconnect func()
}

func newWSConn(endpoint transport.Endpoint, conn *websocket.Conn) *wsConn {
	return &wsConn{
		endpoint: endpoint,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
	}
}

// Endpoint identifies the remote peer
func (c *wsConn) Endpoint() transport.Endpoint {
	return c.endpoint
}

// OnReceive registers the frame callback
func (c *wsConn) OnReceive(fn func(b []byte)) {
	c.mu.Lock()
	c.onReceive = fn
	c.mu.Unlock()
}

// OnDisconnect registers the disconnect callback
func (c *wsConn) OnDisconnect(fn func()) {
	c.mu.Lock()
	c.onDisconnect = fn
	c.mu.Unlock()
}

// Send queues one frame for the write loop
func (c *wsConn) Send(b []byte) error {
	frame := make([]byte, len(b))
	copy(frame, b)

	select {
	case <-c.done:
		return transport.ErrClosed
	case c.send <- frame:
		return nil
	}
}

// Close tears the connection down and fires the disconnect callback
func (c *wsConn) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()

		c.mu.Lock()
		fn := c.onDisconnect
		c.mu.Unlock()

		if fn != nil {
			fn()
		}
	})

	return nil
}

func (c *wsConn) readLoop() {
	defer func() {
		_ = c.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, b, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.WithError(err).WithField("endpoint", c.endpoint).Error("could not read message")
			}

			return
		}

		if msgType != websocket.BinaryMessage {
			continue
		}

		c.mu.Lock()
		fn := c.onReceive
		c.mu.Unlock()

		if fn != nil {
			fn(b)
		}
	}
}

func (c *wsConn) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case b := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
				logrus.WithError(err).WithField("endpoint", c.endpoint).Error("could not write message")
				return
			}
		}
	}
}
