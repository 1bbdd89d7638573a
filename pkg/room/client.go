package room

import (
	"sync"

	"github.com/sirupsen/logrus"

	"wizard-server/pkg/deck"
	"wizard-server/pkg/protocol"
	"wizard-server/pkg/transport"
	"wizard-server/pkg/wizard"
)

// Client is the non-authoritative role: it forwards local intents to the
// server and holds a read-only projection of the server's state. Every
// broadcast replaces the projection wholesale; the client never mutates it
type Client struct {
	conn   transport.Conn
	logger logrus.FieldLogger

	mu           sync.RWMutex
	playerID     int64
	seat         int
	seats        []wizard.Seat
	view         *wizard.GameStateView
	scoreboard   []*wizard.ScoreboardEntry
	rejectReason string
	disconnected bool

	updates chan struct{}
}

// NewClient returns a client role on top of an established connection
func NewClient(logger logrus.FieldLogger, conn transport.Conn) *Client {
	c := &Client{
		conn:    conn,
		logger:  logger,
		seat:    -1,
		updates: make(chan struct{}, 1),
	}

	conn.OnReceive(c.receive)
	conn.OnDisconnect(func() {
		c.mu.Lock()
		c.disconnected = true
		c.mu.Unlock()

		c.notify()
	})

	return c
}

func (c *Client) receive(b []byte) {
	msg, err := protocol.Decode(b)
	if err != nil {
		c.logger.WithError(err).Warn("dropping malformed message")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch msg.Kind {
	case protocol.KindJoinAccepted:
		var accepted protocol.JoinAccepted
		if err := msg.Unmarshal(&accepted); err != nil {
			c.logger.WithError(err).Warn("dropping malformed join update")
			return
		}

		c.playerID = accepted.PlayerID
		c.seat = accepted.Seat
		c.seats = accepted.Seats
	case protocol.KindJoinRejected:
		var rejected protocol.JoinRejected
		if err := msg.Unmarshal(&rejected); err != nil {
			c.logger.WithError(err).Warn("dropping malformed rejection")
			return
		}

		c.rejectReason = rejected.Reason
	case protocol.KindStateBroadcast:
		var broadcast protocol.StateBroadcast
		if err := msg.Unmarshal(&broadcast); err != nil {
			c.logger.WithError(err).Warn("dropping malformed broadcast")
			return
		}

		c.view = broadcast.View
	case protocol.KindGameOver:
		var gameOver protocol.GameOver
		if err := msg.Unmarshal(&gameOver); err != nil {
			c.logger.WithError(err).Warn("dropping malformed scoreboard")
			return
		}

		c.scoreboard = gameOver.Scoreboard
	default:
		c.logger.WithField("kind", msg.Kind).Warn("unexpected message kind")
		return
	}

	c.notify()
}

// notify wakes up a UI waiting on Updates without ever blocking
func (c *Client) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// Join asks the server for a seat
func (c *Client) Join(name, icon string) error {
	return c.conn.Send(protocol.MustEncode(protocol.KindJoinRequest, &protocol.JoinRequest{
		Name: name,
		Icon: icon,
	}))
}

// SubmitGuess forwards the local guess intent
func (c *Client) SubmitGuess(count int) error {
	return c.conn.Send(protocol.MustEncode(protocol.KindSubmitGuess, &protocol.SubmitGuess{Count: count}))
}

// PlayCard forwards the local play intent
func (c *Client) PlayCard(card *deck.Card) error {
	return c.conn.Send(protocol.MustEncode(protocol.KindPlayCard, &protocol.PlayCard{Card: card}))
}

// ChooseTrump forwards the dealer's trump choice
func (c *Client) ChooseTrump(suit deck.Suit) error {
	return c.conn.Send(protocol.MustEncode(protocol.KindChooseTrump, &protocol.ChooseTrump{Suit: suit}))
}

// Updates signals whenever the projection changed
func (c *Client) Updates() <-chan struct{} {
	return c.updates
}

// View returns the latest projection, or nil before the first broadcast
func (c *Client) View() *wizard.GameStateView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.view
}

// Seat returns the assigned seat, or false before the join was accepted
func (c *Client) Seat() (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.seat, c.seat >= 0
}

// PlayerID returns the server-assigned player ID
func (c *Client) PlayerID() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.playerID
}

// Seats returns the lobby seat list
func (c *Client) Seats() []wizard.Seat {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]wizard.Seat{}, c.seats...)
}

// Scoreboard returns the final standings once the game is over
func (c *Client) Scoreboard() []*wizard.ScoreboardEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.scoreboard
}

// RejectReason returns why the join failed, if it did
func (c *Client) RejectReason() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.rejectReason
}

// IsDisconnected returns true after the connection dropped
func (c *Client) IsDisconnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.disconnected
}

// Leave tears down the connection
func (c *Client) Leave() error {
	return c.conn.Close()
}
