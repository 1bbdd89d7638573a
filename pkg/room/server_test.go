package room

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"wizard-server/pkg/deck"
	"wizard-server/pkg/transport"
	"wizard-server/pkg/wizard"
)

func testServer(opts Options) *Server {
	return NewServer(logrus.StandardLogger(), opts)
}

// connectClient attaches a client role to the server over an in-process pipe
func connectClient(s *Server, name string) *Client {
	serverEnd, clientEnd := transport.NewPipe(
		transport.Endpoint(name),
		transport.Endpoint("server"),
	)

	client := NewClient(logrus.StandardLogger(), clientEnd)
	s.AddPeer(serverEnd)

	return client
}

func TestServer_joinFlow(t *testing.T) {
	a := assert.New(t)

	s := testServer(Options{})

	clients := make([]*Client, 0, maxSeats)
	for i := 0; i < maxSeats; i++ {
		c := connectClient(s, fmt.Sprintf("peer-%d", i))
		a.NoError(c.Join(fmt.Sprintf("player %d", i), "icon"))

		seat, ok := c.Seat()
		a.True(ok)
		a.Equal(i, seat)

		clients = append(clients, c)
	}

	a.Equal(maxSeats, s.SeatCount())

	// every client sees the same seat list
	a.Equal(maxSeats, len(clients[0].Seats()))
	a.Equal(clients[0].Seats(), clients[5].Seats())

	// the lobby is full
	late := connectClient(s, "late")
	a.NoError(late.Join("late", "icon"))
	a.Equal(ErrLobbyFull.Error(), late.RejectReason())
	_, ok := late.Seat()
	a.False(ok)

	a.NoError(s.Start())

	// no joins once the game started
	tooLate := connectClient(s, "too-late")
	a.NoError(tooLate.Join("too late", "icon"))
	a.Equal(ErrGameAlreadyStarted.Error(), tooLate.RejectReason())
}

func TestServer_duplicateJoinKeepsSeat(t *testing.T) {
	a := assert.New(t)

	s := testServer(Options{})

	c := connectClient(s, "peer")
	a.NoError(c.Join("alice", "icon_1"))
	a.NoError(c.Join("alice again", "icon_2"))

	a.Equal(1, s.SeatCount())

	seat, ok := c.Seat()
	a.True(ok)
	a.Equal(0, seat)
	a.Equal("alice", c.Seats()[0].Name)
}

func TestServer_Start_requiresEnoughPlayers(t *testing.T) {
	a := assert.New(t)

	s := testServer(Options{})
	a.NoError(s.AddCPU("cpu 1", ""))
	a.NoError(s.AddCPU("cpu 2", ""))

	a.EqualError(s.Start(), "expected 3–6 players, got 2")

	a.NoError(s.AddCPU("cpu 3", ""))
	a.NoError(s.Start())
	a.Equal(ErrGameAlreadyStarted, s.Start())
	a.Equal(ErrGameAlreadyStarted, s.AddCPU("cpu 4", ""))
}

func TestServer_allCPUGameRunsToCompletion(t *testing.T) {
	a := assert.New(t)

	s := testServer(Options{
		Game:    wizard.Options{MaxRounds: 3, Seed: 11},
		BotSeed: 1,
	})

	for i := 0; i < 3; i++ {
		a.NoError(s.AddCPU(fmt.Sprintf("cpu %d", i), ""))
	}

	a.NoError(s.Start())
	a.Equal(wizard.PhaseGameOver, s.game.Phase())
	a.Equal(3, len(s.game.History()))

	// the server drains the game log as it goes
	a.Equal(0, len(s.game.LogChan()))
}

func TestServer_Start_fillsCPUSeats(t *testing.T) {
	a := assert.New(t)

	s := testServer(Options{
		Game:       wizard.Options{MaxRounds: 1, Seed: 2},
		CPUPlayers: 2,
	})

	c := connectClient(s, "human")
	a.NoError(c.Join("human", ""))

	a.NoError(s.Start())
	a.Equal(3, s.SeatCount())

	seats := c.Seats()
	a.False(seats[0].IsCPU)
	a.True(seats[1].IsCPU)
	a.True(seats[2].IsCPU)
}

func TestServer_humanAndCPUGame(t *testing.T) {
	a := assert.New(t)

	s := testServer(Options{
		Game:    wizard.Options{MaxRounds: 2, Seed: 3},
		BotSeed: 5,
	})

	c := connectClient(s, "human")
	a.NoError(c.Join("human", "icon_1"))
	a.NoError(s.AddCPU("cpu 1", ""))
	a.NoError(s.AddCPU("cpu 2", ""))

	a.NoError(s.Start())

	// play until the server reports the end of the game. Everything is
	// synchronous over the pipe, so a bounded loop is safe
	for i := 0; i < 50 && c.Scoreboard() == nil; i++ {
		view := c.View()
		a.NotNil(view)

		if view.CurrentTurn != view.Seat {
			t.Fatalf("stalled: it's seat %d's turn and nobody is acting", view.CurrentTurn)
		}

		switch view.Phase {
		case wizard.PhaseTrumpSelection:
			a.NoError(c.ChooseTrump(deck.Red))
		case wizard.PhaseBidding:
			a.NoError(c.SubmitGuess(0))
		case wizard.PhaseTrick:
			a.NotEmpty(view.LegalCards)
			a.NoError(c.PlayCard(view.LegalCards[0]))
		default:
			t.Fatalf("unexpected phase %s", view.Phase)
		}
	}

	board := c.Scoreboard()
	a.Equal(3, len(board))
	a.Equal(wizard.PhaseGameOver, c.View().Phase)
}

func TestServer_illegalIntentLeavesStateUnchanged(t *testing.T) {
	a := assert.New(t)

	s := testServer(Options{
		Game:    wizard.Options{MaxRounds: 1, Seed: 3},
		BotSeed: 5,
	})

	c1 := connectClient(s, "h1")
	a.NoError(c1.Join("h1", ""))
	c2 := connectClient(s, "h2")
	a.NoError(c2.Join("h2", ""))
	a.NoError(s.AddCPU("cpu", ""))

	a.NoError(s.Start())

	hash := func() string {
		view := c2.View()
		return fmt.Sprintf("%s/%d/%d", view.Phase, view.CurrentTurn, view.Players[0].CardsInHand)
	}

	// seat 0 deals round 1, so only c1 can be asked to choose trump
	if c1.View().Phase == wizard.PhaseTrumpSelection {
		a.NoError(c1.ChooseTrump(deck.Blue))
	}

	before := hash()

	// an out-of-range guess is rejected without side effects
	view := c2.View()
	if view.CurrentTurn == view.Seat {
		a.NoError(c2.SubmitGuess(99))
	} else {
		a.NoError(c2.SubmitGuess(0))
	}

	a.Equal(before, hash())

	// a malformed frame is dropped and the connection stays alive
	a.NoError(c2.conn.Send([]byte{0xde, 0xad, 0xbe, 0xef}))
	a.Equal(before, hash())
}

func TestServer_disconnect(t *testing.T) {
	a := assert.New(t)

	s := testServer(Options{Game: wizard.Options{Seed: 9}})

	c1 := connectClient(s, "h1")
	a.NoError(c1.Join("h1", ""))
	c2 := connectClient(s, "h2")
	a.NoError(c2.Join("h2", ""))

	// leaving the lobby frees the seat
	a.NoError(c2.Leave())
	a.Equal(1, s.SeatCount())

	c3 := connectClient(s, "h3")
	a.NoError(c3.Join("h3", ""))
	a.NoError(s.AddCPU("cpu 1", ""))
	a.NoError(s.AddCPU("cpu 2", ""))
	a.NoError(s.Start())

	// leaving a running game freezes the seat for everyone else
	a.NoError(c3.Leave())
	a.True(c3.IsDisconnected())

	view := c1.View()
	a.True(view.Players[1].Inactive)
	a.False(view.Players[0].Inactive)
	a.NotEqual(wizard.PhaseGameOver, view.Phase)
}
