package wizard

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"wizard-server/pkg/deck"
)

func TestGame_PlayerView(t *testing.T) {
	a := assert.New(t)

	g := setupTrick(t, deck.Blue,
		"5r,2g",
		"9r,13b",
		"3g,4g",
	)
	g.players[0].guess = 2

	view := g.PlayerView(10)
	a.Equal(0, view.Seat)
	a.Equal(PhaseTrick, view.Phase)
	a.Equal(deck.Blue, view.Trump)
	a.Equal("2g,5r", view.Hand.String())
	a.Equal(3, len(view.Players))

	// other hands only appear as counts
	a.Equal(2, view.Players[1].CardsInHand)

	// guesses are public once bidding closed
	a.NotNil(view.Players[0].Guess)
	a.Equal(2, *view.Players[0].Guess)

	a.NoError(g.PlayCard(10, deck.CardFromString("5r")))

	view = g.PlayerView(20)
	a.Equal(1, len(view.Trick.Plays))
	a.Equal(deck.Red, view.Trick.LeadSuit)
	a.Equal("9r", view.LegalCards.String())
	a.Equal(1, view.CurrentTurn)
}

func TestGame_PlayerView_hidesGuessesDuringBidding(t *testing.T) {
	a := assert.New(t)

	g := mustGame(t, 3, Options{})
	g.round = 2
	g.phase = PhaseBidding

	a.NoError(g.SubmitGuess(20, 1))

	// seat 1 sees its own pending guess
	view := g.PlayerView(20)
	a.NotNil(view.Players[1].Guess)

	// nobody else does until the last guess is in
	view = g.PlayerView(10)
	a.Nil(view.Players[1].Guess)

	a.NoError(g.SubmitGuess(30, 0))
	a.NoError(g.SubmitGuess(10, 0))

	view = g.PlayerView(10)
	a.NotNil(view.Players[1].Guess)
	a.Equal(1, *view.Players[1].Guess)
}

func TestGame_PlayerView_sortsHand(t *testing.T) {
	a := assert.New(t)

	g := setupTrick(t, deck.NoSuit,
		"13b,2g,w,5r",
		"9r,1r,2r,3r",
		"3g,4g,5g,6g",
	)

	view := g.PlayerView(10)
	a.Equal("13b,2g,5r,w", view.Hand.String())

	// the player's actual hand keeps deal order
	a.Equal("13b,2g,w,5r", g.players[0].hand.String())
}

func TestGame_PlayerView_spectator(t *testing.T) {
	a := assert.New(t)

	g := setupTrick(t, deck.Blue, "5r", "9r", "3g")

	view := g.PlayerView(99)
	a.Equal(-1, view.Seat)
	a.Nil(view.Hand)
	a.Nil(view.LegalCards)
	a.Equal(3, len(view.Players))
}

// the serialized view must never leak another player's cards
func TestGame_PlayerView_neverLeaksHands(t *testing.T) {
	a := assert.New(t)

	g := setupTrick(t, deck.Blue,
		"5r,2g",
		"9r,13b",
		"3g,4g",
	)

	raw, err := json.Marshal(g.PlayerView(10))
	a.NoError(err)

	body := string(raw)
	for _, leaked := range []string{"9r", "13b", "3g", "4g"} {
		card := deck.CardFromString(leaked)
		encoded, err := json.Marshal(card)
		a.NoError(err)
		a.False(strings.Contains(body, string(encoded)), "view leaked %s", leaked)
	}
}
