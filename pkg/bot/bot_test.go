package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wizard-server/pkg/deck"
	"wizard-server/pkg/wizard"
)

func testView(round int, trump deck.Suit, hand string) *wizard.GameStateView {
	return &wizard.GameStateView{
		Phase:   wizard.PhaseBidding,
		Round:   round,
		Trump:   trump,
		Seat:    0,
		Hand:    deck.CardsFromString(hand),
		Players: []*wizard.PlayerView{{Seat: 0}},
	}
}

func TestEasy_staysLegal(t *testing.T) {
	a := assert.New(t)

	b := NewEasy(1)
	view := testView(3, deck.Red, "5r,9g,w")

	for i := 0; i < 50; i++ {
		guess := b.DecideGuess(view)
		a.GreaterOrEqual(guess, 0)
		a.LessOrEqual(guess, 3)

		legal := deck.Hand(deck.CardsFromString("5r,w"))
		a.True(legal.HasCard(b.DecideCard(view, legal)))
	}
}

func TestEasy_deterministic(t *testing.T) {
	view := testView(5, deck.Red, "5r,9g,w")

	b1 := NewEasy(42)
	b2 := NewEasy(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, b1.DecideGuess(view), b2.DecideGuess(view))
	}
}

func TestNormal_DecideTrump(t *testing.T) {
	b := NewNormal(1)

	view := testView(5, deck.NoSuit, "2g,7g,11g,5b,w")
	assert.Equal(t, deck.Green, b.DecideTrump(view))
}

func TestNormal_DecideGuess(t *testing.T) {
	a := assert.New(t)
	b := NewNormal(1)

	// two wizards, one high trump, one high off-suit
	view := testView(5, deck.Blue, "w,w,10b,13r,2g")
	a.Equal(4, b.DecideGuess(view))

	// guesses are clamped to the round number
	view = testView(1, deck.Blue, "w")
	a.Equal(1, b.DecideGuess(view))

	// jesters and low cards count for nothing
	view = testView(3, deck.NoSuit, "j,2r,5g")
	a.Equal(0, b.DecideGuess(view))
}

func TestNormal_DecideCard(t *testing.T) {
	a := assert.New(t)
	b := NewNormal(1)

	guess := 2
	view := testView(3, deck.Blue, "")
	view.Phase = wizard.PhaseTrick
	view.Players[0].Guess = &guess

	// still needs tricks: play the strongest legal card
	legal := deck.Hand(deck.CardsFromString("2r,5b,j"))
	a.Equal("5b", deck.CardToString(b.DecideCard(view, legal)))

	// guess already met: dump the weakest
	view.Players[0].TricksWon = 2
	a.Equal("j", deck.CardToString(b.DecideCard(view, legal)))

	// only choice
	legal = deck.Hand(deck.CardsFromString("w"))
	a.Equal("w", deck.CardToString(b.DecideCard(view, legal)))
}
