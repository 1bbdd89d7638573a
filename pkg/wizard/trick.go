package wizard

import (
	"wizard-server/pkg/deck"
)

type playedCard struct {
	seat int
	card *deck.Card
}

// trick tracks the cards played in one pass around the table
type trick struct {
	leaderIndex int
	plays       []*playedCard
	winning     *playedCard
	leadSuit    deck.Suit

	// suitFree is set when a wizard leads, lifting the follow-suit obligation
	suitFree bool
}

func newTrick(leaderIndex int) *trick {
	return &trick{
		leaderIndex: leaderIndex,
		plays:       make([]*playedCard, 0),
		leadSuit:    deck.NoSuit,
	}
}

// currentTurn returns the seat whose play is pending
func (t *trick) currentTurn(playerCount int) int {
	return (t.leaderIndex + len(t.plays)) % playerCount
}

// add records a play and updates the winning card and lead suit.
// The caller must have validated the play.
func (t *trick) add(seat int, card *deck.Card, trump deck.Suit) {
	pc := &playedCard{seat: seat, card: card}
	t.plays = append(t.plays, pc)

	if card.IsWizard() && t.leadSuit == deck.NoSuit {
		t.suitFree = true
	}

	// jesters defer the lead suit to the first suited card
	if !card.IsSpecial() && t.leadSuit == deck.NoSuit && !t.suitFree {
		t.leadSuit = card.Suit
	}

	if t.winning == nil || deck.Beats(card, t.winning.card, trump) {
		t.winning = pc
	}
}

// mustFollow returns true if the hand is obligated to follow the lead suit
// when playing the card
func (t *trick) mustFollow(card *deck.Card, hand deck.Hand) bool {
	if card.IsSpecial() {
		return false
	}

	if t.suitFree || t.leadSuit == deck.NoSuit {
		return false
	}

	if card.Suit == t.leadSuit {
		return false
	}

	return hand.HasSuit(t.leadSuit)
}

// isFull returns true once every seat has played
func (t *trick) isFull(playerCount int) bool {
	return len(t.plays) >= playerCount
}
