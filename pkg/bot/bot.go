package bot

import (
	"wizard-server/internal/rng"
	"wizard-server/pkg/deck"
	"wizard-server/pkg/wizard"
)

// Bot decides for a CPU seat. Implementations only ever see a player view
// and must choose from the legal cards the game computed; they never
// re-derive legality themselves
type Bot interface {
	// DecideTrump picks a trump suit when the CPU dealt a wizard flip
	DecideTrump(view *wizard.GameStateView) deck.Suit

	// DecideGuess predicts how many tricks the seat will win this round
	DecideGuess(view *wizard.GameStateView) int

	// DecideCard picks one of the legal cards
	DecideCard(view *wizard.GameStateView, legal deck.Hand) *deck.Card
}

// Easy plays uniformly at random from the legal options
type Easy struct {
	RNG rng.Generator
}

// NewEasy returns an Easy bot with a deterministic seed
func NewEasy(seed int64) *Easy {
	return &Easy{RNG: rng.Seeded(seed)}
}

// DecideTrump picks a random suit
func (b *Easy) DecideTrump(view *wizard.GameStateView) deck.Suit {
	return deck.Suits[b.RNG.Intn(len(deck.Suits))]
}

// DecideGuess picks a random guess in [0, round]
func (b *Easy) DecideGuess(view *wizard.GameStateView) int {
	return b.RNG.Intn(view.Round + 1)
}

// DecideCard picks a random legal card
func (b *Easy) DecideCard(view *wizard.GameStateView, legal deck.Hand) *deck.Card {
	return legal[b.RNG.Intn(len(legal))]
}

// Normal estimates tricks from hand strength and plays to hit its guess
type Normal struct {
	rng rng.Generator
}

// NewNormal returns a Normal bot with a deterministic seed
func NewNormal(seed int64) *Normal {
	return &Normal{rng: rng.Seeded(seed)}
}

// DecideTrump picks the suit the bot holds the most of
func (b *Normal) DecideTrump(view *wizard.GameStateView) deck.Suit {
	counts := make(map[deck.Suit]int)
	for _, card := range view.Hand {
		if !card.IsSpecial() {
			counts[card.Suit]++
		}
	}

	best := deck.Suits[b.rng.Intn(len(deck.Suits))]
	for _, suit := range deck.Suits {
		if counts[suit] > counts[best] {
			best = suit
		}
	}

	return best
}

// DecideGuess counts the cards likely to win a trick: wizards always,
// high trump usually, and off-trump highest ranks sometimes
func (b *Normal) DecideGuess(view *wizard.GameStateView) int {
	guess := 0
	for _, card := range view.Hand {
		switch {
		case card.IsWizard():
			guess++
		case card.IsJester():
		case view.Trump != deck.NoSuit && card.Suit == view.Trump && card.Rank >= 8:
			guess++
		case card.Rank == 13:
			guess++
		}
	}

	if guess > view.Round {
		guess = view.Round
	}

	return guess
}

// DecideCard plays the strongest legal card while the seat still needs
// tricks, otherwise the weakest
func (b *Normal) DecideCard(view *wizard.GameStateView, legal deck.Hand) *deck.Card {
	me := view.Players[view.Seat]

	needsTricks := true
	if me.Guess != nil && me.TricksWon >= *me.Guess {
		needsTricks = false
	}

	best := legal[0]
	for _, card := range legal[1:] {
		stronger := b.strength(view, card) > b.strength(view, best)
		if stronger == needsTricks {
			best = card
		}
	}

	return best
}

// strength ranks a card within the current trick context
func (b *Normal) strength(view *wizard.GameStateView, card *deck.Card) int {
	switch {
	case card.IsWizard():
		return 100
	case card.IsJester():
		return 0
	case view.Trump != deck.NoSuit && card.Suit == view.Trump:
		return 50 + card.Rank
	case view.Trick != nil && view.Trick.LeadSuit != deck.NoSuit && card.Suit == view.Trick.LeadSuit:
		return 25 + card.Rank
	}

	return card.Rank
}
