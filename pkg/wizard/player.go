package wizard

import (
	"wizard-server/pkg/deck"
)

// Player is an individual in the game
type Player struct {
	PlayerID int64
	Name     string
	Icon     string

	hand      deck.Hand
	guess     int
	guessed   bool
	tricksWon int
	score     int
	inactive  bool
}

// Seat identifies a player to the room layer before a game exists
type Seat struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	IsCPU    bool   `json:"isCpu"`
}

// NewPlayer returns a new player
func NewPlayer(pid int64, name, icon string) *Player {
	return &Player{
		PlayerID: pid,
		Name:     name,
		Icon:     icon,
		hand:     make(deck.Hand, 0),
	}
}

// AddCard add a card to the players hand
func (p *Player) AddCard(card *deck.Card) {
	p.hand.AddCard(card)
}

// Hand returns a shallow clone of the player's hand
func (p *Player) Hand() deck.Hand {
	return p.hand.Clone()
}

// HasCard returns true if the player has the card in their hand
func (p *Player) HasCard(card *deck.Card) bool {
	return p.hand.HasCard(card)
}

// Guess returns the player's guess for the current round and whether one was made
func (p *Player) Guess() (int, bool) {
	return p.guess, p.guessed
}

// TricksWon returns how many tricks the player won this round
func (p *Player) TricksWon() int {
	return p.tricksWon
}

// Score returns the player's total score
func (p *Player) Score() int {
	return p.score
}

// IsInactive returns true if the player's seat was frozen after a disconnect
func (p *Player) IsInactive() bool {
	return p.inactive
}

// playerDidPlayCard removes the card from the player's hand
func (p *Player) playerDidPlayCard(card *deck.Card) error {
	if !p.hand.Discard(card) {
		return ErrCardNotInPlayersHand
	}

	return nil
}

// newRound resets the per-round values
func (p *Player) newRound() {
	p.hand = make(deck.Hand, 0)
	p.guess = 0
	p.guessed = false
	p.tricksWon = 0
}

// wonTrick marks the player as winning a trick
func (p *Player) wonTrick() {
	p.tricksWon++
}
