package wizard

import (
	"sort"

	"wizard-server/pkg/deck"
)

// GameStateView is the game state as seen by a single recipient.
// Everything except Hand and LegalCards is safe for all players to see
type GameStateView struct {
	Phase       Phase         `json:"phase"`
	Round       int           `json:"round"`
	MaxRounds   int           `json:"maxRounds"`
	DealerIndex int           `json:"dealerIndex"`
	Trump       deck.Suit     `json:"trump"`
	TrumpCard   *deck.Card    `json:"trumpCard"`
	CurrentTurn int           `json:"currentTurn"`
	Players     []*PlayerView `json:"players"`
	Trick       *TrickView    `json:"trick"`
	LastResult  *RoundResult  `json:"lastResult,omitempty"`

	// recipient-only data
	Seat       int       `json:"seat"`
	Hand       deck.Hand `json:"hand"`
	LegalCards deck.Hand `json:"legalCards"`
}

// PlayerView is the public state of a seat.
// Hand contents are never included; only the count is
type PlayerView struct {
	Seat        int    `json:"seat"`
	PlayerID    int64  `json:"playerId"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	CardsInHand int    `json:"cardsInHand"`
	Guess       *int   `json:"guess,omitempty"`
	TricksWon   int    `json:"tricksWon"`
	Score       int    `json:"score"`
	Inactive    bool   `json:"inactive"`
}

// TrickView is the public state of the trick in progress
type TrickView struct {
	LeaderIndex int          `json:"leaderIndex"`
	LeadSuit    deck.Suit    `json:"leadSuit"`
	Plays       []*TrickPlay `json:"plays"`
}

// TrickPlay is a single played card in the trick
type TrickPlay struct {
	Seat int        `json:"seat"`
	Card *deck.Card `json:"card"`
}

// PlayerView returns the state of the game for the player.
// Unknown player IDs get a spectator view with Seat -1 and no hand
func (g *Game) PlayerView(playerID int64) *GameStateView {
	players := make([]*PlayerView, len(g.players))
	for i, player := range g.players {
		pv := &PlayerView{
			Seat:        i,
			PlayerID:    player.PlayerID,
			Name:        player.Name,
			Icon:        player.Icon,
			CardsInHand: len(player.hand),
			TricksWon:   player.tricksWon,
			Score:       player.score,
			Inactive:    player.inactive,
		}

		// guesses stay hidden until the last player has guessed,
		// except each player always sees their own
		if player.guessed && (g.phase != PhaseBidding || player.PlayerID == playerID) {
			guess := player.guess
			pv.Guess = &guess
		}

		players[i] = pv
	}

	var trickView *TrickView
	if g.trick != nil {
		plays := make([]*TrickPlay, len(g.trick.plays))
		for i, pc := range g.trick.plays {
			plays[i] = &TrickPlay{Seat: pc.seat, Card: pc.card}
		}

		trickView = &TrickView{
			LeaderIndex: g.trick.leaderIndex,
			LeadSuit:    g.trick.leadSuit,
			Plays:       plays,
		}
	}

	var lastResult *RoundResult
	if len(g.history) > 0 {
		lastResult = g.history[len(g.history)-1]
	}

	view := &GameStateView{
		Phase:       g.phase,
		Round:       g.round,
		MaxRounds:   g.maxRounds,
		DealerIndex: g.dealerIndex,
		Trump:       g.trump,
		TrumpCard:   g.trumpCard,
		CurrentTurn: g.CurrentTurn(),
		Players:     players,
		Trick:       trickView,
		LastResult:  lastResult,
		Seat:        -1,
	}

	if player, ok := g.idToPlayer[playerID]; ok {
		view.Seat = g.seats[playerID]

		// hands are sorted by suit and rank for display
		hand := player.Hand()
		sort.Sort(hand)
		view.Hand = hand

		if legal, err := g.LegalCards(playerID); err == nil {
			view.LegalCards = legal
		}
	}

	return view
}
