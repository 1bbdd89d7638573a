package wizard

import (
	"errors"
	"fmt"
)

// ErrIsNotPlayersTurn is returned when it's not the player's turn
var ErrIsNotPlayersTurn = errors.New("not player's turn")

// ErrCardNotInPlayersHand happens when the player tries to play a card they don't have
var ErrCardNotInPlayersHand = errors.New("card is not in player's hand")

// ErrMustFollowSuit happens when a player holds a lead-suit card and plays another suit
var ErrMustFollowSuit = errors.New("player must follow the lead suit")

// ErrBiddingNotOpen happens when a guess is submitted outside the bidding phase
var ErrBiddingNotOpen = errors.New("bidding is not open")

// ErrTrickNotInProgress happens when a card is played outside the trick phase
var ErrTrickNotInProgress = errors.New("no trick is in progress")

// ErrRoundInProgress happens when a deal is attempted before the current round is finished
var ErrRoundInProgress = errors.New("the round is not over")

// ErrTrumpNotPending happens when a trump choice arrives and none is expected
var ErrTrumpNotPending = errors.New("no trump choice is pending")

// ErrInvalidTrumpSuit happens when the dealer chooses a suit that cannot be trump
var ErrInvalidTrumpSuit = errors.New("trump must be one of the four suits")

// ErrGameIsOver is an error when an action is attempted on an ended game
var ErrGameIsOver = errors.New("game is over")

// ErrPlayerNotFound happens when an action references an unknown player
var ErrPlayerNotFound = errors.New("player not found with that ID")

// PlayerCountError is an error on the number of players in the game
type PlayerCountError int

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected %d–%d players, got %d", minPlayers, maxPlayers, int(p))
}

// GuessError is an error on an out-of-range guess
type GuessError struct {
	Round int
	Got   int
}

func (g GuessError) Error() string {
	return fmt.Sprintf("guess must be between 0 and %d, got %d", g.Round, g.Got)
}
