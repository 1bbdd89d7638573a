package protocol

import (
	"encoding/json"

	"wizard-server/pkg/deck"
	"wizard-server/pkg/wizard"
)

// Kind tags a message so one receive callback can multiplex every peer
type Kind byte

// message kinds
const (
	// client → server
	KindJoinRequest Kind = iota + 1
	KindSubmitGuess
	KindPlayCard
	KindChooseTrump

	// server → client
	KindJoinAccepted
	KindJoinRejected
	KindStateBroadcast
	KindGameOver
)

func (k Kind) String() string {
	switch k {
	case KindJoinRequest:
		return "joinRequest"
	case KindSubmitGuess:
		return "submitGuess"
	case KindPlayCard:
		return "playCard"
	case KindChooseTrump:
		return "chooseTrump"
	case KindJoinAccepted:
		return "joinAccepted"
	case KindJoinRejected:
		return "joinRejected"
	case KindStateBroadcast:
		return "stateBroadcast"
	case KindGameOver:
		return "gameOver"
	}

	return "unknown"
}

// Message is a decoded frame: a kind tag plus its raw payload
type Message struct {
	Kind    Kind
	Payload json.RawMessage
}

// Unmarshal decodes the payload into the kind's payload struct
func (m *Message) Unmarshal(v interface{}) error {
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return decodeError{err}
	}

	return nil
}

// JoinRequest asks the server for a seat
type JoinRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// JoinAccepted tells the client its seat and who else is at the table
type JoinAccepted struct {
	PlayerID int64         `json:"playerId"`
	Seat     int           `json:"seat"`
	Seats    []wizard.Seat `json:"seats"`
}

// JoinRejected tells the client why it did not get a seat
type JoinRejected struct {
	Reason string `json:"reason"`
}

// SubmitGuess is a player's trick prediction for the round
type SubmitGuess struct {
	Count int `json:"count"`
}

// PlayCard plays a single card from the player's hand
type PlayCard struct {
	Card *deck.Card `json:"card"`
}

// ChooseTrump is the dealer's trump choice after a wizard flip
type ChooseTrump struct {
	Suit deck.Suit `json:"suit"`
}

// StateBroadcast carries the recipient's view of the authoritative state
type StateBroadcast struct {
	View *wizard.GameStateView `json:"view"`
}

// GameOver carries the final scoreboard
type GameOver struct {
	Scoreboard []*wizard.ScoreboardEntry `json:"scoreboard"`
}
