package wizard

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"wizard-server/pkg/deck"
)

// LogMessage is the format the game sends log messages in
// If PlayerIDs is empty, assume it's a general statement, otherwise the
// message will be rendered like "{player} did X, Y, Z"
type LogMessage struct {
	UUID      string       `json:"uuid"`
	PlayerIDs []int64      `json:"playerIds"`
	Cards     []*deck.Card `json:"cards"`
	Message   string       `json:"message"`
	Time      time.Time    `json:"time"`
}

func newLogMessage(playerID int64, card *deck.Card, format string, a ...interface{}) *LogMessage {
	var playerIDs []int64
	if playerID > 0 {
		playerIDs = []int64{playerID}
	}

	var cards []*deck.Card
	if card != nil {
		cards = append(cards, card)
	}

	return &LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Cards:     cards,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}

func (g *Game) sendLogMessages(msg ...*LogMessage) {
	if g.logChan == nil {
		return
	}

	select {
	case g.logChan <- msg:
	default:
	}
}

// LogChan returns a channel the game sends log messages to
func (g *Game) LogChan() <-chan []*LogMessage {
	return g.logChan
}
