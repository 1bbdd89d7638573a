package wizard

// RoundResult is the scoring outcome of a single round
type RoundResult struct {
	Round  int                 `json:"round"`
	Scores []*PlayerRoundScore `json:"scores"`
}

// PlayerRoundScore is one player's line in a round result
type PlayerRoundScore struct {
	PlayerID  int64 `json:"playerId"`
	Guess     int   `json:"guess"`
	TricksWon int   `json:"tricksWon"`
	Delta     int   `json:"delta"`
	Total     int   `json:"total"`
}

// roundScore computes the score delta for a single player.
// An exact guess earns 20 plus 10 per trick; a miss costs 10 per trick of error
func roundScore(guess, tricksWon int) int {
	if guess == tricksWon {
		return 20 + 10*tricksWon
	}

	diff := guess - tricksWon
	if diff < 0 {
		diff = -diff
	}

	return -10 * diff
}

// History returns the per-round results so far
func (g *Game) History() []*RoundResult {
	return append([]*RoundResult{}, g.history...)
}

// ScoreboardEntry is one player's final standing
type ScoreboardEntry struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
	Total    int    `json:"total"`
}

// Scoreboard returns the standings, ordered by seat
func (g *Game) Scoreboard() []*ScoreboardEntry {
	board := make([]*ScoreboardEntry, len(g.players))
	for i, player := range g.players {
		board[i] = &ScoreboardEntry{
			PlayerID: player.PlayerID,
			Name:     player.Name,
			Total:    player.score,
		}
	}

	return board
}
