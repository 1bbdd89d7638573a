package wizard

import (
	"github.com/sirupsen/logrus"

	"wizard-server/pkg/deck"
)

// Phase is the stage the game is currently in
type Phase string

// game phases. The lobby lives in the room layer; a Game only exists once
// the seats are final
const (
	PhaseDealing        Phase = "dealing"
	PhaseTrumpSelection Phase = "trumpSelection"
	PhaseBidding        Phase = "bidding"
	PhaseTrick          Phase = "trick"
	PhaseRoundScoring   Phase = "roundScoring"
	PhaseGameOver       Phase = "gameOver"
)

const minPlayers = 3
const maxPlayers = 6

// Options configures a game of Wizard
type Options struct {
	// MaxRounds caps the number of rounds. 0 means play the full game
	// (60 / player count)
	MaxRounds int

	// DealerIndex is the seat that deals round 1
	DealerIndex int

	// Seed makes every deal deterministic. 0 uses a random shuffle per round
	Seed int64
}

// Game is a game of Wizard
type Game struct {
	options    Options
	players    []*Player
	idToPlayer map[int64]*Player
	seats      map[int64]int

	deck        *deck.Deck
	round       int
	maxRounds   int
	dealerIndex int
	trump       deck.Suit
	trumpCard   *deck.Card
	phase       Phase
	guessCount  int
	trick       *trick
	history     []*RoundResult

	logger  logrus.FieldLogger
	logChan chan []*LogMessage
}

// NewGame returns a new Wizard game
// Seats must be in turn order; any rotation happens beforehand
func NewGame(logger logrus.FieldLogger, seats []Seat, opts Options) (*Game, error) {
	if len(seats) < minPlayers || len(seats) > maxPlayers {
		return nil, PlayerCountError(len(seats))
	}

	players := make([]*Player, len(seats))
	idToPlayer := make(map[int64]*Player)
	seatIndex := make(map[int64]int)
	for i, seat := range seats {
		players[i] = NewPlayer(seat.PlayerID, seat.Name, seat.Icon)
		idToPlayer[seat.PlayerID] = players[i]
		seatIndex[seat.PlayerID] = i
	}

	maxRounds := deck.Size / len(seats)
	if opts.MaxRounds > 0 && opts.MaxRounds < maxRounds {
		maxRounds = opts.MaxRounds
	}

	dealerIndex := opts.DealerIndex % len(seats)
	if dealerIndex < 0 {
		dealerIndex += len(seats)
	}

	g := &Game{
		options:     opts,
		players:     players,
		idToPlayer:  idToPlayer,
		seats:       seatIndex,
		maxRounds:   maxRounds,
		dealerIndex: dealerIndex,
		trump:       deck.NoSuit,
		phase:       PhaseDealing,
		history:     make([]*RoundResult, 0, maxRounds),
		logger:      logger,
		logChan:     make(chan []*LogMessage, 256),
	}

	g.sendLogMessages(newLogMessage(0, nil, "New game of Wizard started with %d players", len(seats)))

	return g, nil
}

// DealRound shuffles a fresh deck and deals the next round
func (g *Game) DealRound() error {
	switch g.phase {
	case PhaseDealing, PhaseRoundScoring:
	case PhaseGameOver:
		return ErrGameIsOver
	default:
		return ErrRoundInProgress
	}

	g.round++
	g.guessCount = 0
	g.trick = nil
	g.trump = deck.NoSuit
	g.trumpCard = nil

	for _, player := range g.players {
		player.newRound()
	}

	d := deck.New()
	seed := g.options.Seed
	if seed > 0 {
		seed += int64(g.round) - 1
	}
	d.Shuffle(seed)
	g.deck = d

	for i := 0; i < g.round; i++ {
		for j := range g.players {
			seat := (g.dealerIndex + 1 + j) % len(g.players)

			card, err := d.Draw()
			if err != nil {
				return err
			}

			g.players[seat].AddCard(card)
		}
	}

	g.phase = PhaseBidding
	if d.CanDraw(1) {
		flip, err := d.Draw()
		if err != nil {
			return err
		}

		g.trumpCard = flip
		switch {
		case flip.IsWizard():
			// dealer picks the trump suit before bidding opens
			g.phase = PhaseTrumpSelection
		case flip.IsJester():
			g.trump = deck.NoSuit
		default:
			g.trump = flip.Suit
		}
	}

	g.checkDeckPartition()

	g.logger.WithFields(logrus.Fields{
		"round": g.round,
		"seed":  d.Seed(),
		"trump": g.trump,
	}).Debug("round dealt")

	if g.trumpCard != nil {
		g.sendLogMessages(newLogMessage(0, g.trumpCard, "Round %d: the trump indicator has been flipped", g.round))
	} else {
		g.sendLogMessages(newLogMessage(0, nil, "Round %d: no trump this round", g.round))
	}

	return nil
}

// every card is in a hand, in the deck, or flipped as the trump indicator
func (g *Game) checkDeckPartition() {
	count := g.deck.CardsLeft()
	if g.trumpCard != nil {
		count++
	}

	for _, player := range g.players {
		count += len(player.hand)
	}

	if count != deck.Size {
		panic("deck partition violated")
	}
}

// ChooseTrump sets the trump suit after a wizard was flipped. Only the dealer
// may choose
func (g *Game) ChooseTrump(playerID int64, suit deck.Suit) error {
	if g.phase != PhaseTrumpSelection {
		return ErrTrumpNotPending
	}

	player, ok := g.idToPlayer[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	if g.seats[playerID] != g.dealerIndex {
		return ErrIsNotPlayersTurn
	}

	valid := false
	for _, s := range deck.Suits {
		if suit == s {
			valid = true
			break
		}
	}

	if !valid {
		return ErrInvalidTrumpSuit
	}

	g.trump = suit
	g.phase = PhaseBidding

	g.sendLogMessages(newLogMessage(player.PlayerID, nil, "{} chose %s as trump", suit))
	return nil
}

// SubmitGuess records the player's guess for the round. Guesses go in strict
// seat order starting left of the dealer
func (g *Game) SubmitGuess(playerID int64, count int) error {
	if g.phase != PhaseBidding {
		return ErrBiddingNotOpen
	}

	player, ok := g.idToPlayer[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	pending := (g.dealerIndex + 1 + g.guessCount) % len(g.players)
	if g.seats[playerID] != pending {
		return ErrIsNotPlayersTurn
	}

	if count < 0 || count > g.round {
		return GuessError{Round: g.round, Got: count}
	}

	player.guess = count
	player.guessed = true
	g.guessCount++

	g.sendLogMessages(newLogMessage(player.PlayerID, nil, "{} made a guess"))

	if g.guessCount == len(g.players) {
		g.phase = PhaseTrick
		g.trick = newTrick((g.dealerIndex + 1) % len(g.players))
	}

	return nil
}

// PlayCard plays the card for the player
func (g *Game) PlayCard(playerID int64, card *deck.Card) error {
	if g.phase != PhaseTrick {
		return ErrTrickNotInProgress
	}

	player, ok := g.idToPlayer[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	seat := g.seats[playerID]
	if seat != g.trick.currentTurn(len(g.players)) {
		return ErrIsNotPlayersTurn
	}

	if !player.HasCard(card) {
		return ErrCardNotInPlayersHand
	}

	if g.trick.mustFollow(card, player.hand) {
		return ErrMustFollowSuit
	}

	// this should not happen as we already checked the hand.
	// just one more safeguard just in case
	if err := player.playerDidPlayCard(card); err != nil {
		panic(err)
	}

	g.trick.add(seat, card, g.trump)
	g.sendLogMessages(newLogMessage(player.PlayerID, card, "{} played a card"))

	if g.trick.isFull(len(g.players)) {
		g.resolveTrick()
	}

	return nil
}

// resolveTrick awards the trick and starts the next one, or finishes the
// round if the hands are empty
func (g *Game) resolveTrick() {
	winner := g.trick.winning.seat
	winningPlayer := g.players[winner]
	winningPlayer.wonTrick()

	g.sendLogMessages(newLogMessage(winningPlayer.PlayerID, g.trick.winning.card, "{} won the trick"))

	for _, player := range g.players {
		if len(player.hand) > 0 {
			g.trick = newTrick(winner)
			return
		}
	}

	g.finishRound()
}

// finishRound scores the round, rotates the dealer, and moves the game to
// RoundScoring (or GameOver after the final round)
func (g *Game) finishRound() {
	result := &RoundResult{
		Round:  g.round,
		Scores: make([]*PlayerRoundScore, len(g.players)),
	}

	messages := make([]*LogMessage, 0, len(g.players))
	for i, player := range g.players {
		delta := roundScore(player.guess, player.tricksWon)
		player.score += delta

		result.Scores[i] = &PlayerRoundScore{
			PlayerID:  player.PlayerID,
			Guess:     player.guess,
			TricksWon: player.tricksWon,
			Delta:     delta,
			Total:     player.score,
		}

		messages = append(messages, newLogMessage(player.PlayerID, nil,
			"{} guessed %d, won %d. Score: %+d", player.guess, player.tricksWon, delta))
	}

	g.history = append(g.history, result)
	g.trick = nil
	g.dealerIndex = (g.dealerIndex + 1) % len(g.players)

	if g.round == g.maxRounds {
		g.phase = PhaseGameOver
		messages = append(messages, newLogMessage(0, nil, "The game is over"))
	} else {
		g.phase = PhaseRoundScoring
	}

	g.sendLogMessages(messages...)
}

// LegalCards returns the cards the player may play in the current trick.
// This is the authoritative follow-suit rule; callers must not re-derive it
func (g *Game) LegalCards(playerID int64) (deck.Hand, error) {
	player, ok := g.idToPlayer[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	if g.phase != PhaseTrick || g.trick == nil {
		return player.Hand(), nil
	}

	legal := make(deck.Hand, 0, len(player.hand))
	for _, card := range player.hand {
		if !g.trick.mustFollow(card, player.hand) {
			legal = append(legal, card)
		}
	}

	return legal, nil
}

// CurrentTurn returns the seat whose action is pending, or -1 if no seat is
// on the clock
func (g *Game) CurrentTurn() int {
	switch g.phase {
	case PhaseTrumpSelection:
		return g.dealerIndex
	case PhaseBidding:
		return (g.dealerIndex + 1 + g.guessCount) % len(g.players)
	case PhaseTrick:
		return g.trick.currentTurn(len(g.players))
	}

	return -1
}

// SetSeatInactive freezes the seat after its peer disconnects
func (g *Game) SetSeatInactive(playerID int64) error {
	player, ok := g.idToPlayer[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	player.inactive = true
	g.sendLogMessages(newLogMessage(player.PlayerID, nil, "{} left the game"))
	return nil
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// Round returns the current round number (1-based)
func (g *Game) Round() int {
	return g.round
}

// MaxRounds returns the number of rounds in the game
func (g *Game) MaxRounds() int {
	return g.maxRounds
}

// DealerIndex returns the dealing seat for the current round
func (g *Game) DealerIndex() int {
	return g.dealerIndex
}

// Trump returns the trump suit, or deck.NoSuit if the round has none
func (g *Game) Trump() deck.Suit {
	return g.trump
}

// Player returns the player with the given ID
func (g *Game) Player(playerID int64) (*Player, bool) {
	player, ok := g.idToPlayer[playerID]
	return player, ok
}

// Seat returns the seat index for the player
func (g *Game) Seat(playerID int64) (int, bool) {
	seat, ok := g.seats[playerID]
	return seat, ok
}
