package room

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"wizard-server/internal/rng"
	"wizard-server/internal/util"
	"wizard-server/pkg/bot"
	"wizard-server/pkg/deck"
	"wizard-server/pkg/protocol"
	"wizard-server/pkg/transport"
	"wizard-server/pkg/wizard"
)

const maxSeats = 6

// ErrLobbyFull is an error when all seats are taken
var ErrLobbyFull = errors.New("the lobby is full")

// ErrGameAlreadyStarted is an error when a peer joins a running game
var ErrGameAlreadyStarted = errors.New("the game already started")

// ErrGameNotStarted is an error when an intent arrives before the game exists
var ErrGameNotStarted = errors.New("the game has not started")

// Options configures the server role
type Options struct {
	// Game configures the underlying state machine
	Game wizard.Options

	// CPUPlayers is the number of CPU seats added when the game starts
	CPUPlayers int

	// BotSeed makes CPU decisions deterministic. 0 derives a seed per bot
	BotSeed int64
}

type peer struct {
	conn     transport.Conn
	playerID int64
}

// Server owns the one authoritative game. All peer messages, joins, and
// disconnects are applied one at a time in arrival order; the mutex is the
// single-writer guarantee
type Server struct {
	uuid    string
	logger  logrus.FieldLogger
	options Options

	mu     sync.Mutex
	game   *wizard.Game
	seats  []wizard.Seat
	peers  map[transport.Endpoint]*peer
	bots   map[int64]bot.Bot
	nextID int64
}

// NewServer returns a new server role
func NewServer(logger logrus.FieldLogger, opts Options) *Server {
	id := uuid.New().String()

	return &Server{
		uuid:    id,
		logger:  logger.WithField("game", id),
		options: opts,
		seats:   make([]wizard.Seat, 0, maxSeats),
		peers:   make(map[transport.Endpoint]*peer),
		bots:    make(map[int64]bot.Bot),
	}
}

// UUID identifies this game
func (s *Server) UUID() string {
	return s.uuid
}

// AddPeer wires an established connection into the server. The peer gets a
// seat once its join request arrives
func (s *Server) AddPeer(conn transport.Conn) {
	s.mu.Lock()
	s.peers[conn.Endpoint()] = &peer{conn: conn}
	s.mu.Unlock()

	conn.OnReceive(func(b []byte) {
		s.receive(conn.Endpoint(), b)
	})

	conn.OnDisconnect(func() {
		s.disconnect(conn.Endpoint())
	})

	s.logger.WithField("endpoint", conn.Endpoint()).Debug("peer connected")
}

// receive handles one raw frame from a peer
func (s *Server) receive(endpoint transport.Endpoint, b []byte) {
	msg, err := protocol.Decode(b)
	if err != nil {
		// a malformed frame is dropped, the connection stays alive
		s.logger.WithError(err).WithField("endpoint", endpoint).Warn("dropping malformed message")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.peers[endpoint]
	if !ok {
		s.logger.WithField("endpoint", endpoint).Warn("message from unknown peer")
		return
	}

	if msg.Kind == protocol.KindJoinRequest {
		s.handleJoin(p, msg)
		return
	}

	defer s.flushGameLog()

	if err := s.handleIntent(p, msg); err != nil {
		// an illegal intent never mutates state. Re-send the authoritative
		// view so the sender self-corrects
		s.logger.WithError(err).WithFields(logrus.Fields{
			"endpoint": endpoint,
			"kind":     msg.Kind,
		}).Debug("rejected intent")

		s.sendState(p)
		return
	}

	s.advance()
	s.broadcastState()
}

func (s *Server) handleJoin(p *peer, msg *protocol.Message) {
	var req protocol.JoinRequest
	if err := msg.Unmarshal(&req); err != nil {
		s.logger.WithError(err).Warn("dropping malformed join request")
		return
	}

	reject := func(reason error) {
		frame := protocol.MustEncode(protocol.KindJoinRejected, &protocol.JoinRejected{Reason: reason.Error()})
		if err := p.conn.Send(frame); err != nil {
			s.logger.WithError(err).Error("could not send rejection")
		}
	}

	// a connection only ever holds one seat; re-send the assignment
	if p.playerID != 0 {
		accepted := &protocol.JoinAccepted{
			PlayerID: p.playerID,
			Seat:     s.seatIndex(p.playerID),
			Seats:    append([]wizard.Seat{}, s.seats...),
		}

		if err := p.conn.Send(protocol.MustEncode(protocol.KindJoinAccepted, accepted)); err != nil {
			s.logger.WithError(err).Error("could not re-send seat assignment")
		}

		return
	}

	if s.game != nil {
		reject(ErrGameAlreadyStarted)
		return
	}

	if len(s.seats) >= maxSeats {
		reject(ErrLobbyFull)
		return
	}

	p.playerID = s.newPlayerID()
	s.seats = append(s.seats, wizard.Seat{
		PlayerID: p.playerID,
		Name:     req.Name,
		Icon:     req.Icon,
	})

	s.logger.WithFields(logrus.Fields{
		"playerId": p.playerID,
		"name":     req.Name,
	}).Info("player joined")

	s.broadcastLobby()
}

func (s *Server) handleIntent(p *peer, msg *protocol.Message) error {
	if s.game == nil {
		return ErrGameNotStarted
	}

	if p.playerID == 0 {
		return wizard.ErrPlayerNotFound
	}

	switch msg.Kind {
	case protocol.KindSubmitGuess:
		var guess protocol.SubmitGuess
		if err := msg.Unmarshal(&guess); err != nil {
			return err
		}

		return s.game.SubmitGuess(p.playerID, guess.Count)
	case protocol.KindPlayCard:
		var play protocol.PlayCard
		if err := msg.Unmarshal(&play); err != nil {
			return err
		}

		if play.Card == nil {
			return wizard.ErrCardNotInPlayersHand
		}

		return s.game.PlayCard(p.playerID, play.Card)
	case protocol.KindChooseTrump:
		var choose protocol.ChooseTrump
		if err := msg.Unmarshal(&choose); err != nil {
			return err
		}

		return s.game.ChooseTrump(p.playerID, choose.Suit)
	}

	return protocol.ErrDecode
}

// AddCPU adds a CPU seat before the game starts
func (s *Server) AddCPU(name, icon string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addCPU(name, icon)
}

func (s *Server) addCPU(name, icon string) error {
	if s.game != nil {
		return ErrGameAlreadyStarted
	}

	if len(s.seats) >= maxSeats {
		return ErrLobbyFull
	}

	playerID := s.newPlayerID()
	s.seats = append(s.seats, wizard.Seat{
		PlayerID: playerID,
		Name:     name,
		Icon:     icon,
		IsCPU:    true,
	})

	seed := s.options.BotSeed
	if seed == 0 {
		seed = int64(rng.Crypto{}.Intn(1 << 30))
	}

	s.bots[playerID] = bot.NewNormal(seed + playerID)

	s.logger.WithFields(logrus.Fields{
		"playerId": playerID,
		"name":     name,
	}).Info("cpu seat added")

	s.broadcastLobby()
	return nil
}

// SeatCount returns how many seats are taken
func (s *Server) SeatCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.seats)
}

// Start closes the lobby and deals round 1. Seat order is final from here on
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game != nil {
		return ErrGameAlreadyStarted
	}

	for i := 0; i < s.options.CPUPlayers && len(s.seats) < maxSeats; i++ {
		if err := s.addCPU(util.GetRandomName(), ""); err != nil {
			return err
		}
	}

	game, err := wizard.NewGame(s.logger, s.seats, s.options.Game)
	if err != nil {
		return err
	}

	if err := game.DealRound(); err != nil {
		return err
	}

	s.game = game
	s.logger.WithField("players", len(s.seats)).Info("game started")

	s.advance()
	s.broadcastState()
	s.flushGameLog()
	return nil
}

// flushGameLog drains the game's log channel into the server log. Called
// after every mutation so the buffer never fills up and drops messages
func (s *Server) flushGameLog() {
	if s.game == nil {
		return
	}

	for {
		select {
		case batch := <-s.game.LogChan():
			for _, msg := range batch {
				entry := s.logger.WithField("uuid", msg.UUID)
				if len(msg.PlayerIDs) > 0 {
					entry = entry.WithField("playerIds", msg.PlayerIDs)
				}

				if len(msg.Cards) > 0 {
					entry = entry.WithField("cards", deck.CardsToString(msg.Cards))
				}

				entry.Info(msg.Message)
			}
		default:
			return
		}
	}
}

// advance lets CPU seats act and deals follow-up rounds until a human seat
// is on the clock or the game is over
func (s *Server) advance() {
	for {
		switch s.game.Phase() {
		case wizard.PhaseRoundScoring:
			if err := s.game.DealRound(); err != nil {
				s.logger.WithError(err).Error("could not deal the next round")
				return
			}
			continue
		case wizard.PhaseGameOver:
			return
		}

		seat := s.game.CurrentTurn()
		if seat < 0 {
			return
		}

		playerID := s.seats[seat].PlayerID
		b, isBot := s.bots[playerID]
		if !isBot {
			return
		}

		if err := s.botAct(playerID, b); err != nil {
			// a bot must never produce an illegal intent; bail out rather
			// than spin
			s.logger.WithError(err).WithField("playerId", playerID).Error("cpu action rejected")
			return
		}
	}
}

func (s *Server) botAct(playerID int64, b bot.Bot) error {
	view := s.game.PlayerView(playerID)

	switch s.game.Phase() {
	case wizard.PhaseTrumpSelection:
		return s.game.ChooseTrump(playerID, b.DecideTrump(view))
	case wizard.PhaseBidding:
		return s.game.SubmitGuess(playerID, b.DecideGuess(view))
	case wizard.PhaseTrick:
		legal, err := s.game.LegalCards(playerID)
		if err != nil {
			return err
		}

		return s.game.PlayCard(playerID, b.DecideCard(view, legal))
	}

	return nil
}

// broadcastLobby sends every peer its seat assignment and the seat list
func (s *Server) broadcastLobby() {
	for _, p := range s.peers {
		if p.playerID == 0 {
			continue
		}

		accepted := &protocol.JoinAccepted{
			PlayerID: p.playerID,
			Seat:     s.seatIndex(p.playerID),
			Seats:    append([]wizard.Seat{}, s.seats...),
		}

		if err := p.conn.Send(protocol.MustEncode(protocol.KindJoinAccepted, accepted)); err != nil {
			s.logger.WithError(err).Error("could not send lobby update")
		}
	}
}

// broadcastState sends every peer its own view of the authoritative state.
// CPU seats see the same views through advance(), never the network
func (s *Server) broadcastState() {
	for _, p := range s.peers {
		s.sendState(p)
	}

	if s.game.Phase() == wizard.PhaseGameOver {
		frame := protocol.MustEncode(protocol.KindGameOver, &protocol.GameOver{
			Scoreboard: s.game.Scoreboard(),
		})

		for _, p := range s.peers {
			if err := p.conn.Send(frame); err != nil {
				s.logger.WithError(err).Error("could not send scoreboard")
			}
		}
	}
}

func (s *Server) sendState(p *peer) {
	if s.game == nil {
		return
	}

	view := s.game.PlayerView(p.playerID)
	frame := protocol.MustEncode(protocol.KindStateBroadcast, &protocol.StateBroadcast{View: view})

	if err := p.conn.Send(frame); err != nil {
		s.logger.WithError(err).WithField("playerId", p.playerID).Error("could not send state")
	}
}

// disconnect freezes the peer's seat. The game is not ended; remaining
// peers see the seat marked inactive
func (s *Server) disconnect(endpoint transport.Endpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.peers[endpoint]
	if !ok {
		return
	}

	delete(s.peers, endpoint)
	s.logger.WithField("endpoint", endpoint).Info("peer disconnected")

	if p.playerID == 0 {
		return
	}

	if s.game == nil {
		// still in the lobby: free the seat
		for i, seat := range s.seats {
			if seat.PlayerID == p.playerID {
				s.seats = append(s.seats[:i], s.seats[i+1:]...)
				break
			}
		}

		s.broadcastLobby()
		return
	}

	if err := s.game.SetSeatInactive(p.playerID); err != nil {
		s.logger.WithError(err).Error("could not freeze seat")
		return
	}

	s.broadcastState()
	s.flushGameLog()
}

func (s *Server) seatIndex(playerID int64) int {
	for i, seat := range s.seats {
		if seat.PlayerID == playerID {
			return i
		}
	}

	return -1
}

func (s *Server) newPlayerID() int64 {
	s.nextID++
	return s.nextID
}
