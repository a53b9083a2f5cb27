package match

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jisupark123/Pair-Go-Backend/internal/room"
)

const defaultBoardSize = 19

// Config wires the manager's collaborators. NewBoard builds the rules
// oracle's state for one match; Provider supplies moves for bot seats.
type Config struct {
	BoardSize int
	NewBoard  func(BoardConfig) BoardState
	Provider  MoveProvider
	Emitter   Emitter
	Rooms     RoomStatusSink
}

// Manager owns every live session, keyed by room id. One lock funnels all
// mutation; the only blocking call (the move provider) happens outside it
// and the move is revalidated afterwards like any other.
type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	boardSize int
	newBoard  func(BoardConfig) BoardState
	provider  MoveProvider
	emitter   Emitter
	rooms     RoomStatusSink
}

func NewManager(cfg Config) *Manager {
	size := cfg.BoardSize
	if size <= 0 {
		size = defaultBoardSize
	}
	return &Manager{
		sessions:  map[string]*Session{},
		boardSize: size,
		newBoard:  cfg.NewBoard,
		provider:  cfg.Provider,
		emitter:   cfg.Emitter,
		rooms:     cfg.Rooms,
	}
}

// CreateSession starts a match from a room snapshot. Which team takes black
// is a coin flip; a handicap match fixes white to move first instead. When
// the opening seat is a bot the cascade runs before returning.
func (m *Manager) CreateSession(r *room.Room) (*View, error) {
	view, err := m.createSession(r)
	if err != nil {
		return nil, err
	}
	m.runCascade(r.ID)
	return view, nil
}

func (m *Manager) createSession(r *room.Room) (*View, error) {
	var red, blue []room.Participant
	for _, p := range r.Players {
		switch p.Team {
		case room.TeamRed:
			red = append(red, *p)
		case room.TeamBlue:
			blue = append(blue, *p)
		}
	}
	if len(red) != 2 || len(blue) != 2 {
		return nil, ErrInvalidTeams
	}

	handicap := r.Settings.HandicapStones()
	clock := NewTimeControl(r.Settings)

	blackPlayers, blackColor := red, room.TeamRed
	whitePlayers, whiteColor := blue, room.TeamBlue
	if rand.Intn(2) == 1 {
		blackPlayers, whitePlayers = whitePlayers, blackPlayers
		blackColor, whiteColor = whiteColor, blackColor
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[r.ID] != nil {
		return nil, ErrSessionExists
	}

	players := make([]room.Participant, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, *p)
	}
	now := time.Now()
	sess := &Session{
		ID:       r.ID,
		Players:  players,
		Settings: r.Settings,
		Teams: [2]*Team{
			{
				TeamColor: blackColor,
				Stone:     ColorBlack,
				Seats:     [2]Seat{{Player: blackPlayers[0], Index: 0}, {Player: blackPlayers[1], Index: 1}},
				Clock:     clock,
			},
			{
				TeamColor: whiteColor,
				Stone:     ColorWhite,
				Seats:     [2]Seat{{Player: whitePlayers[0], Index: 0}, {Player: whitePlayers[1], Index: 1}},
				Clock:     clock,
			},
		},
		cycle:      NewTurnCycle(handicap > 0),
		board:      m.newBoard(BoardConfig{Size: m.boardSize, Handicap: handicap, Komi: r.Settings.KomiPoints()}),
		startedAt:  now,
		lastMoveAt: now,
	}
	m.sessions[r.ID] = sess
	m.armTurnLocked(sess)

	view := sess.view()
	m.emitter.Emit(sess.ID, "gameStart", view)
	log.Info().Str("game_id", sess.ID).Int("handicap", handicap).Msg("game started")
	return view, nil
}

// ApplyMove plays a validated move for the connection on turn, then lets any
// bot seats that follow play through the same path.
func (m *Manager) ApplyMove(sessionID, connID string, c Coord) *View {
	view := m.applyMove(sessionID, connID, c)
	if view != nil {
		m.runCascade(sessionID)
	}
	return view
}

// applyMove is the single validated move path. A nil return is a silent
// rejection: wrong turn, stale connection, or an illegal move. Those are
// normal races, so nothing is mutated and nothing is broadcast.
func (m *Manager) applyMove(sessionID, connID string, c Coord) *View {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.sessions[sessionID]
	if sess == nil || sess.ended {
		return nil
	}
	team, seat := sess.currentSeat()
	if team == nil || seat.Player.ConnID != connID {
		return nil
	}
	next, ok := sess.board.Apply(c)
	if !ok {
		return nil
	}

	team.Clock.Charge(time.Since(sess.lastMoveAt))
	sess.timer.Cancel()
	sess.board = next
	sess.cycle.Advance()
	sess.lastMoveAt = time.Now()

	view := sess.view()
	m.emitter.Emit(sess.ID, "gameUpdate", view)
	m.emitter.Emit(sess.ID, "timeUpdate", sess.clocks())

	if winner, over := sess.board.Result(); over {
		m.endLocked(sess, &Result{Type: ResultFinished, Winner: winner})
	} else {
		m.armTurnLocked(sess)
	}
	return view
}

// Resign ends the match in favor of the opposing side. A connection that is
// not seated in the session is ignored.
func (m *Manager) Resign(sessionID, connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.sessions[sessionID]
	if sess == nil || sess.ended {
		return
	}
	team := sess.teamByConn(connID)
	if team == nil {
		return
	}
	m.endLocked(sess, &Result{Type: ResultResignation, Winner: team.Stone.Other()})
}

// EndSession tears the session down. Ending an unknown or already-ended
// session is a no-op.
func (m *Manager) EndSession(sessionID string, res *Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.sessions[sessionID]
	if sess == nil {
		return
	}
	m.endLocked(sess, res)
}

func (m *Manager) endLocked(sess *Session, res *Result) {
	if sess.ended {
		return
	}
	sess.ended = true
	sess.timer.Cancel()
	delete(m.sessions, sess.ID)
	if res != nil {
		m.emitter.Emit(sess.ID, "gameEnded", map[string]any{
			"result":   res,
			"gameData": sess.board.Serialize(),
		})
		log.Info().Str("game_id", sess.ID).Str("result", string(res.Type)).Str("winner", string(res.Winner)).Msg("game ended")
	}
	if m.rooms != nil {
		m.rooms.MatchEnded(sess.ID)
	}
}

// Serialize returns the broadcast snapshot for one session.
func (m *Manager) Serialize(sessionID string) (*View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.sessions[sessionID]
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess.view(), nil
}

// RebindConnection points a participant's seat at a new connection after a
// reconnect; turn order and clocks are untouched.
func (m *Manager) RebindConnection(sessionID string, participantID int64, connID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.sessions[sessionID]
	if sess == nil {
		return ErrSessionNotFound
	}
	found := false
	for i := range sess.Players {
		if sess.Players[i].ID == participantID {
			sess.Players[i].ConnID = connID
			found = true
		}
	}
	for _, t := range sess.Teams {
		for i := range t.Seats {
			if t.Seats[i].Player.ID == participantID {
				t.Seats[i].Player.ConnID = connID
				found = true
			}
		}
	}
	if !found {
		return room.ErrPlayerNotFound
	}
	return nil
}

// armTurnLocked rearms the session deadline for whoever is now on move:
// their basic remainder until byoyomi starts, then one full period.
func (m *Manager) armTurnLocked(sess *Session) {
	team, _ := sess.currentSeat()
	if team == nil {
		return
	}
	sessionID := sess.ID
	sess.timer.Arm(team.Clock.ArmDuration(), func(gen uint64) {
		m.handleExpiry(sessionID, gen)
	})
}

// handleExpiry runs when the active deadline fires. Basic time running out
// starts byoyomi rather than ending anything; only the last byoyomi period
// expiring loses the game.
func (m *Manager) handleExpiry(sessionID string, gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := m.sessions[sessionID]
	if sess == nil || sess.ended {
		return
	}
	if !sess.timer.live(gen) {
		return // superseded by a move or teardown
	}
	team, _ := sess.currentSeat()
	if team == nil {
		return
	}

	if !team.Clock.InByoyomi {
		team.Clock.EnterByoyomi()
		sess.lastMoveAt = time.Now()
		m.emitter.Emit(sess.ID, "byoyomiStart", map[string]any{
			"teamColor":   team.TeamColor,
			"timeControl": team.Clock,
		})
		m.armTurnLocked(sess)
		return
	}

	if team.Clock.UsePeriod() {
		m.endLocked(sess, &Result{Type: ResultTimeLoss, Winner: team.Stone.Other()})
		return
	}
	sess.lastMoveAt = time.Now()
	m.emitter.Emit(sess.ID, "byoyomiPeriodUsed", map[string]any{
		"teamColor":   team.TeamColor,
		"timeControl": team.Clock,
	})
	m.armTurnLocked(sess)
}
