package match

import (
	"time"

	"github.com/jisupark123/Pair-Go-Backend/internal/room"
)

// Seat binds one participant to a per-team slot index.
type Seat struct {
	Player room.Participant `json:"data"`
	Index  int              `json:"index"`
}

// Team binds a lobby team to a stone side with its own clock.
type Team struct {
	TeamColor room.Team   `json:"teamColor"`
	Stone     Color       `json:"stoneColor"`
	Seats     [2]Seat     `json:"players"`
	Clock     TimeControl `json:"timeControl"`
}

type ResultType string

const (
	ResultTimeLoss    ResultType = "TimeLoss"
	ResultResignation ResultType = "Resignation"
	ResultFinished    ResultType = "Finished"
)

// Result is a terminal match outcome. Winner is empty for a drawn scoring.
type Result struct {
	Type   ResultType `json:"type"`
	Winner Color      `json:"winner"`
}

// Session is one live match, keyed by its room id. Everything here is owned
// by the manager and mutated only under its lock; the timer is the sole
// concurrent entry point and funnels back through the manager.
type Session struct {
	ID         string
	Players    []room.Participant
	Settings   room.Settings
	Teams      [2]*Team // index 0 holds black
	cycle      *TurnCycle
	board      BoardState
	timer      sessionTimer
	startedAt  time.Time
	lastMoveAt time.Time
	ended      bool
}

func (s *Session) teamByColor(c Color) *Team {
	for _, t := range s.Teams {
		if t.Stone == c {
			return t
		}
	}
	return nil
}

func (s *Session) teamByConn(connID string) *Team {
	for _, t := range s.Teams {
		for _, seat := range t.Seats {
			if seat.Player.ConnID == connID {
				return t
			}
		}
	}
	return nil
}

// currentSeat resolves the turn cycle's slot to the team and seat on move.
func (s *Session) currentSeat() (*Team, *Seat) {
	turn := s.cycle.Current()
	team := s.teamByColor(turn.Color)
	if team == nil {
		return nil, nil
	}
	return team, &team.Seats[turn.Seat]
}

// View is the externally consumable snapshot: no timer handle, no oracle
// internals beyond its own serialization.
type View struct {
	ID          string             `json:"id"`
	Players     []room.Participant `json:"players"`
	Settings    room.Settings      `json:"settings"`
	Teams       [2]Team            `json:"teams"`
	CurrentTurn Turn               `json:"currentTurn"`
	StartedAt   time.Time          `json:"startedAt"`
	GameData    any                `json:"gameData"`
}

func (s *Session) view() *View {
	players := make([]room.Participant, len(s.Players))
	copy(players, s.Players)
	return &View{
		ID:          s.ID,
		Players:     players,
		Settings:    s.Settings,
		Teams:       [2]Team{*s.Teams[0], *s.Teams[1]},
		CurrentTurn: s.cycle.Current(),
		StartedAt:   s.startedAt,
		GameData:    s.board.Serialize(),
	}
}

// clocks is the lightweight payload for time-only broadcasts.
func (s *Session) clocks() map[string]TimeControl {
	return map[string]TimeControl{
		string(s.Teams[0].TeamColor): s.Teams[0].Clock,
		string(s.Teams[1].TeamColor): s.Teams[1].Clock,
	}
}
