package goban

import "github.com/jisupark123/Pair-Go-Backend/internal/match"

// boardState adapts Game to the session layer's oracle interface.
type boardState struct {
	g *Game
}

// NewBoardState builds a fresh position for one match configuration.
func NewBoardState(cfg match.BoardConfig) match.BoardState {
	return boardState{g: NewGame(cfg.Size, cfg.Handicap, cfg.Komi)}
}

func (s boardState) Apply(c match.Coord) (match.BoardState, bool) {
	if c.IsPass() {
		return boardState{g: s.g.Pass()}, true
	}
	next := s.g.Play(c.Y, c.X)
	if next == nil {
		return s, false
	}
	return boardState{g: next}, true
}

func (s boardState) Serialize() any {
	return s.g.ToJSON()
}

func (s boardState) Result() (match.Color, bool) {
	if !s.g.Over() {
		return "", false
	}
	switch s.g.Winner() {
	case Black:
		return match.ColorBlack, true
	case White:
		return match.ColorWhite, true
	}
	return "", true
}

// EmptyCoordinates exposes the open intersections so a move provider can
// enumerate candidates.
func (s boardState) EmptyCoordinates() []match.Coord {
	pairs := s.g.Board().EmptyCoordinates()
	out := make([]match.Coord, len(pairs))
	for i, p := range pairs {
		out[i] = match.Coord{Y: p[0], X: p[1]}
	}
	return out
}
