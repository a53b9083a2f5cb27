package match

import "context"

// Coord addresses a board intersection; a negative Y marks a pass.
type Coord struct {
	Y int `json:"y"`
	X int `json:"x"`
}

func (c Coord) IsPass() bool { return c.Y < 0 }

// Pass is the move a provider returns when nothing is playable.
var Pass = Coord{Y: -1, X: -1}

// BoardConfig is the fixed match configuration the rules engine is built from.
type BoardConfig struct {
	Size     int
	Handicap int
	Komi     float64
}

// BoardState is the rules oracle's position. Apply reports false for an
// illegal move and must leave the receiver untouched either way; the manager
// only ever swaps in the returned successor.
type BoardState interface {
	Apply(c Coord) (BoardState, bool)
	Serialize() any
	Result() (winner Color, over bool)
}

// MoveProvider picks a move for a computer-controlled seat. It may block;
// the manager revalidates turn ownership after it returns.
type MoveProvider interface {
	ProvideMove(ctx context.Context, state BoardState) (Coord, bool)
}

// Emitter is the fire-and-forget broadcast channel.
type Emitter interface {
	Emit(id, event string, payload any)
}

// RoomStatusSink is notified when a session terminates so the lobby room can
// fall back to waiting.
type RoomStatusSink interface {
	MatchEnded(roomID string)
}
