// Package bot is the automated move policy for computer-controlled seats:
// shuffle the open intersections, play the first legal one, pass when the
// whole board refuses.
package bot

import (
	"context"
	"math/rand"
	"time"

	"github.com/jisupark123/Pair-Go-Backend/internal/match"
)

// enumerable is the extra capability the policy needs from the oracle's
// state; a state without it yields no move.
type enumerable interface {
	EmptyCoordinates() []match.Coord
}

type Provider struct {
	// thinkDelay paces the bot so its moves land at a human-ish rhythm.
	thinkDelay time.Duration
}

func New(thinkDelay time.Duration) *Provider {
	return &Provider{thinkDelay: thinkDelay}
}

func (p *Provider) ProvideMove(ctx context.Context, state match.BoardState) (match.Coord, bool) {
	if p.thinkDelay > 0 {
		select {
		case <-ctx.Done():
			return match.Coord{}, false
		case <-time.After(p.thinkDelay):
		}
	}

	eb, ok := state.(enumerable)
	if !ok {
		return match.Coord{}, false
	}
	coords := eb.EmptyCoordinates()
	rand.Shuffle(len(coords), func(i, j int) { coords[i], coords[j] = coords[j], coords[i] })
	for _, c := range coords {
		if _, legal := state.Apply(c); legal {
			return c, true
		}
	}
	return match.Pass, true
}
