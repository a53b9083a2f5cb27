package goban

// Game is an immutable position plus whose turn it is. Play returns the
// successor position, never mutating the receiver, so the session layer can
// discard a rejected move without rollback.
type Game struct {
	board     *Board
	prev      *Board // position before the last move, for simple ko
	turn      Stone
	handicap  int
	komi      float64
	captures  map[Stone]int
	moveCount int
	lastMove  *[2]int
	passes    int
}

func NewGame(size, handicap int, komi float64) *Game {
	if size <= 0 {
		size = 19
	}
	first := Black
	if handicap > 0 {
		// Handicap stones go to black; white takes the first move.
		first = White
	}
	g := &Game{
		board:    NewBoard(size),
		turn:     first,
		handicap: handicap,
		komi:     komi,
		captures: map[Stone]int{Black: 0, White: 0},
	}
	placeHandicapStones(g.board, handicap)
	return g
}

// hoshi points used for handicap placement on a 19x19 board, in placement order.
var hoshiPoints = [9][2]int{
	{3, 15}, {15, 3}, {15, 15}, {3, 3}, {9, 9},
	{9, 3}, {9, 15}, {3, 9}, {15, 9},
}

func placeHandicapStones(b *Board, n int) {
	if b.Size != 19 {
		return
	}
	if n > len(hoshiPoints) {
		n = len(hoshiPoints)
	}
	for i := 0; i < n; i++ {
		b.set(hoshiPoints[i][0], hoshiPoints[i][1], Black)
	}
}

func (g *Game) Turn() Stone { return g.turn }

func (g *Game) Board() *Board { return g.board }

func (g *Game) clone() *Game {
	captures := map[Stone]int{Black: g.captures[Black], White: g.captures[White]}
	next := *g
	next.captures = captures
	return &next
}

// Play applies a stone at (y, x) for the side to move. It returns nil when
// the move is illegal: out of bounds, occupied, suicide, or ko recapture.
func (g *Game) Play(y, x int) *Game {
	if !g.board.inBounds(y, x) || g.board.At(y, x) != Empty {
		return nil
	}

	work := g.board.clone()
	work.set(y, x, g.turn)

	captured := 0
	opponent := g.turn.Opponent()
	for _, d := range neighborOffsets {
		ny, nx := y+d[0], x+d[1]
		if !work.inBounds(ny, nx) || work.At(ny, nx) != opponent {
			continue
		}
		if _, alive := work.group(ny, nx); !alive {
			captured += work.removeGroup(ny, nx)
		}
	}

	if _, alive := work.group(y, x); !alive {
		return nil // suicide
	}
	if captured > 0 && g.prev != nil && work.equal(g.prev) {
		return nil // ko: recreating the previous position
	}

	next := g.clone()
	next.prev = g.board
	next.board = work
	next.captures[g.turn] += captured
	next.turn = opponent
	next.moveCount++
	next.lastMove = &[2]int{y, x}
	next.passes = 0
	return next
}

// Pass forfeits the turn. Two consecutive passes end the game.
func (g *Game) Pass() *Game {
	next := g.clone()
	next.prev = g.board
	next.turn = g.turn.Opponent()
	next.moveCount++
	next.lastMove = nil
	next.passes = g.passes + 1
	return next
}

// Over reports whether the game ended by consecutive passes.
func (g *Game) Over() bool { return g.passes >= 2 }

// Score settles the position by naive area counting: each side owns its
// stones plus the empty regions touching only its color; komi goes to white.
func (g *Game) Score() (black, white float64) {
	b := g.board
	seen := make(map[int]bool)
	for y := 0; y < b.Size; y++ {
		for x := 0; x < b.Size; x++ {
			switch b.At(y, x) {
			case Black:
				black++
			case White:
				white++
			case Empty:
				if seen[y*b.Size+x] {
					continue
				}
				region, owner := emptyRegion(b, y, x)
				for _, p := range region {
					seen[p[0]*b.Size+p[1]] = true
				}
				switch owner {
				case Black:
					black += float64(len(region))
				case White:
					white += float64(len(region))
				}
			}
		}
	}
	return black, white + g.komi
}

// Winner returns the leading side once the game is over.
func (g *Game) Winner() Stone {
	black, white := g.Score()
	if black > white {
		return Black
	}
	if white > black {
		return White
	}
	return Empty
}

// emptyRegion floods the empty area at (y, x) and reports which single color
// borders it; Empty means the region is neutral (touches both or neither).
func emptyRegion(b *Board, y, x int) (region [][2]int, owner Stone) {
	seen := map[int]bool{y*b.Size + x: true}
	stack := [][2]int{{y, x}}
	borders := map[Stone]bool{}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		region = append(region, p)
		for _, d := range neighborOffsets {
			ny, nx := p[0]+d[0], p[1]+d[1]
			if !b.inBounds(ny, nx) {
				continue
			}
			switch s := b.At(ny, nx); s {
			case Empty:
				if !seen[ny*b.Size+nx] {
					seen[ny*b.Size+nx] = true
					stack = append(stack, [2]int{ny, nx})
				}
			default:
				borders[s] = true
			}
		}
	}
	if borders[Black] && !borders[White] {
		return region, Black
	}
	if borders[White] && !borders[Black] {
		return region, White
	}
	return region, Empty
}

// ToJSON renders the position as a JSON-friendly value for broadcast.
func (g *Game) ToJSON() map[string]any {
	var last any
	if g.lastMove != nil {
		last = map[string]int{"y": g.lastMove[0], "x": g.lastMove[1]}
	}
	return map[string]any{
		"size":      g.board.Size,
		"board":     g.board.Grid(),
		"turn":      g.turn.String(),
		"handicap":  g.handicap,
		"komi":      g.komi,
		"captures":  map[string]int{"black": g.captures[Black], "white": g.captures[White]},
		"moveCount": g.moveCount,
		"lastMove":  last,
		"passes":    g.passes,
	}
}
