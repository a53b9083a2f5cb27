package goban

// Stone is the content of a board intersection.
type Stone int8

const (
	Empty Stone = iota
	Black
	White
)

func (s Stone) Opponent() Stone {
	switch s {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

func (s Stone) String() string {
	switch s {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// Board is a square grid of intersections indexed by (y, x).
type Board struct {
	Size  int
	cells []Stone
}

func NewBoard(size int) *Board {
	return &Board{Size: size, cells: make([]Stone, size*size)}
}

func (b *Board) At(y, x int) Stone {
	return b.cells[y*b.Size+x]
}

func (b *Board) set(y, x int, s Stone) {
	b.cells[y*b.Size+x] = s
}

func (b *Board) inBounds(y, x int) bool {
	return y >= 0 && y < b.Size && x >= 0 && x < b.Size
}

func (b *Board) clone() *Board {
	cells := make([]Stone, len(b.cells))
	copy(cells, b.cells)
	return &Board{Size: b.Size, cells: cells}
}

func (b *Board) equal(other *Board) bool {
	if other == nil || b.Size != other.Size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// group collects the connected stones of the same color at (y, x) and
// reports whether the group has at least one liberty.
func (b *Board) group(y, x int) (stones [][2]int, hasLiberty bool) {
	color := b.At(y, x)
	if color == Empty {
		return nil, true
	}
	seen := make(map[int]bool)
	stack := [][2]int{{y, x}}
	seen[y*b.Size+x] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stones = append(stones, p)
		for _, d := range neighborOffsets {
			ny, nx := p[0]+d[0], p[1]+d[1]
			if !b.inBounds(ny, nx) {
				continue
			}
			switch b.At(ny, nx) {
			case Empty:
				hasLiberty = true
			case color:
				if !seen[ny*b.Size+nx] {
					seen[ny*b.Size+nx] = true
					stack = append(stack, [2]int{ny, nx})
				}
			}
		}
	}
	return stones, hasLiberty
}

// removeGroup clears the group at (y, x) and returns the number of stones removed.
func (b *Board) removeGroup(y, x int) int {
	stones, _ := b.group(y, x)
	for _, p := range stones {
		b.set(p[0], p[1], Empty)
	}
	return len(stones)
}

// EmptyCoordinates lists every empty intersection as (y, x) pairs.
func (b *Board) EmptyCoordinates() [][2]int {
	out := make([][2]int, 0, len(b.cells))
	for i, s := range b.cells {
		if s == Empty {
			out = append(out, [2]int{i / b.Size, i % b.Size})
		}
	}
	return out
}

// Grid returns the board as nested int slices for serialization.
func (b *Board) Grid() [][]int {
	rows := make([][]int, b.Size)
	for y := 0; y < b.Size; y++ {
		row := make([]int, b.Size)
		for x := 0; x < b.Size; x++ {
			row[x] = int(b.At(y, x))
		}
		rows[y] = row
	}
	return rows
}
