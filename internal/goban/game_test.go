package goban

import "testing"

// play runs a sequence of moves, failing the test on the first rejection.
func play(t *testing.T, g *Game, moves [][2]int) *Game {
	t.Helper()
	for i, mv := range moves {
		next := g.Play(mv[0], mv[1])
		if next == nil {
			t.Fatalf("move %d at (%d,%d) rejected", i, mv[0], mv[1])
		}
		g = next
	}
	return g
}

func TestPlayRejectsOccupiedAndOutOfBounds(t *testing.T) {
	g := NewGame(9, 0, 0)
	g = play(t, g, [][2]int{{4, 4}})
	if g.Play(4, 4) != nil {
		t.Fatal("occupied point was playable")
	}
	if g.Play(-1, 0) != nil || g.Play(9, 0) != nil {
		t.Fatal("out-of-bounds point was playable")
	}
}

func TestCaptureRemovesGroup(t *testing.T) {
	// Black surrounds the white stone at (0,1) on the edge.
	g := NewGame(9, 0, 0)
	g = play(t, g, [][2]int{
		{0, 0}, // B
		{0, 1}, // W
		{1, 1}, // B
		{5, 5}, // W elsewhere
		{0, 2}, // B captures
	})
	if got := g.Board().At(0, 1); got != Empty {
		t.Fatalf("stone at (0,1) = %v, want empty after capture", got)
	}
	if g.captures[Black] != 1 {
		t.Fatalf("black captures = %d, want 1", g.captures[Black])
	}
}

func TestSuicideRejected(t *testing.T) {
	// Black owns (0,1) and (1,0); white playing (0,0) would have no liberty.
	g := NewGame(9, 0, 0)
	g = play(t, g, [][2]int{
		{0, 1}, // B
		{5, 5}, // W
		{1, 0}, // B
	})
	if g.Turn() != White {
		t.Fatalf("turn = %v, want white", g.Turn())
	}
	if g.Play(0, 0) != nil {
		t.Fatal("suicide move was accepted")
	}
}

func TestKoRecaptureRejected(t *testing.T) {
	// Classic ko shape around (1,1)/(1,2).
	g := NewGame(9, 0, 0)
	g = play(t, g, [][2]int{
		{0, 1}, // B
		{0, 2}, // W
		{1, 0}, // B
		{1, 3}, // W
		{2, 1}, // B
		{2, 2}, // W
		{1, 2}, // B
		{1, 1}, // W captures (1,2)
	})
	if got := g.Board().At(1, 2); got != Empty {
		t.Fatalf("stone at (1,2) = %v, want empty after ko capture", got)
	}
	if g.Play(1, 2) != nil {
		t.Fatal("immediate ko recapture was accepted")
	}
	// After a move elsewhere the recapture is legal again.
	g = play(t, g, [][2]int{{5, 5}, {6, 6}})
	if g.Play(1, 2) == nil {
		t.Fatal("delayed ko recapture was rejected")
	}
}

func TestTwoPassesEndTheGame(t *testing.T) {
	g := NewGame(9, 0, 0)
	g = g.Pass()
	if g.Over() {
		t.Fatal("over after one pass")
	}
	g = g.Pass()
	if !g.Over() {
		t.Fatal("not over after two passes")
	}
}

func TestMoveResetsPassStreak(t *testing.T) {
	g := NewGame(9, 0, 0)
	g = g.Pass()
	g = play(t, g, [][2]int{{3, 3}})
	g = g.Pass()
	if g.Over() {
		t.Fatal("pass streak survived an interleaved move")
	}
}

func TestScoreCountsTerritoryAndKomi(t *testing.T) {
	// Black wall down column 4 of a 9x9 board, white wall down column 6:
	// black owns the left side, white the sliver in between is neutral.
	g := NewGame(9, 0, 6.5)
	for y := 0; y < 9; y++ {
		next := g.Play(y, 4)
		if next == nil {
			t.Fatalf("black wall move at (%d,4) rejected", y)
		}
		g = next
		next = g.Play(y, 6)
		if next == nil {
			t.Fatalf("white wall move at (%d,6) rejected", y)
		}
		g = next
	}
	black, white := g.Score()
	// 9 stones + 36 left-side points for black; 9 stones + 18 right-side
	// points for white; column 5 touches both walls and counts for no one.
	if black != 45 {
		t.Fatalf("black score = %v, want 45", black)
	}
	if white != 9+18+6.5 {
		t.Fatalf("white score = %v, want 33.5", white)
	}
	if g.Winner() != Black {
		t.Fatalf("winner = %v, want black", g.Winner())
	}
}

func TestHandicapPlacementAndTurn(t *testing.T) {
	g := NewGame(19, 4, 0.5)
	if g.Turn() != White {
		t.Fatalf("turn = %v, want white in a handicap game", g.Turn())
	}
	for i := 0; i < 4; i++ {
		p := hoshiPoints[i]
		if got := g.Board().At(p[0], p[1]); got != Black {
			t.Fatalf("hoshi %d at (%d,%d) = %v, want black", i, p[0], p[1], got)
		}
	}
	if got := g.Board().At(9, 9); got != Empty {
		t.Fatalf("center = %v, want empty with 4 stones", got)
	}
}
