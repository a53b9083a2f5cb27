package match

import "testing"

func TestTurnCycleOrder(t *testing.T) {
	tc := NewTurnCycle(false)
	want := []Turn{
		{Color: ColorBlack, Seat: 0},
		{Color: ColorWhite, Seat: 0},
		{Color: ColorBlack, Seat: 1},
		{Color: ColorWhite, Seat: 1},
	}
	for i := 0; i < 8; i++ {
		got := tc.Current()
		if got != want[i%4] {
			t.Fatalf("slot %d = %+v, want %+v", i, got, want[i%4])
		}
		tc.Advance()
	}
}

func TestTurnCycleHandicapStartsWhite(t *testing.T) {
	tc := NewTurnCycle(true)
	want := []Turn{
		{Color: ColorWhite, Seat: 0},
		{Color: ColorBlack, Seat: 0},
		{Color: ColorWhite, Seat: 1},
		{Color: ColorBlack, Seat: 1},
	}
	for i, w := range want {
		if got := tc.Current(); got != w {
			t.Fatalf("slot %d = %+v, want %+v", i, got, w)
		}
		tc.Advance()
	}
	if got := tc.Current(); got != want[0] {
		t.Fatalf("cycle did not wrap: %+v", got)
	}
}

func TestTurnCycleNoRepeatWithinCycle(t *testing.T) {
	tc := NewTurnCycle(false)
	seen := map[Turn]bool{}
	for i := 0; i < 4; i++ {
		turn := tc.Current()
		if seen[turn] {
			t.Fatalf("turn %+v repeated within one cycle", turn)
		}
		seen[turn] = true
		tc.Advance()
	}
}
