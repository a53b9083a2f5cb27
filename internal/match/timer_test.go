package match

import (
	"testing"
	"time"
)

func TestTimerRearmInvalidatesOldGen(t *testing.T) {
	var st sessionTimer
	g1 := st.Arm(time.Hour, func(uint64) {})
	g2 := st.Arm(time.Hour, func(uint64) {})
	if g2 <= g1 {
		t.Fatalf("generations did not advance: %d then %d", g1, g2)
	}
	if st.live(g1) {
		t.Fatal("old generation still live after rearm")
	}
	if !st.live(g2) {
		t.Fatal("new generation not live")
	}
}

func TestTimerCancelKillsDeadline(t *testing.T) {
	var st sessionTimer
	gen := st.Arm(time.Hour, func(uint64) {})
	st.Cancel()
	if st.live(gen) {
		t.Fatal("deadline live after cancel")
	}
}

func TestTimerFirePassesArmedGen(t *testing.T) {
	var st sessionTimer
	fired := make(chan uint64, 1)
	gen := st.Arm(time.Millisecond, func(g uint64) { fired <- g })
	select {
	case got := <-fired:
		if got != gen {
			t.Fatalf("fired gen = %d, want %d", got, gen)
		}
	case <-time.After(time.Second):
		t.Fatal("deadline never fired")
	}
}
