package match

import (
	"time"

	"github.com/jisupark123/Pair-Go-Backend/internal/room"
)

// TimeControl is one team's clock: a basic budget charged by real elapsed
// time, then fixed byoyomi periods that are spent only by letting one run
// out. Milliseconds so the values broadcast as-is.
type TimeControl struct {
	BasicMs   int64 `json:"remainingBasicTimeMs"`
	PeriodMs  int64 `json:"byoyomiTimeMs"`
	Periods   int   `json:"remainingByoyomiPeriods"`
	InByoyomi bool  `json:"inByoyomi"`
}

func NewTimeControl(s room.Settings) TimeControl {
	return TimeControl{
		BasicMs:  s.BasicDuration().Milliseconds(),
		PeriodMs: s.ByoyomiDuration().Milliseconds(),
		Periods:  s.ByoyomiCount(),
	}
}

// Charge subtracts elapsed thinking time from the basic budget, clamped at
// zero. Byoyomi is a per-period deadline, not a budget, so nothing is
// charged once it has started.
func (tc *TimeControl) Charge(elapsed time.Duration) {
	if tc.InByoyomi {
		return
	}
	tc.BasicMs -= elapsed.Milliseconds()
	if tc.BasicMs < 0 {
		tc.BasicMs = 0
	}
}

// EnterByoyomi flips the clock over once the basic budget expires.
func (tc *TimeControl) EnterByoyomi() {
	tc.BasicMs = 0
	tc.InByoyomi = true
}

// UsePeriod burns one byoyomi period and reports whether the clock is out.
func (tc *TimeControl) UsePeriod() (lost bool) {
	if tc.Periods > 0 {
		tc.Periods--
	}
	return tc.Periods <= 0
}

// ArmDuration is how long the active deadline should run for this clock:
// the basic remainder until byoyomi starts, then one full period.
func (tc *TimeControl) ArmDuration() time.Duration {
	if !tc.InByoyomi {
		return time.Duration(tc.BasicMs) * time.Millisecond
	}
	return time.Duration(tc.PeriodMs) * time.Millisecond
}
