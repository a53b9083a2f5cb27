package room

import (
	"testing"
	"time"
)

func TestSettingsDurations(t *testing.T) {
	s := Settings{BasicTime: "10m", ByoyomiTime: "30s", ByoyomiPeriods: "3"}
	if got := s.BasicDuration(); got != 10*time.Minute {
		t.Fatalf("BasicDuration = %v, want 10m", got)
	}
	if got := s.ByoyomiDuration(); got != 30*time.Second {
		t.Fatalf("ByoyomiDuration = %v, want 30s", got)
	}
	if got := s.ByoyomiCount(); got != 3 {
		t.Fatalf("ByoyomiCount = %d, want 3", got)
	}
}

func TestSettingsDegradeToZero(t *testing.T) {
	s := Settings{Handicap: "none", Komi: "junk", BasicTime: "", ByoyomiTime: "fast", ByoyomiPeriods: "-1"}
	if got := s.HandicapStones(); got != 0 {
		t.Fatalf("HandicapStones = %d, want 0", got)
	}
	if got := s.KomiPoints(); got != 0 {
		t.Fatalf("KomiPoints = %v, want 0", got)
	}
	if got := s.BasicDuration(); got != 0 {
		t.Fatalf("BasicDuration = %v, want 0", got)
	}
	if got := s.ByoyomiDuration(); got != 0 {
		t.Fatalf("ByoyomiDuration = %v, want 0", got)
	}
	if got := s.ByoyomiCount(); got != 0 {
		t.Fatalf("ByoyomiCount = %d, want 0", got)
	}
}

func TestSettingsHandicapAndKomi(t *testing.T) {
	s := Settings{Handicap: "4", Komi: "0.5"}
	if got := s.HandicapStones(); got != 4 {
		t.Fatalf("HandicapStones = %d, want 4", got)
	}
	if got := s.KomiPoints(); got != 0.5 {
		t.Fatalf("KomiPoints = %v, want 0.5", got)
	}
}
