package room

import (
	"strconv"
	"time"
)

// Settings are kept as the client-facing strings ("10m", "30s", "3", "none")
// and parsed by leading integer, so unit suffixes and junk degrade to zero
// instead of failing the whole payload.
type Settings struct {
	Handicap       string `json:"handicap"`
	Komi           string `json:"komi"`
	StoneColor     string `json:"stoneColor"`
	BasicTime      string `json:"basicTime"`
	ByoyomiTime    string `json:"byoyomiTime"`
	ByoyomiPeriods string `json:"byoyomiPeriods"`
}

func DefaultSettings() Settings {
	return Settings{
		Handicap:       "none",
		Komi:           "6.5",
		StoneColor:     "auto",
		BasicTime:      "10m",
		ByoyomiTime:    "30s",
		ByoyomiPeriods: "3",
	}
}

// HandicapStones returns the configured handicap, 0 when none.
func (s Settings) HandicapStones() int {
	return leadingInt(s.Handicap)
}

func (s Settings) KomiPoints() float64 {
	v, err := strconv.ParseFloat(s.Komi, 64)
	if err != nil {
		return 0
	}
	return v
}

// BasicDuration is the main time budget; the value is in minutes.
func (s Settings) BasicDuration() time.Duration {
	return time.Duration(leadingInt(s.BasicTime)) * time.Minute
}

// ByoyomiDuration is one overtime period; the value is in seconds.
func (s Settings) ByoyomiDuration() time.Duration {
	return time.Duration(leadingInt(s.ByoyomiTime)) * time.Second
}

func (s Settings) ByoyomiCount() int {
	return leadingInt(s.ByoyomiPeriods)
}

func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
