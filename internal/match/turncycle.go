package match

// Color is the stone side whose turn alternates.
type Color string

const (
	ColorBlack Color = "black"
	ColorWhite Color = "white"
)

func (c Color) Other() Color {
	if c == ColorBlack {
		return ColorWhite
	}
	return ColorBlack
}

// Turn is one slot of the cycle: which side moves and which of its two
// seats plays the stone.
type Turn struct {
	Color Color `json:"stoneColor"`
	Seat  int   `json:"playerIndex"`
}

// TurnCycle walks the fixed 4-slot order of a pair match. Handicap games
// start with white because black's compensation stones are already placed.
type TurnCycle struct {
	slots [4]Turn
	idx   int
}

func NewTurnCycle(handicap bool) *TurnCycle {
	if handicap {
		return &TurnCycle{slots: [4]Turn{
			{Color: ColorWhite, Seat: 0},
			{Color: ColorBlack, Seat: 0},
			{Color: ColorWhite, Seat: 1},
			{Color: ColorBlack, Seat: 1},
		}}
	}
	return &TurnCycle{slots: [4]Turn{
		{Color: ColorBlack, Seat: 0},
		{Color: ColorWhite, Seat: 0},
		{Color: ColorBlack, Seat: 1},
		{Color: ColorWhite, Seat: 1},
	}}
}

func (tc *TurnCycle) Current() Turn {
	return tc.slots[tc.idx]
}

func (tc *TurnCycle) Advance() Turn {
	tc.idx = (tc.idx + 1) % len(tc.slots)
	return tc.slots[tc.idx]
}
