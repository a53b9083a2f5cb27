package room

import "time"

type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

func (t Team) Other() Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
	DeviceDesktop DeviceType = "desktop"
)

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusDeleting Status = "deleting"
)

// Participant is one connected (or bot) player inside a room.
type Participant struct {
	ID       int64      `json:"id"`
	Nickname string     `json:"nickname"`
	ConnID   string     `json:"-"`
	Device   DeviceType `json:"deviceType"`
	Ready    bool       `json:"isReady"`
	Team     Team       `json:"team"`
	IsBot    bool       `json:"isBot"`
}

// Room holds the lobby state for one invite code. Players keep join order;
// host succession picks index 0 of what remains.
type Room struct {
	ID        string         `json:"id"`
	HostID    int64          `json:"hostId"`
	Title     string         `json:"title"`
	Status    Status         `json:"status"`
	Settings  Settings       `json:"settings"`
	Players   []*Participant `json:"players"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (r *Room) player(id int64) *Participant {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) playerByConn(connID string) *Participant {
	for _, p := range r.Players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

func (r *Room) teamCount(t Team) int {
	n := 0
	for _, p := range r.Players {
		if p.Team == t {
			n++
		}
	}
	return n
}

// Snapshot returns a detached copy safe to hand outside the registry lock.
func (r *Room) Snapshot() *Room {
	players := make([]*Participant, len(r.Players))
	for i, p := range r.Players {
		cp := *p
		players[i] = &cp
	}
	cp := *r
	cp.Players = players
	return &cp
}
