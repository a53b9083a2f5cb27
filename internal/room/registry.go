package room

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

const (
	maxPlayers = 4
	teamSize   = 2
	inviteLen  = 6
	botNickLen = 4
)

// emptyRoomGrace is how long an emptied room lingers in deleting status
// before it is reaped; a join within the window revives it.
var emptyRoomGrace = 30 * time.Second

// Emitter is the broadcast channel the registry notifies after every
// state-changing operation.
type Emitter interface {
	Emit(roomID, event string, payload any)
	EmitTo(connID, event string, payload any)
}

// Registry owns every lobby room, keyed by invite code. All mutation goes
// through its methods; snapshots are handed out, never live rooms.
type Registry struct {
	mu      sync.Mutex
	rooms   map[string]*Room
	reapers map[string]*time.Timer
	emitter Emitter
	botSeq  int64 // monotonic bot id source, seeded from the clock
}

func NewRegistry(e Emitter) *Registry {
	return &Registry{
		rooms:   map[string]*Room{},
		reapers: map[string]*time.Timer{},
		emitter: e,
		botSeq:  time.Now().UnixMilli(),
	}
}

func (reg *Registry) CreateRoom(hostID int64, title string, settings Settings) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	id := newInviteCode(inviteLen)
	for reg.rooms[id] != nil {
		id = newInviteCode(inviteLen)
	}
	r := &Room{
		ID:        id,
		HostID:    hostID,
		Title:     title,
		Status:    StatusWaiting,
		Settings:  settings,
		Players:   []*Participant{},
		CreatedAt: time.Now(),
	}
	reg.rooms[id] = r
	log.Info().Str("room_id", id).Int64("host_id", hostID).Msg("room created")
	return r.Snapshot()
}

func (reg *Registry) Get(roomID string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r := reg.rooms[roomID]
	if r == nil {
		return nil, ErrRoomNotFound
	}
	return r.Snapshot(), nil
}

func (reg *Registry) Rooms() []*Room {
	reg.mu.Lock()
	out := make([]*Room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		out = append(out, r.Snapshot())
	}
	reg.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (reg *Registry) Join(roomID string, p Participant) (*Room, error) {
	reg.mu.Lock()
	r := reg.rooms[roomID]
	if r == nil {
		reg.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	if r.Status == StatusDeleting {
		if t := reg.reapers[roomID]; t != nil {
			t.Stop()
			delete(reg.reapers, roomID)
		}
		r.Status = StatusWaiting
	}
	if err := reg.joinLocked(r, &p); err != nil {
		reg.mu.Unlock()
		return nil, err
	}
	snap := r.Snapshot()
	reg.mu.Unlock()

	reg.emitter.Emit(roomID, "roomUpdate", snap)
	return snap, nil
}

// joinLocked admits one participant, balancing teams: random pick while both
// sides are open, otherwise the side with a free seat.
func (reg *Registry) joinLocked(r *Room, p *Participant) error {
	if r.player(p.ID) != nil {
		return ErrAlreadyInRoom
	}
	if len(r.Players) >= maxPlayers {
		return ErrRoomFull
	}

	redCount := r.teamCount(TeamRed)
	blueCount := r.teamCount(TeamBlue)
	switch {
	case redCount < teamSize && blueCount < teamSize:
		if rand.Intn(2) == 0 {
			p.Team = TeamRed
		} else {
			p.Team = TeamBlue
		}
	case redCount >= teamSize:
		p.Team = TeamBlue
	default:
		p.Team = TeamRed
	}

	p.Ready = p.ID == r.HostID // host is always ready
	r.Players = append(r.Players, p)
	return nil
}

// Leave removes the participant owning connID. The returned snapshot is nil
// when the room was already gone.
func (reg *Registry) Leave(roomID, connID string) *Room {
	reg.mu.Lock()
	r := reg.rooms[roomID]
	if r == nil {
		reg.mu.Unlock()
		return nil
	}
	leaving := r.playerByConn(connID)
	if leaving == nil {
		snap := r.Snapshot()
		reg.mu.Unlock()
		return snap
	}
	reg.removeLocked(r, leaving)
	empty := len(r.Players) == 0
	snap := r.Snapshot()
	reg.mu.Unlock()

	if !empty {
		reg.emitter.Emit(roomID, "roomUpdate", snap)
	}
	return snap
}

// removeLocked is the single removal path shared by leave and kick: host
// succession goes to join-order index 0, an emptied room enters deleting
// status with a reap timer armed.
func (reg *Registry) removeLocked(r *Room, leaving *Participant) {
	players := r.Players[:0]
	for _, p := range r.Players {
		if p != leaving {
			players = append(players, p)
		}
	}
	r.Players = players

	if len(r.Players) == 0 {
		r.Status = StatusDeleting
		roomID := r.ID
		reg.reapers[roomID] = time.AfterFunc(emptyRoomGrace, func() { reg.reap(roomID) })
		return
	}
	if r.HostID == leaving.ID {
		next := r.Players[0]
		r.HostID = next.ID
		next.Ready = true
		log.Info().Str("room_id", r.ID).Int64("host_id", next.ID).Msg("host reassigned")
	}
}

func (reg *Registry) reap(roomID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r := reg.rooms[roomID]
	if r == nil || r.Status != StatusDeleting || len(r.Players) > 0 {
		return
	}
	delete(reg.rooms, roomID)
	delete(reg.reapers, roomID)
	log.Info().Str("room_id", roomID).Msg("empty room reaped")
}

func (reg *Registry) SetReady(roomID, connID string, ready bool) (*Room, error) {
	reg.mu.Lock()
	r := reg.rooms[roomID]
	if r == nil {
		reg.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	if p := r.playerByConn(connID); p != nil {
		if p.ID == r.HostID {
			p.Ready = true
		} else {
			p.Ready = ready
		}
	}
	snap := r.Snapshot()
	reg.mu.Unlock()

	reg.emitter.Emit(roomID, "roomUpdate", snap)
	return snap, nil
}

func (reg *Registry) UpdateSettings(roomID string, requesterID int64, settings Settings) (*Room, error) {
	reg.mu.Lock()
	r := reg.rooms[roomID]
	if r == nil {
		reg.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	if r.HostID != requesterID {
		reg.mu.Unlock()
		return nil, ErrNotHost
	}
	r.Settings = settings
	snap := r.Snapshot()
	reg.mu.Unlock()

	reg.emitter.Emit(roomID, "roomUpdate", snap)
	return snap, nil
}

// ChangeTeam toggles the target's team. Players may move themselves; only
// the host may move someone else.
func (reg *Registry) ChangeTeam(roomID string, requesterID, targetID int64) (*Room, error) {
	reg.mu.Lock()
	r := reg.rooms[roomID]
	if r == nil {
		reg.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	target := r.player(targetID)
	if target == nil {
		reg.mu.Unlock()
		return nil, ErrPlayerNotFound
	}
	if requesterID != targetID && r.HostID != requesterID {
		reg.mu.Unlock()
		return nil, ErrNotHost
	}
	target.Team = target.Team.Other()
	snap := r.Snapshot()
	reg.mu.Unlock()

	reg.emitter.Emit(roomID, "roomUpdate", snap)
	return snap, nil
}

// Kick force-removes the target and returns the connection id that was
// bound to it so the transport can drop the socket.
func (reg *Registry) Kick(roomID string, requesterID, targetID int64) (*Room, string, error) {
	reg.mu.Lock()
	r := reg.rooms[roomID]
	if r == nil {
		reg.mu.Unlock()
		return nil, "", ErrRoomNotFound
	}
	if r.HostID != requesterID {
		reg.mu.Unlock()
		return nil, "", ErrNotHost
	}
	if requesterID == targetID {
		reg.mu.Unlock()
		return nil, "", ErrKickSelf
	}
	target := r.player(targetID)
	if target == nil {
		reg.mu.Unlock()
		return nil, "", ErrPlayerNotFound
	}
	connID := target.ConnID
	reg.removeLocked(r, target)
	snap := r.Snapshot()
	reg.mu.Unlock()

	reg.emitter.EmitTo(connID, "imgOut", map[string]any{"roomId": roomID})
	reg.emitter.Emit(roomID, "roomUpdate", snap)
	return snap, connID, nil
}

func (reg *Registry) TransferHost(roomID string, requesterID, targetID int64) (*Room, error) {
	reg.mu.Lock()
	r := reg.rooms[roomID]
	if r == nil {
		reg.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	if r.HostID != requesterID {
		reg.mu.Unlock()
		return nil, ErrNotHost
	}
	target := r.player(targetID)
	if target == nil {
		reg.mu.Unlock()
		return nil, ErrPlayerNotFound
	}
	r.HostID = targetID
	target.Ready = true
	snap := r.Snapshot()
	reg.mu.Unlock()

	reg.emitter.Emit(roomID, "roomUpdate", snap)
	return snap, nil
}

// AddBots fills open seats with computer-controlled participants. Bots
// arrive ready, so a host can start a match short-handed of humans.
func (reg *Registry) AddBots(roomID string, requesterID int64, count int) (*Room, error) {
	reg.mu.Lock()
	r := reg.rooms[roomID]
	if r == nil {
		reg.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	if r.HostID != requesterID {
		reg.mu.Unlock()
		return nil, ErrNotHost
	}
	added := 0
	for i := 0; i < count; i++ {
		reg.botSeq++
		bot := &Participant{
			ID:       reg.botSeq,
			Nickname: "Bot_" + ulid.Make().String()[:botNickLen],
			ConnID:   fmt.Sprintf("bot_%s", ulid.Make().String()),
			Device:   DeviceDesktop,
			IsBot:    true,
		}
		if err := reg.joinLocked(r, bot); err != nil {
			break
		}
		bot.Ready = true
		added++
	}
	snap := r.Snapshot()
	reg.mu.Unlock()

	if added > 0 {
		reg.emitter.Emit(roomID, "roomUpdate", snap)
	}
	return snap, nil
}

// StartMatch validates the start preconditions and flips the room to
// playing; the caller hands the returned snapshot to the session manager.
func (reg *Registry) StartMatch(roomID string, requesterID int64) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r := reg.rooms[roomID]
	if r == nil {
		return nil, ErrRoomNotFound
	}
	if r.HostID != requesterID {
		return nil, ErrNotHost
	}
	if r.Status == StatusPlaying {
		return nil, ErrGameInProgress
	}
	if len(r.Players) != maxPlayers {
		return nil, ErrNotStartable
	}
	for _, p := range r.Players {
		if !p.Ready {
			return nil, ErrNotStartable
		}
	}
	if r.teamCount(TeamRed) != teamSize || r.teamCount(TeamBlue) != teamSize {
		return nil, ErrNotStartable
	}
	r.Status = StatusPlaying
	return r.Snapshot(), nil
}

// MatchEnded reverts a playing room to waiting once its session is gone.
func (reg *Registry) MatchEnded(roomID string) {
	reg.mu.Lock()
	r := reg.rooms[roomID]
	if r == nil || r.Status != StatusPlaying {
		reg.mu.Unlock()
		return
	}
	r.Status = StatusWaiting
	snap := r.Snapshot()
	reg.mu.Unlock()

	reg.emitter.Emit(roomID, "roomUpdate", snap)
}

// RebindConnection swaps the stored connection id after a reconnect.
func (reg *Registry) RebindConnection(roomID string, participantID int64, connID string) (*Room, error) {
	reg.mu.Lock()
	r := reg.rooms[roomID]
	if r == nil {
		reg.mu.Unlock()
		return nil, ErrRoomNotFound
	}
	p := r.player(participantID)
	if p == nil {
		reg.mu.Unlock()
		return nil, ErrPlayerNotFound
	}
	p.ConnID = connID
	snap := r.Snapshot()
	reg.mu.Unlock()
	return snap, nil
}
