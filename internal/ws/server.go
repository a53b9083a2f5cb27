package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/jisupark123/Pair-Go-Backend/internal/identity"
	"github.com/jisupark123/Pair-Go-Backend/internal/match"
	"github.com/jisupark123/Pair-Go-Backend/internal/room"
)

type Client struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	user   identity.Identity
	device room.DeviceType
	roomID string // guarded by Server.mu; a kick clears it from another goroutine
}

// Server is the realtime gateway: it authenticates the handshake, routes
// client verbs into the registry and manager, and is the broadcast channel
// both of them emit through.
type Server struct {
	idp      identity.Provider
	registry *room.Registry
	manager  *match.Manager
	upgrader websocket.Upgrader

	mu      sync.Mutex
	byConn  map[string]*Client
	members map[string]map[*Client]bool
}

func NewServer(idp identity.Provider) *Server {
	return &Server{
		idp:      idp,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		byConn:   map[string]*Client{},
		members:  map[string]map[*Client]bool{},
	}
}

// Bind attaches the core services. The server is created first because the
// registry and manager broadcast through it.
func (s *Server) Bind(reg *room.Registry, mgr *match.Manager) {
	s.registry = reg
	s.manager = mgr
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	ident, err := s.idp.Verify(token)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &Client{
		id:     "conn_" + ulid.Make().String(),
		conn:   conn,
		send:   make(chan []byte, 16),
		user:   ident,
		device: deviceTypeFromUserAgent(r.UserAgent()),
	}
	s.mu.Lock()
	s.byConn[c.id] = c
	s.mu.Unlock()
	log.Info().Str("conn_id", c.id).Int64("user_id", ident.ID).Str("device", string(c.device)).Msg("client connected")

	go s.writeLoop(c)
	s.readLoop(c)
}

// bearerToken pulls the access token from the cookie the web client sets or
// from the query string native clients use.
func bearerToken(r *http.Request) string {
	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return r.URL.Query().Get("token")
}

func (s *Server) readLoop(c *Client) {
	defer func() {
		s.unregister(c)
		_ = c.conn.Close()
	}()
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		s.handle(c, msg)
	}
}

func (s *Server) writeLoop(c *Client) {
	for raw := range c.send {
		_ = c.conn.WriteMessage(websocket.TextMessage, raw)
	}
	_ = c.conn.Close()
}

func (s *Server) handle(c *Client, msg ClientMessage) {
	switch msg.Type {
	case MsgCreateRoom:
		settings := room.DefaultSettings()
		if msg.Settings != nil {
			settings = *msg.Settings
		}
		r := s.registry.CreateRoom(c.user.ID, msg.Title, settings)
		s.sendTo(c, "roomCreated", r)

	case MsgJoinRoom:
		s.joinMembers(msg.RoomID, c)
		_, err := s.registry.Join(msg.RoomID, room.Participant{
			ID:       c.user.ID,
			Nickname: c.user.Nickname,
			ConnID:   c.id,
			Device:   c.device,
		})
		if err != nil {
			s.leaveMembers(msg.RoomID, c)
			s.sendError(c, err)
			return
		}
		s.setRoom(c, msg.RoomID)

	case MsgLeaveRoom:
		s.leaveCurrent(c)

	case MsgUpdateReady:
		if _, err := s.registry.SetReady(s.roomOf(c), c.id, msg.IsReady); err != nil {
			s.sendError(c, err)
		}

	case MsgUpdateSettings:
		if msg.Settings == nil {
			return
		}
		if _, err := s.registry.UpdateSettings(s.roomOf(c), c.user.ID, *msg.Settings); err != nil {
			s.sendError(c, err)
		}

	case MsgChangeTeam:
		if _, err := s.registry.ChangeTeam(s.roomOf(c), c.user.ID, msg.TargetID); err != nil {
			s.sendError(c, err)
		}

	case MsgKickPlayer:
		roomID := s.roomOf(c)
		_, kickedConn, err := s.registry.Kick(roomID, c.user.ID, msg.TargetID)
		if err != nil {
			s.sendError(c, err)
			return
		}
		s.detachConn(roomID, kickedConn)

	case MsgAddBots:
		count := msg.Count
		if count <= 0 {
			count = 1
		}
		if _, err := s.registry.AddBots(s.roomOf(c), c.user.ID, count); err != nil {
			s.sendError(c, err)
		}

	case MsgStartGame:
		roomID := s.roomOf(c)
		snap, err := s.registry.StartMatch(roomID, c.user.ID)
		if err != nil {
			s.sendError(c, err)
			return
		}
		if _, err := s.manager.CreateSession(snap); err != nil {
			s.registry.MatchEnded(roomID)
			s.sendError(c, err)
		}

	case MsgPlayMove:
		// A nil view is a normal race (not our turn anymore); stay silent.
		s.manager.ApplyMove(s.roomOf(c), c.id, match.Coord{Y: msg.Y, X: msg.X})

	case MsgResign:
		s.manager.Resign(s.roomOf(c), c.id)

	case MsgReconnect:
		s.reconnect(c, msg.RoomID)
	}
}

// reconnect rebinds a returning user's connection into the lobby room and,
// when a match is still running, into its session, then replays current
// state to just that client.
func (s *Server) reconnect(c *Client, roomID string) {
	if roomID == "" {
		return
	}
	snap, roomErr := s.registry.RebindConnection(roomID, c.user.ID, c.id)
	sessErr := s.manager.RebindConnection(roomID, c.user.ID, c.id)
	if roomErr != nil && sessErr != nil {
		s.sendError(c, room.ErrRoomNotFound)
		return
	}
	s.setRoom(c, roomID)
	s.joinMembers(roomID, c)
	if roomErr == nil {
		s.sendTo(c, "roomUpdate", snap)
	}
	if view, err := s.manager.Serialize(roomID); err == nil {
		s.sendTo(c, "gameUpdate", view)
	}
}

func (s *Server) leaveCurrent(c *Client) {
	roomID := s.roomOf(c)
	if roomID == "" {
		return
	}
	s.setRoom(c, "")
	s.leaveMembers(roomID, c)
	s.registry.Leave(roomID, c.id)
}

// roomOf and setRoom are the only sanctioned accessors for Client.roomID:
// a kick clears the field from the kicker's goroutine while the victim's
// read loop is still running.
func (s *Server) roomOf(c *Client) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.roomID
}

func (s *Server) setRoom(c *Client, roomID string) {
	s.mu.Lock()
	c.roomID = roomID
	s.mu.Unlock()
}

func (s *Server) unregister(c *Client) {
	s.leaveCurrent(c)
	s.mu.Lock()
	if s.byConn[c.id] == c {
		delete(s.byConn, c.id)
		close(c.send)
	}
	s.mu.Unlock()
	log.Info().Str("conn_id", c.id).Msg("client disconnected")
}

func (s *Server) joinMembers(roomID string, c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.members[roomID]
	if set == nil {
		set = map[*Client]bool{}
		s.members[roomID] = set
	}
	set[c] = true
}

func (s *Server) leaveMembers(roomID string, c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set := s.members[roomID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(s.members, roomID)
		}
	}
}

// detachConn drops a kicked connection out of the room's broadcast set.
func (s *Server) detachConn(roomID, connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set := s.members[roomID]; set != nil {
		for c := range set {
			if c.id == connID {
				delete(set, c)
				c.roomID = ""
			}
		}
	}
}

// Emit broadcasts an event to everyone in a room or session. A client whose
// outbox is full is dropped rather than stalling the rest.
func (s *Server) Emit(id, event string, payload any) {
	raw, err := json.Marshal(ServerMessage{Event: event, Data: payload})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("marshal broadcast failed")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.members[id] {
		select {
		case c.send <- raw:
		default:
			delete(s.members[id], c)
			delete(s.byConn, c.id)
			close(c.send)
		}
	}
}

// EmitTo targets one connection, e.g. the forced-removal notice.
func (s *Server) EmitTo(connID, event string, payload any) {
	raw, err := json.Marshal(ServerMessage{Event: event, Data: payload})
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.byConn[connID]; c != nil {
		select {
		case c.send <- raw:
		default:
		}
	}
}

func (s *Server) sendTo(c *Client, event string, payload any) {
	s.EmitTo(c.id, event, payload)
}

func (s *Server) sendError(c *Client, err error) {
	var msg string
	if err != nil {
		msg = err.Error()
	}
	if errors.Is(err, room.ErrRoomNotFound) || errors.Is(err, match.ErrSessionNotFound) {
		log.Debug().Str("conn_id", c.id).Str("code", msg).Msg("request against missing entity")
	}
	s.sendTo(c, "error", map[string]string{"message": msg})
}
