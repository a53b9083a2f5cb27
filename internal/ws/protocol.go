package ws

import "github.com/jisupark123/Pair-Go-Backend/internal/room"

// ClientMessage is the inbound envelope; Type picks the verb and the verb
// reads the fields it needs.
type ClientMessage struct {
	Type     string         `json:"type"`
	RoomID   string         `json:"roomId,omitempty"`
	Title    string         `json:"title,omitempty"`
	Settings *room.Settings `json:"settings,omitempty"`
	IsReady  bool           `json:"isReady,omitempty"`
	TargetID int64          `json:"targetUserId,omitempty"`
	Count    int            `json:"count,omitempty"`
	Y        int            `json:"y"`
	X        int            `json:"x"`
}

// ServerMessage is the outbound envelope: a named event plus its payload,
// mirroring the socket.io shape the clients already speak.
type ServerMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Client verb names.
const (
	MsgCreateRoom     = "createRoom"
	MsgJoinRoom       = "joinRoom"
	MsgLeaveRoom      = "leaveRoom"
	MsgUpdateReady    = "updateReadyStatus"
	MsgUpdateSettings = "updateRoomSettings"
	MsgChangeTeam     = "changeTeam"
	MsgKickPlayer     = "kickPlayer"
	MsgAddBots        = "addBots"
	MsgStartGame      = "startGame"
	MsgPlayMove       = "playMove"
	MsgResign         = "resign"
	MsgReconnect      = "reconnect"
)
