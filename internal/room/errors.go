package room

import "errors"

var (
	ErrRoomNotFound   = errors.New("room_not_found")
	ErrPlayerNotFound = errors.New("player_not_found")
	ErrAlreadyInRoom  = errors.New("already_in_room")
	ErrRoomFull       = errors.New("room_full")
	ErrNotHost        = errors.New("not_host")
	ErrKickSelf       = errors.New("cannot_kick_self")
	ErrGameInProgress = errors.New("game_in_progress")
	ErrNotStartable   = errors.New("start_conditions_unmet")
)
