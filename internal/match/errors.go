package match

import "errors"

var (
	ErrSessionExists   = errors.New("game_already_in_progress")
	ErrSessionNotFound = errors.New("game_not_found")
	ErrInvalidTeams    = errors.New("invalid_team_composition")
)
