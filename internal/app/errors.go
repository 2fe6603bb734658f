package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted      = errors.New("service not started")
	ErrRecruitNotFound = errors.New("recruit not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrInvalidRecruit  = errors.New("invalid recruit")
	ErrInvalidTeam     = errors.New("invalid team")
)
