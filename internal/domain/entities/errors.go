package entities

import "errors"

// Domain errors
var (
	// Voting errors
	ErrInvalidVoteChoice   = errors.New("invalid vote choice")
	ErrInvalidMajorityType = errors.New("invalid majority type")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidName  = errors.New("invalid name")
)
