package service

import "errors"

// Errors surfaced by room operations. Validation and permission
// failures never mutate room state and are reported only to the
// requesting connection, never broadcast.
var (
	// ErrForbidden is returned when a non-admin attempts an admin-only
	// operation
	ErrForbidden = errors.New("operation restricted to the room admin")

	// ErrDuplicateVote is returned when a participant votes twice in
	// the same round
	ErrDuplicateVote = errors.New("vote already submitted for this task")

	// ErrNoTask is returned when a vote arrives while no task is open
	ErrNoTask = errors.New("no task is open for voting")

	// ErrNoVotes is returned when a round is closed before anyone voted
	ErrNoVotes = errors.New("no votes have been submitted")

	// ErrCapacityExhausted is returned when no unique room code could
	// be generated within the configured attempt budget
	ErrCapacityExhausted = errors.New("room code space exhausted")
)
