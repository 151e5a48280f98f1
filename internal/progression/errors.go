package progression

import "errors"

// Sentinel errors returned by session mutation operations. The HTTP layer
// maps these to response statuses via errors.Is.
var (
	// ErrSessionCompleted rejects any mutation of a completed session.
	ErrSessionCompleted = errors.New("session is completed and cannot be modified")

	// ErrExerciseNotInSession means the exercise has no sets in the session.
	ErrExerciseNotInSession = errors.New("exercise has no sets in this session")

	// ErrExerciseInSession means the exercise already has sets in the session.
	ErrExerciseInSession = errors.New("exercise already has sets in this session")

	// ErrLastSet rejects removing the only remaining set of an exercise.
	ErrLastSet = errors.New("cannot remove the last set of an exercise")
)
