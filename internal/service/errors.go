package service

import (
	"errors"
	"fmt"

	"compactor/internal/recipe"
)

var (
	// ErrNoService means no candidate handle exposes the full capability
	// set the pipeline requires.
	ErrNoService = errors.New("no suitable crafting service found")

	// ErrDisconnected means a handle was found but its link to the
	// crafting service is down. Callers report it and exit cleanly
	// without attempting any work.
	ErrDisconnected = errors.New("crafting service is not connected")
)

// ScheduleError wraps a failed task submission. Submissions already made
// in the same batch stand; there is no rollback.
type ScheduleError struct {
	Info     recipe.PatternInfo
	Quantity int
	Err      error
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("failed to schedule %dx %s: %v", e.Quantity, e.Info.Label, e.Err)
}

func (e *ScheduleError) Unwrap() error {
	return e.Err
}
