// Package task provides in-process background task execution. Tasks are
// best-effort: a failed reflection generation is logged and dropped, not
// retried, because the fallback path guarantees usable content on the
// next synchronous request.
package task

import (
	"context"

	"github.com/google/uuid"
)

// Task type constants.
const (
	// TaskTypeReflection generates a follow-up question for a journal
	// entry after it is created.
	TaskTypeReflection = "reflection_generation"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier.
	ID() uuid.UUID

	// Type returns the task type identifier.
	Type() string

	// Execute runs the task logic.
	Execute(ctx context.Context) error
}
