package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sproutedu/sprout-api/internal/generation"
	"github.com/sproutedu/sprout-api/internal/store"
)

// ReflectionTask generates a follow-up question for a journal entry and
// saves it onto the entry. The rate budget consumed is the entry owner's.
type ReflectionTask struct {
	id        uuid.UUID
	entryID   uuid.UUID
	journals  store.JournalStore
	users     store.UserStore
	generator generation.Generator
	logger    *slog.Logger
}

// Ensure ReflectionTask implements Task.
var _ Task = (*ReflectionTask)(nil)

// ID implements Task.ID.
func (t *ReflectionTask) ID() uuid.UUID {
	return t.id
}

// Type implements Task.Type.
func (t *ReflectionTask) Type() string {
	return TaskTypeReflection
}

// Execute loads the entry, generates a reflection question tuned to the
// owner's age band, and stores it back. A rate-limited owner simply gets
// no reflection; the entry itself is untouched.
func (t *ReflectionTask) Execute(ctx context.Context) error {
	entry, err := t.journals.GetByID(ctx, t.entryID)
	if err != nil {
		return fmt.Errorf("failed to load journal entry: %w", err)
	}

	owner, err := t.users.GetByID(ctx, entry.UserID)
	if err != nil {
		return fmt.Errorf("failed to load entry owner: %w", err)
	}

	question, source, err := t.generator.GenerateReflection(
		ctx, owner.ID.String(), entry, owner.AgeBand())
	if err != nil {
		return fmt.Errorf("failed to generate reflection: %w", err)
	}

	entry.Reflection = question
	if err := t.journals.Update(ctx, entry); err != nil {
		return fmt.Errorf("failed to save reflection: %w", err)
	}

	t.logger.Info("reflection generated",
		"entry_id", entry.ID,
		"source", source)
	return nil
}

// ReflectionTaskFactory creates ReflectionTask instances with shared
// dependencies.
type ReflectionTaskFactory struct {
	journals  store.JournalStore
	users     store.UserStore
	generator generation.Generator
	logger    *slog.Logger
}

// NewReflectionTaskFactory creates a factory for reflection tasks.
func NewReflectionTaskFactory(
	journals store.JournalStore,
	users store.UserStore,
	generator generation.Generator,
	logger *slog.Logger,
) *ReflectionTaskFactory {
	return &ReflectionTaskFactory{
		journals:  journals,
		users:     users,
		generator: generator,
		logger:    logger.With("component", "reflection_task"),
	}
}

// CreateTask creates a new ReflectionTask for the given journal entry.
func (f *ReflectionTaskFactory) CreateTask(entryID uuid.UUID) (Task, error) {
	if entryID == uuid.Nil {
		return nil, fmt.Errorf("entry ID cannot be empty")
	}
	return &ReflectionTask{
		id:        uuid.New(),
		entryID:   entryID,
		journals:  f.journals,
		users:     f.users,
		generator: f.generator,
		logger:    f.logger,
	}, nil
}
