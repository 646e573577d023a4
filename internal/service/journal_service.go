package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/events"
	"github.com/sproutedu/sprout-api/internal/store"
	"github.com/sproutedu/sprout-api/internal/task"
)

// JournalService provides journal-related operations, enforcing ownership
// on every mutation.
type JournalService interface {
	// CreateEntry creates a new entry and emits a reflection-generation
	// event for asynchronous processing.
	CreateEntry(ctx context.Context, userID uuid.UUID, title, body string, mood domain.Mood) (*domain.JournalEntry, error)

	// GetEntry retrieves an entry the requester may read: their own, or
	// any shared one.
	GetEntry(ctx context.Context, requesterID, entryID uuid.UUID) (*domain.JournalEntry, error)

	// ListEntries retrieves the requester's own entries, newest first.
	ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.JournalEntry, error)

	// ListSharedFeed retrieves shared entries across the family.
	ListSharedFeed(ctx context.Context, limit, offset int) ([]*domain.JournalEntry, error)

	// UpdateEntry edits an entry's title, body and mood.
	// Returns ErrNotOwner if the requester does not own it.
	UpdateEntry(ctx context.Context, requesterID, entryID uuid.UUID, title, body string, mood domain.Mood) (*domain.JournalEntry, error)

	// SetShared shares or unshares an entry on the family feed.
	SetShared(ctx context.Context, requesterID, entryID uuid.UUID, shared bool) (*domain.JournalEntry, error)

	// LikeEntry adds a like to a shared entry and returns the new count.
	// Returns ErrNotShared for private entries.
	LikeEntry(ctx context.Context, requesterID, entryID uuid.UUID) (int, error)

	// DeleteEntry removes an entry the requester owns.
	DeleteEntry(ctx context.Context, requesterID, entryID uuid.UUID) error
}

// journalServiceImpl implements the JournalService interface.
type journalServiceImpl struct {
	db       *sql.DB
	journals store.JournalStore
	emitter  events.EventEmitter
	logger   *slog.Logger
}

// NewJournalService creates a new JournalService.
// It returns an error if any of the required dependencies are nil.
func NewJournalService(
	db *sql.DB,
	journals store.JournalStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (JournalService, error) {
	if db == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if journals == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "journal store cannot be nil"}
	}
	if emitter == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "event emitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &journalServiceImpl{
		db:       db,
		journals: journals,
		emitter:  emitter,
		logger:   logger.With("component", "journal_service"),
	}, nil
}

// CreateEntry creates a new entry inside a transaction, then emits a
// reflection event. A failed emit does not fail the create; reflection is
// best-effort.
func (s *journalServiceImpl) CreateEntry(
	ctx context.Context,
	userID uuid.UUID,
	title, body string,
	mood domain.Mood,
) (*domain.JournalEntry, error) {
	entry, err := domain.NewJournalEntry(userID, title, body, mood)
	if err != nil {
		return nil, &ServiceError{Operation: "create_entry", Message: "invalid entry", Err: err}
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.journals.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		s.logger.Error("failed to create journal entry",
			"error", err,
			"user_id", userID)
		return nil, &ServiceError{Operation: "create_entry", Message: "failed to save entry", Err: err}
	}

	s.logger.Info("journal entry created",
		"entry_id", entry.ID,
		"user_id", userID)

	payload := struct {
		EntryID uuid.UUID `json:"entry_id"`
	}{EntryID: entry.ID}

	event, err := events.NewTaskRequestEvent(task.TaskTypeReflection, payload)
	if err == nil {
		err = s.emitter.EmitEvent(ctx, event)
	}
	if err != nil {
		s.logger.Warn("failed to emit reflection event, entry kept without reflection",
			"error", err,
			"entry_id", entry.ID)
	}

	return entry, nil
}

// GetEntry implements JournalService.GetEntry.
func (s *journalServiceImpl) GetEntry(
	ctx context.Context,
	requesterID, entryID uuid.UUID,
) (*domain.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, entryID, "get_entry")
	if err != nil {
		return nil, err
	}

	if entry.UserID != requesterID && !entry.Shared {
		return nil, ErrNotOwner
	}
	return entry, nil
}

// ListEntries implements JournalService.ListEntries.
func (s *journalServiceImpl) ListEntries(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.JournalEntry, error) {
	entries, err := s.journals.ListByUser(ctx, userID, clampPage(limit), offset)
	if err != nil {
		return nil, &ServiceError{Operation: "list_entries", Message: "failed to list entries", Err: err}
	}
	return entries, nil
}

// ListSharedFeed implements JournalService.ListSharedFeed.
func (s *journalServiceImpl) ListSharedFeed(
	ctx context.Context,
	limit, offset int,
) ([]*domain.JournalEntry, error) {
	entries, err := s.journals.ListShared(ctx, clampPage(limit), offset)
	if err != nil {
		return nil, &ServiceError{Operation: "list_shared", Message: "failed to list shared entries", Err: err}
	}
	return entries, nil
}

// UpdateEntry implements JournalService.UpdateEntry.
func (s *journalServiceImpl) UpdateEntry(
	ctx context.Context,
	requesterID, entryID uuid.UUID,
	title, body string,
	mood domain.Mood,
) (*domain.JournalEntry, error) {
	var updated *domain.JournalEntry
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txJournals := s.journals.WithTx(tx)

		entry, err := txJournals.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.UserID != requesterID {
			return ErrNotOwner
		}
		if err := entry.Edit(title, body, mood); err != nil {
			return err
		}
		if err := txJournals.Update(ctx, entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, s.wrapEntryError("update_entry", err)
	}
	return updated, nil
}

// SetShared implements JournalService.SetShared.
func (s *journalServiceImpl) SetShared(
	ctx context.Context,
	requesterID, entryID uuid.UUID,
	shared bool,
) (*domain.JournalEntry, error) {
	var updated *domain.JournalEntry
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txJournals := s.journals.WithTx(tx)

		entry, err := txJournals.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.UserID != requesterID {
			return ErrNotOwner
		}
		entry.Shared = shared
		if err := txJournals.Update(ctx, entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, s.wrapEntryError("set_shared", err)
	}
	return updated, nil
}

// LikeEntry implements JournalService.LikeEntry. Any family member may
// like any shared entry, including their own.
func (s *journalServiceImpl) LikeEntry(
	ctx context.Context,
	requesterID, entryID uuid.UUID,
) (int, error) {
	entry, err := s.loadEntry(ctx, entryID, "like_entry")
	if err != nil {
		return 0, err
	}
	if !entry.Shared {
		return 0, ErrNotShared
	}

	count, err := s.journals.IncrementLikes(ctx, entryID)
	if err != nil {
		return 0, s.wrapEntryError("like_entry", err)
	}
	return count, nil
}

// DeleteEntry implements JournalService.DeleteEntry.
func (s *journalServiceImpl) DeleteEntry(
	ctx context.Context,
	requesterID, entryID uuid.UUID,
) error {
	entry, err := s.loadEntry(ctx, entryID, "delete_entry")
	if err != nil {
		return err
	}
	if entry.UserID != requesterID {
		return ErrNotOwner
	}

	if err := s.journals.Delete(ctx, entryID); err != nil {
		return s.wrapEntryError("delete_entry", err)
	}

	s.logger.Info("journal entry deleted",
		"entry_id", entryID,
		"user_id", requesterID)
	return nil
}

// loadEntry fetches an entry, mapping store not-found onto the service
// sentinel.
func (s *journalServiceImpl) loadEntry(
	ctx context.Context,
	entryID uuid.UUID,
	operation string,
) (*domain.JournalEntry, error) {
	entry, err := s.journals.GetByID(ctx, entryID)
	if err != nil {
		return nil, s.wrapEntryError(operation, err)
	}
	return entry, nil
}

// wrapEntryError maps store sentinels onto service sentinels and wraps
// everything else.
func (s *journalServiceImpl) wrapEntryError(operation string, err error) error {
	switch {
	case errors.Is(err, store.ErrJournalEntryNotFound):
		return ErrEntryNotFound
	case errors.Is(err, ErrNotOwner), errors.Is(err, ErrNotShared):
		return err
	default:
		return &ServiceError{Operation: operation, Message: "journal operation failed", Err: err}
	}
}

// clampPage bounds a listing limit into 1..100, defaulting to 20.
func clampPage(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}
