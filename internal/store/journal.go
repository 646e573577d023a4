package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sproutedu/sprout-api/internal/domain"
)

// JournalStore defines the interface for journal entry persistence.
type JournalStore interface {
	// Create saves a new journal entry to the store.
	Create(ctx context.Context, entry *domain.JournalEntry) error

	// GetByID retrieves an entry by its unique ID.
	// Returns ErrJournalEntryNotFound if the entry does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.JournalEntry, error)

	// ListByUser retrieves a user's entries, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.JournalEntry, error)

	// ListShared retrieves shared entries across all users, newest first.
	// This backs the family feed.
	ListShared(ctx context.Context, limit, offset int) ([]*domain.JournalEntry, error)

	// Update saves changes to an existing entry.
	// Returns ErrJournalEntryNotFound if the entry does not exist.
	Update(ctx context.Context, entry *domain.JournalEntry) error

	// IncrementLikes atomically adds one like to a shared entry and
	// returns the new count.
	// Returns ErrJournalEntryNotFound if the entry does not exist.
	IncrementLikes(ctx context.Context, id uuid.UUID) (int, error)

	// Delete removes an entry by its ID.
	// Returns ErrJournalEntryNotFound if the entry does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new JournalStore instance bound to the transaction.
	WithTx(tx *sql.Tx) JournalStore
}
