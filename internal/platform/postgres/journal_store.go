package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/store"
)

// JournalStore implements store.JournalStore backed by PostgreSQL.
type JournalStore struct {
	db store.DBTX
}

// NewJournalStore creates a new PostgreSQL JournalStore.
func NewJournalStore(db store.DBTX) *JournalStore {
	return &JournalStore{db: db}
}

var _ store.JournalStore = (*JournalStore)(nil)

// WithTx implements store.JournalStore.WithTx.
func (s *JournalStore) WithTx(tx *sql.Tx) store.JournalStore {
	return &JournalStore{db: tx}
}

const journalColumns = `id, user_id, title, body, mood, shared, like_count, reflection, created_at, updated_at`

// Create implements store.JournalStore.Create.
func (s *JournalStore) Create(ctx context.Context, entry *domain.JournalEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	const query = `
		INSERT INTO journal_entries (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.Title, entry.Body, entry.Mood,
		entry.Shared, entry.LikeCount, entry.Reflection,
		entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}
	return nil
}

// GetByID implements store.JournalStore.GetByID.
func (s *JournalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.JournalEntry, error) {
	const query = `
		SELECT ` + journalColumns + `
		FROM journal_entries WHERE id = $1`

	var entry domain.JournalEntry
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID, &entry.UserID, &entry.Title, &entry.Body, &entry.Mood,
		&entry.Shared, &entry.LikeCount, &entry.Reflection,
		&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrJournalEntryNotFound
		}
		return nil, fmt.Errorf("failed to scan journal entry: %w", err)
	}
	return &entry, nil
}

// ListByUser implements store.JournalStore.ListByUser.
func (s *JournalStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.JournalEntry, error) {
	const query = `
		SELECT ` + journalColumns + `
		FROM journal_entries WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	return s.queryEntries(ctx, query, userID, limit, offset)
}

// ListShared implements store.JournalStore.ListShared.
func (s *JournalStore) ListShared(
	ctx context.Context,
	limit, offset int,
) ([]*domain.JournalEntry, error) {
	const query = `
		SELECT ` + journalColumns + `
		FROM journal_entries WHERE shared
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	return s.queryEntries(ctx, query, limit, offset)
}

// Update implements store.JournalStore.Update.
func (s *JournalStore) Update(ctx context.Context, entry *domain.JournalEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	const query = `
		UPDATE journal_entries
		SET title = $2, body = $3, mood = $4, shared = $5, like_count = $6, reflection = $7, updated_at = $8
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.Title, entry.Body, entry.Mood, entry.Shared,
		entry.LikeCount, entry.Reflection, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}
	return requireRowAffected(result, store.ErrJournalEntryNotFound)
}

// IncrementLikes implements store.JournalStore.IncrementLikes.
func (s *JournalStore) IncrementLikes(ctx context.Context, id uuid.UUID) (int, error) {
	const query = `
		UPDATE journal_entries
		SET like_count = like_count + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING like_count`

	var count int
	err := s.db.QueryRowContext(ctx, query, id).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, store.ErrJournalEntryNotFound
		}
		return 0, fmt.Errorf("failed to increment likes: %w", err)
	}
	return count, nil
}

// Delete implements store.JournalStore.Delete.
func (s *JournalStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	return requireRowAffected(result, store.ErrJournalEntryNotFound)
}

// queryEntries runs a journal listing query and scans the rows.
func (s *JournalStore) queryEntries(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.JournalEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*domain.JournalEntry, 0)
	for rows.Next() {
		var entry domain.JournalEntry
		if err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Title, &entry.Body, &entry.Mood,
			&entry.Shared, &entry.LikeCount, &entry.Reflection,
			&entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal entries: %w", err)
	}
	return entries, nil
}
