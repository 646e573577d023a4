package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/store"
)

// TermStore implements store.TermStore backed by PostgreSQL.
type TermStore struct {
	db store.DBTX
}

// NewTermStore creates a new PostgreSQL TermStore.
func NewTermStore(db store.DBTX) *TermStore {
	return &TermStore{db: db}
}

var _ store.TermStore = (*TermStore)(nil)

// WithTx implements store.TermStore.WithTx.
func (s *TermStore) WithTx(tx *sql.Tx) store.TermStore {
	return &TermStore{db: tx}
}

// Create implements store.TermStore.Create.
func (s *TermStore) Create(ctx context.Context, term *domain.Term) error {
	if err := term.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	const query = `
		INSERT INTO terms (id, slug, name, definition, example, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		term.ID, term.Slug, term.Name, term.Definition, term.Example,
		term.CreatedAt, term.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrSlugExists
		}
		return fmt.Errorf("failed to create term: %w", err)
	}
	return nil
}

// GetBySlug implements store.TermStore.GetBySlug.
func (s *TermStore) GetBySlug(ctx context.Context, slug string) (*domain.Term, error) {
	const query = `
		SELECT id, slug, name, definition, example, created_at, updated_at
		FROM terms WHERE slug = $1`

	var term domain.Term
	err := s.db.QueryRowContext(ctx, query, slug).Scan(
		&term.ID, &term.Slug, &term.Name, &term.Definition, &term.Example,
		&term.CreatedAt, &term.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTermNotFound
		}
		return nil, fmt.Errorf("failed to scan term: %w", err)
	}
	return &term, nil
}

// List implements store.TermStore.List.
func (s *TermStore) List(ctx context.Context, limit, offset int) ([]*domain.Term, error) {
	const query = `
		SELECT id, slug, name, definition, example, created_at, updated_at
		FROM terms ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list terms: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	terms := make([]*domain.Term, 0)
	for rows.Next() {
		var term domain.Term
		if err := rows.Scan(
			&term.ID, &term.Slug, &term.Name, &term.Definition, &term.Example,
			&term.CreatedAt, &term.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan term: %w", err)
		}
		terms = append(terms, &term)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate terms: %w", err)
	}
	return terms, nil
}

// Update implements store.TermStore.Update.
func (s *TermStore) Update(ctx context.Context, term *domain.Term) error {
	if err := term.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	const query = `
		UPDATE terms
		SET name = $2, definition = $3, example = $4, updated_at = $5
		WHERE slug = $1`

	result, err := s.db.ExecContext(ctx, query,
		term.Slug, term.Name, term.Definition, term.Example, term.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update term: %w", err)
	}
	return requireRowAffected(result, store.ErrTermNotFound)
}

// Delete implements store.TermStore.Delete.
func (s *TermStore) Delete(ctx context.Context, slug string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM terms WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("failed to delete term: %w", err)
	}
	return requireRowAffected(result, store.ErrTermNotFound)
}
