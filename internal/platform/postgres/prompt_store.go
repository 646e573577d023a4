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

// PromptStore implements store.PromptStore backed by PostgreSQL.
type PromptStore struct {
	db store.DBTX
}

// NewPromptStore creates a new PostgreSQL PromptStore.
func NewPromptStore(db store.DBTX) *PromptStore {
	return &PromptStore{db: db}
}

var _ store.PromptStore = (*PromptStore)(nil)

// WithTx implements store.PromptStore.WithTx.
func (s *PromptStore) WithTx(tx *sql.Tx) store.PromptStore {
	return &PromptStore{db: tx}
}

// Create implements store.PromptStore.Create.
func (s *PromptStore) Create(ctx context.Context, prompt *domain.Prompt) error {
	if err := prompt.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	const query = `
		INSERT INTO prompts (id, category, age_band, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		prompt.ID, prompt.Category, prompt.AgeBand, prompt.Text,
		prompt.CreatedAt, prompt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create prompt: %w", err)
	}
	return nil
}

// GetByID implements store.PromptStore.GetByID.
func (s *PromptStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Prompt, error) {
	const query = `
		SELECT id, category, age_band, text, created_at, updated_at
		FROM prompts WHERE id = $1`

	var prompt domain.Prompt
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&prompt.ID, &prompt.Category, &prompt.AgeBand, &prompt.Text,
		&prompt.CreatedAt, &prompt.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPromptNotFound
		}
		return nil, fmt.Errorf("failed to scan prompt: %w", err)
	}
	return &prompt, nil
}

// List implements store.PromptStore.List. Filters compose with AND; zero
// values are skipped.
func (s *PromptStore) List(
	ctx context.Context,
	filter store.PromptFilter,
	limit, offset int,
) ([]*domain.Prompt, error) {
	query := `
		SELECT id, category, age_band, text, created_at, updated_at
		FROM prompts WHERE 1=1`
	args := []any{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.AgeBand != "" {
		args = append(args, filter.AgeBand)
		query += fmt.Sprintf(" AND age_band = $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	prompts := make([]*domain.Prompt, 0)
	for rows.Next() {
		var prompt domain.Prompt
		if err := rows.Scan(
			&prompt.ID, &prompt.Category, &prompt.AgeBand, &prompt.Text,
			&prompt.CreatedAt, &prompt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		prompts = append(prompts, &prompt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prompts: %w", err)
	}
	return prompts, nil
}

// Update implements store.PromptStore.Update.
func (s *PromptStore) Update(ctx context.Context, prompt *domain.Prompt) error {
	if err := prompt.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	const query = `
		UPDATE prompts
		SET category = $2, age_band = $3, text = $4, updated_at = $5
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		prompt.ID, prompt.Category, prompt.AgeBand, prompt.Text, prompt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update prompt: %w", err)
	}
	return requireRowAffected(result, store.ErrPromptNotFound)
}

// Delete implements store.PromptStore.Delete.
func (s *PromptStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM prompts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prompt: %w", err)
	}
	return requireRowAffected(result, store.ErrPromptNotFound)
}
