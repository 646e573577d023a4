package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sproutedu/sprout-api/internal/domain"
)

// PromptFilter narrows a prompt listing. Zero values mean "no filter".
type PromptFilter struct {
	Category domain.PromptCategory
	AgeBand  domain.AgeBand
}

// PromptStore defines the interface for conversation prompt persistence.
type PromptStore interface {
	// Create saves a new prompt to the store.
	Create(ctx context.Context, prompt *domain.Prompt) error

	// GetByID retrieves a prompt by its unique ID.
	// Returns ErrPromptNotFound if the prompt does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Prompt, error)

	// List retrieves prompts matching the filter, newest first.
	// Returns an empty slice when nothing matches.
	List(ctx context.Context, filter PromptFilter, limit, offset int) ([]*domain.Prompt, error)

	// Update saves changes to an existing prompt.
	// Returns ErrPromptNotFound if the prompt does not exist.
	Update(ctx context.Context, prompt *domain.Prompt) error

	// Delete removes a prompt by its ID.
	// Returns ErrPromptNotFound if the prompt does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new PromptStore instance bound to the transaction.
	WithTx(tx *sql.Tx) PromptStore
}
