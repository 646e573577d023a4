package store

import (
	"context"
	"database/sql"

	"github.com/sproutedu/sprout-api/internal/domain"
)

// TermStore defines the interface for glossary term persistence.
type TermStore interface {
	// Create saves a new term to the store.
	// Returns ErrSlugExists if the slug is already taken.
	Create(ctx context.Context, term *domain.Term) error

	// GetBySlug retrieves a term by its slug.
	// Returns ErrTermNotFound if the term does not exist.
	GetBySlug(ctx context.Context, slug string) (*domain.Term, error)

	// List retrieves all terms ordered by name.
	List(ctx context.Context, limit, offset int) ([]*domain.Term, error)

	// Update saves changes to an existing term.
	// Returns ErrTermNotFound if the term does not exist.
	Update(ctx context.Context, term *domain.Term) error

	// Delete removes a term by its slug.
	// Returns ErrTermNotFound if the term does not exist.
	Delete(ctx context.Context, slug string) error

	// WithTx returns a new TermStore instance bound to the transaction.
	WithTx(tx *sql.Tx) TermStore
}
