package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Term.
var (
	ErrEmptyTermID         = errors.New("term ID cannot be empty")
	ErrEmptyTermSlug       = errors.New("term slug cannot be empty")
	ErrInvalidTermSlug     = errors.New("term slug must be lowercase letters, digits and hyphens")
	ErrEmptyTermName       = errors.New("term name cannot be empty")
	ErrEmptyTermDefinition = errors.New("term definition cannot be empty")
	ErrTermTooLong         = errors.New("term fields exceed maximum length")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Term is a glossary entry explaining an AI concept in plain language.
// The stored definition is the canonical one; age-tuned explanations are
// generated on demand and cached by the governor.
type Term struct {
	ID         uuid.UUID `json:"id"`
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	Definition string    `json:"definition"`
	Example    string    `json:"example,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewTerm creates a new Term with a generated ID and timestamps.
// Returns an error if validation fails.
func NewTerm(slug, name, definition, example string) (*Term, error) {
	term := &Term{
		ID:         uuid.New(),
		Slug:       slug,
		Name:       name,
		Definition: definition,
		Example:    example,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := term.Validate(); err != nil {
		return nil, err
	}

	return term, nil
}

// Validate checks if the Term has valid data.
func (t *Term) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTermID
	}

	if t.Slug == "" {
		return ErrEmptyTermSlug
	}

	if !slugPattern.MatchString(t.Slug) {
		return ErrInvalidTermSlug
	}

	if t.Name == "" {
		return ErrEmptyTermName
	}

	if t.Definition == "" {
		return ErrEmptyTermDefinition
	}

	if len(t.Slug) > 80 || len(t.Name) > 120 || len(t.Definition) > 2000 || len(t.Example) > 2000 {
		return ErrTermTooLong
	}

	return nil
}
