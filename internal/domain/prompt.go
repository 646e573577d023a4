package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PromptCategory groups conversation prompts by theme.
type PromptCategory string

// Possible prompt categories.
const (
	CategoryHowAIWorks PromptCategory = "how_ai_works"
	CategorySafety     PromptCategory = "safety"
	CategoryCreativity PromptCategory = "creativity"
	CategoryEthics     PromptCategory = "ethics"
	CategoryEveryday   PromptCategory = "everyday_ai"
)

// Common validation errors for Prompt.
var (
	ErrEmptyPromptID         = errors.New("prompt ID cannot be empty")
	ErrEmptyPromptText       = errors.New("prompt text cannot be empty")
	ErrPromptTextTooLong     = errors.New("prompt text must be at most 500 characters")
	ErrInvalidPromptCategory = errors.New("invalid prompt category")
	ErrInvalidPromptAgeBand  = errors.New("invalid prompt age band")
)

// Prompt is a curated conversation starter families talk through together.
// Prompts are plain records: stored and retrieved verbatim, with
// field-level checks only.
type Prompt struct {
	ID        uuid.UUID      `json:"id"`
	Category  PromptCategory `json:"category"`
	AgeBand   AgeBand        `json:"age_band"`
	Text      string         `json:"text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewPrompt creates a new Prompt with a generated ID and timestamps.
// Returns an error if validation fails.
func NewPrompt(category PromptCategory, band AgeBand, text string) (*Prompt, error) {
	prompt := &Prompt{
		ID:        uuid.New(),
		Category:  category,
		AgeBand:   band,
		Text:      text,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := prompt.Validate(); err != nil {
		return nil, err
	}

	return prompt, nil
}

// Validate checks if the Prompt has valid data.
func (p *Prompt) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyPromptID
	}

	if !p.Category.IsValid() {
		return ErrInvalidPromptCategory
	}

	if !p.AgeBand.IsValid() {
		return ErrInvalidPromptAgeBand
	}

	if p.Text == "" {
		return ErrEmptyPromptText
	}

	if len(p.Text) > 500 {
		return ErrPromptTextTooLong
	}

	return nil
}

// IsValid reports whether the category is a known member.
func (c PromptCategory) IsValid() bool {
	switch c {
	case CategoryHowAIWorks, CategorySafety, CategoryCreativity,
		CategoryEthics, CategoryEveryday:
		return true
	default:
		return false
	}
}
