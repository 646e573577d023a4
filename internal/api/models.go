package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/generation"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=12,max=72"`
	DisplayName string `json:"display_name" validate:"required,max=60"`
	Role        string `json:"role"         validate:"required,oneof=parent child"`
	BirthYear   int    `json:"birth_year,omitempty"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// PromptResponse is the wire form of a discussion prompt.
type PromptResponse struct {
	ID       uuid.UUID `json:"id"`
	Category string    `json:"category"`
	AgeBand  string    `json:"age_band"`
	Text     string    `json:"text"`
}

// NewPromptResponse converts a domain prompt to its wire form.
func NewPromptResponse(p *domain.Prompt) PromptResponse {
	return PromptResponse{
		ID:       p.ID,
		Category: string(p.Category),
		AgeBand:  string(p.AgeBand),
		Text:     p.Text,
	}
}

// TermResponse is the wire form of a glossary term.
type TermResponse struct {
	ID         uuid.UUID `json:"id"`
	Slug       string    `json:"slug"`
	Name       string    `json:"name"`
	Definition string    `json:"definition"`
	Example    string    `json:"example,omitempty"`
}

// NewTermResponse converts a domain term to its wire form.
func NewTermResponse(t *domain.Term) TermResponse {
	return TermResponse{
		ID:         t.ID,
		Slug:       t.Slug,
		Name:       t.Name,
		Definition: t.Definition,
		Example:    t.Example,
	}
}

// ExplanationResponse is the wire form of an age-tailored explanation.
type ExplanationResponse struct {
	Slug     string `json:"slug"`
	AgeBand  string `json:"age_band"`
	Text     string `json:"text"`
	Analogy  string `json:"analogy,omitempty"`
	Fallback bool   `json:"fallback"`
}

// NewExplanationResponse converts a generated explanation to its wire form.
func NewExplanationResponse(e *generation.Explanation) ExplanationResponse {
	return ExplanationResponse{
		Slug:     e.Slug,
		AgeBand:  string(e.AgeBand),
		Text:     e.Text,
		Analogy:  e.Analogy,
		Fallback: e.Source == generation.SourceFallback,
	}
}

// StartersRequest defines the payload for the conversation-starters endpoint.
type StartersRequest struct {
	Topic       string   `json:"topic"                  validate:"required,max=200"`
	PriorTopics []string `json:"prior_topics,omitempty" validate:"max=20,dive,max=200"`
}

// StarterItem is one generated conversation starter.
type StarterItem struct {
	Question     string `json:"question"`
	WhyItMatters string `json:"why_it_matters,omitempty"`
}

// StartersResponse defines the response for the conversation-starters endpoint.
type StartersResponse struct {
	Topic    string        `json:"topic"`
	Starters []StarterItem `json:"starters"`
	Fallback bool          `json:"fallback"`
}

// NewStartersResponse converts a generated starter set to its wire form.
func NewStartersResponse(set *generation.StarterSet) StartersResponse {
	items := make([]StarterItem, 0, len(set.Starters))
	for _, s := range set.Starters {
		items = append(items, StarterItem{
			Question:     s.Question,
			WhyItMatters: s.WhyItMatters,
		})
	}
	return StartersResponse{
		Topic:    set.Topic,
		Starters: items,
		Fallback: set.Source == generation.SourceFallback,
	}
}

// SuggestionsRequest defines the payload for the topic-suggestions endpoint.
type SuggestionsRequest struct {
	Interests []string `json:"interests,omitempty" validate:"max=10,dive,max=100"`
}

// SuggestionItem is one suggested discussion topic.
type SuggestionItem struct {
	Title      string `json:"title"`
	Summary    string `json:"summary"`
	AgeBand    string `json:"age_band"`
	Difficulty int    `json:"difficulty"`
}

// SuggestionsResponse defines the response for the topic-suggestions endpoint.
type SuggestionsResponse struct {
	Suggestions []SuggestionItem `json:"suggestions"`
	Fallback    bool             `json:"fallback"`
}

// NewSuggestionsResponse converts a generated suggestion set to its wire form.
func NewSuggestionsResponse(set *generation.SuggestionSet) SuggestionsResponse {
	items := make([]SuggestionItem, 0, len(set.Suggestions))
	for _, s := range set.Suggestions {
		items = append(items, SuggestionItem{
			Title:      s.Title,
			Summary:    s.Summary,
			AgeBand:    string(s.AgeBand),
			Difficulty: s.Difficulty,
		})
	}
	return SuggestionsResponse{
		Suggestions: items,
		Fallback:    set.Source == generation.SourceFallback,
	}
}

// CreateEntryRequest defines the payload for creating a journal entry.
type CreateEntryRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body"  validate:"required,max=10000"`
	Mood  string `json:"mood"  validate:"required,oneof=curious excited confused worried proud"`
}

// UpdateEntryRequest defines the payload for editing a journal entry.
type UpdateEntryRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body"  validate:"required,max=10000"`
	Mood  string `json:"mood"  validate:"required,oneof=curious excited confused worried proud"`
}

// ShareEntryRequest defines the payload for sharing or unsharing an entry.
type ShareEntryRequest struct {
	Shared bool `json:"shared"`
}

// EntryResponse is the wire form of a journal entry.
type EntryResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Mood       string    `json:"mood"`
	Shared     bool      `json:"shared"`
	LikeCount  int       `json:"like_count"`
	Reflection string    `json:"reflection,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewEntryResponse converts a domain journal entry to its wire form.
func NewEntryResponse(e *domain.JournalEntry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		Title:      e.Title,
		Body:       e.Body,
		Mood:       string(e.Mood),
		Shared:     e.Shared,
		LikeCount:  e.LikeCount,
		Reflection: e.Reflection,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// NewEntryListResponse converts a slice of entries to wire form.
func NewEntryListResponse(entries []*domain.JournalEntry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewEntryResponse(e))
	}
	return out
}

// LikeResponse defines the response for the entry-like endpoint.
type LikeResponse struct {
	EntryID   uuid.UUID `json:"entry_id"`
	LikeCount int       `json:"like_count"`
}
