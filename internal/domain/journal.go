package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Mood is the writer's self-reported mood attached to a journal entry.
type Mood string

// Possible mood values.
const (
	MoodCurious  Mood = "curious"
	MoodExcited  Mood = "excited"
	MoodConfused Mood = "confused"
	MoodWorried  Mood = "worried"
	MoodProud    Mood = "proud"
)

// Common validation errors for JournalEntry.
var (
	ErrEmptyJournalID      = errors.New("journal entry ID cannot be empty")
	ErrEmptyJournalUserID  = errors.New("journal entry user ID cannot be empty")
	ErrEmptyJournalTitle   = errors.New("journal entry title cannot be empty")
	ErrJournalTitleTooLong = errors.New("journal entry title must be at most 200 characters")
	ErrEmptyJournalBody    = errors.New("journal entry body cannot be empty")
	ErrJournalBodyTooLong  = errors.New("journal entry body must be at most 10000 characters")
	ErrInvalidMood         = errors.New("invalid mood")
)

// JournalEntry is a learning-journal record written by a family member.
// Entries can be shared to the family feed, where other members can like
// them. Reflection holds an AI-generated follow-up question, filled in
// asynchronously after the entry is created.
type JournalEntry struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Mood       Mood      `json:"mood"`
	Shared     bool      `json:"shared"`
	LikeCount  int       `json:"like_count"`
	Reflection string    `json:"reflection,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewJournalEntry creates a new JournalEntry with a generated ID,
// unshared, with zero likes. Returns an error if validation fails.
func NewJournalEntry(userID uuid.UUID, title, body string, mood Mood) (*JournalEntry, error) {
	entry := &JournalEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		Mood:      mood,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the JournalEntry has valid data.
func (e *JournalEntry) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyJournalID
	}

	if e.UserID == uuid.Nil {
		return ErrEmptyJournalUserID
	}

	if e.Title == "" {
		return ErrEmptyJournalTitle
	}

	if len(e.Title) > 200 {
		return ErrJournalTitleTooLong
	}

	if e.Body == "" {
		return ErrEmptyJournalBody
	}

	if len(e.Body) > 10000 {
		return ErrJournalBodyTooLong
	}

	if !e.Mood.IsValid() {
		return ErrInvalidMood
	}

	if e.LikeCount < 0 {
		return errors.New("like count cannot be negative")
	}

	return nil
}

// Edit replaces the entry's title, body and mood and bumps UpdatedAt.
// Returns an error if the new values fail validation.
func (e *JournalEntry) Edit(title, body string, mood Mood) error {
	prev := *e
	e.Title = title
	e.Body = body
	e.Mood = mood
	e.UpdatedAt = time.Now().UTC()

	if err := e.Validate(); err != nil {
		*e = prev
		return err
	}
	return nil
}

// IsValid reports whether the mood is a known member.
func (m Mood) IsValid() bool {
	switch m {
	case MoodCurious, MoodExcited, MoodConfused, MoodWorried, MoodProud:
		return true
	default:
		return false
	}
}
