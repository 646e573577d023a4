package generation

import (
	"context"

	"github.com/sproutedu/sprout-api/internal/domain"
)

// Source records whether a result came from the language model or from
// hand-authored fallback content. The feature layer surfaces this so
// degraded content is distinguishable; it is never an error condition.
type Source string

// Possible result sources.
const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Starter is a single conversation starter produced for a topic.
type Starter struct {
	Question     string `json:"question"`
	WhyItMatters string `json:"why_it_matters,omitempty"`
}

// StarterSet is the validated result of a conversation-starter request:
// always exactly StarterCount starters.
type StarterSet struct {
	Topic    string    `json:"topic"`
	Source   Source    `json:"source"`
	Starters []Starter `json:"starters"`
}

// StarterCount is the number of starters every StarterSet carries.
const StarterCount = 3

// Explanation is an age-tuned explanation of a glossary term.
type Explanation struct {
	Slug    string         `json:"slug"`
	AgeBand domain.AgeBand `json:"age_band"`
	Source  Source         `json:"source"`
	Text    string         `json:"text"`
	Analogy string         `json:"analogy,omitempty"`
}

// Suggestion is a proposed family learning topic.
type Suggestion struct {
	Title      string         `json:"title"`
	Summary    string         `json:"summary"`
	AgeBand    domain.AgeBand `json:"age_band"`
	Difficulty int            `json:"difficulty"` // clamped to 1..5
}

// SuggestionSet is the validated result of a topic-suggestion request:
// always exactly SuggestionCount suggestions.
type SuggestionSet struct {
	Source      Source       `json:"source"`
	Suggestions []Suggestion `json:"suggestions"`
}

// SuggestionCount is the number of suggestions every SuggestionSet carries.
const SuggestionCount = 3

// Generator produces personalized educational text. Implementations must
// uphold the governed-call contract: check the caller's rate budget before
// dispatching, retry transient failures with backoff, substitute fallback
// content when the upstream result is unusable, and cache results
// (fallbacks included) under a deterministic key.
//
// callerKey identifies the principal being rate-limited, typically the
// user ID.
type Generator interface {
	// GenerateStarters returns conversation starters for the given topic,
	// tuned to the requester's age band. priorTopics lets the prompt
	// steer away from topics the family already covered.
	GenerateStarters(
		ctx context.Context,
		callerKey, topic string,
		band domain.AgeBand,
		priorTopics []string,
	) (*StarterSet, error)

	// ExplainTerm returns an age-tuned explanation of a glossary term.
	ExplainTerm(
		ctx context.Context,
		callerKey string,
		term *domain.Term,
		band domain.AgeBand,
	) (*Explanation, error)

	// SuggestTopics returns learning-topic suggestions for the requester.
	SuggestTopics(
		ctx context.Context,
		callerKey string,
		band domain.AgeBand,
		interests []string,
	) (*SuggestionSet, error)

	// GenerateReflection returns a single follow-up question for a
	// journal entry.
	GenerateReflection(
		ctx context.Context,
		callerKey string,
		entry *domain.JournalEntry,
		band domain.AgeBand,
	) (string, Source, error)
}
