package aiclient

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/generation"
)

// Response validation. Each parser enforces the minimum structural
// requirements for its content type and clamps every field into its
// allowed band. A payload that cannot be salvaged returns an error and the
// caller substitutes fallback content; parse errors never reach the user.

// parseStarters validates a starters payload. At least one non-empty
// question is required; the set is truncated or padded to exactly
// generation.StarterCount using fallback questions.
func parseStarters(raw, topic string) (*generation.StarterSet, error) {
	var payload startersPayload
	if err := json.Unmarshal([]byte(trimCodeFence(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	starters := make([]generation.Starter, 0, generation.StarterCount)
	for _, s := range payload.Starters {
		q := strings.TrimSpace(s.Question)
		if q == "" {
			continue
		}
		starters = append(starters, generation.Starter{
			Question:     q,
			WhyItMatters: strings.TrimSpace(s.WhyItMatters),
		})
		if len(starters) == generation.StarterCount {
			break
		}
	}

	if len(starters) == 0 {
		return nil, fmt.Errorf("%w: no usable starters", generation.ErrInvalidResponse)
	}

	// Pad short sets from the fallback pool so the shape contract holds.
	for i := len(starters); i < generation.StarterCount; i++ {
		starters = append(starters, fallbackStarters(topic).Starters[i])
	}

	return &generation.StarterSet{
		Topic:    topic,
		Source:   generation.SourceGenerated,
		Starters: starters,
	}, nil
}

// parseExplanation validates an explanation payload. Non-empty text is
// required; the analogy is optional.
func parseExplanation(
	raw string,
	term *domain.Term,
	band domain.AgeBand,
) (*generation.Explanation, error) {
	var payload explanationPayload
	if err := json.Unmarshal([]byte(trimCodeFence(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	text := strings.TrimSpace(payload.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty explanation text", generation.ErrInvalidResponse)
	}

	return &generation.Explanation{
		Slug:    term.Slug,
		AgeBand: band,
		Source:  generation.SourceGenerated,
		Text:    text,
		Analogy: strings.TrimSpace(payload.Analogy),
	}, nil
}

// parseSuggestions validates a suggestions payload. Age bands are coerced
// to a known member, difficulty is clamped into 1..5, and the set is
// truncated or padded to exactly generation.SuggestionCount.
func parseSuggestions(raw string) (*generation.SuggestionSet, error) {
	var payload suggestionsPayload
	if err := json.Unmarshal([]byte(trimCodeFence(raw)), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	suggestions := make([]generation.Suggestion, 0, generation.SuggestionCount)
	for _, s := range payload.Suggestions {
		title := strings.TrimSpace(s.Title)
		if title == "" {
			continue
		}
		suggestions = append(suggestions, generation.Suggestion{
			Title:      title,
			Summary:    strings.TrimSpace(s.Summary),
			AgeBand:    domain.ClampAgeBand(s.AgeBand),
			Difficulty: clampDifficulty(s.Difficulty),
		})
		if len(suggestions) == generation.SuggestionCount {
			break
		}
	}

	if len(suggestions) == 0 {
		return nil, fmt.Errorf("%w: no usable suggestions", generation.ErrInvalidResponse)
	}

	fallback := fallbackSuggestions(suggestions[0].AgeBand)
	for i := len(suggestions); i < generation.SuggestionCount; i++ {
		suggestions = append(suggestions, fallback.Suggestions[i])
	}

	return &generation.SuggestionSet{
		Source:      generation.SourceGenerated,
		Suggestions: suggestions,
	}, nil
}

// clampDifficulty forces difficulty into the allowed 1..5 band.
func clampDifficulty(d int) int {
	if d < 1 {
		return 1
	}
	if d > 5 {
		return 5
	}
	return d
}
