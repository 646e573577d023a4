package aiclient

import (
	"fmt"

	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/generation"
)

// Hand-authored fallback content. Served whenever the upstream endpoint is
// unreachable or returns an unusable payload, so the user-facing flow
// degrades instead of breaking. Fallback results are cached like generated
// ones to avoid repeatedly retrying a consistently failing upstream.

// fallbackStarters returns a generic but usable starter set for the topic.
func fallbackStarters(topic string) *generation.StarterSet {
	return &generation.StarterSet{
		Topic:  topic,
		Source: generation.SourceFallback,
		Starters: []generation.Starter{
			{
				Question:     fmt.Sprintf("What do you already know about %s, and what surprised you when you first heard about it?", topic),
				WhyItMatters: "Starting from what everyone already believes makes the gaps visible.",
			},
			{
				Question:     fmt.Sprintf("Where did %s show up in our week without us noticing?", topic),
				WhyItMatters: "Connecting ideas to daily life keeps the conversation concrete.",
			},
			{
				Question:     fmt.Sprintf("If you could ask an expert one question about %s, what would it be?", topic),
				WhyItMatters: "Open questions show what each person is actually curious about.",
			},
		},
	}
}

// fallbackExplanation falls back to the term's stored canonical definition.
func fallbackExplanation(term *domain.Term, band domain.AgeBand) *generation.Explanation {
	return &generation.Explanation{
		Slug:    term.Slug,
		AgeBand: band,
		Source:  generation.SourceFallback,
		Text:    term.Definition,
		Analogy: term.Example,
	}
}

// fallbackSuggestions returns a canned suggestion set for the band.
func fallbackSuggestions(band domain.AgeBand) *generation.SuggestionSet {
	return &generation.SuggestionSet{
		Source: generation.SourceFallback,
		Suggestions: []generation.Suggestion{
			{
				Title:      "Spot the algorithm",
				Summary:    "Pick one app the family uses and figure out together what it is recommending and why.",
				AgeBand:    band,
				Difficulty: 2,
			},
			{
				Title:      "Teach the computer",
				Summary:    "Play a guessing game where one person acts as a learning machine that only improves from examples.",
				AgeBand:    band,
				Difficulty: 3,
			},
			{
				Title:      "Real or generated?",
				Summary:    "Look at a few images or paragraphs together and discuss which ones a machine might have made.",
				AgeBand:    band,
				Difficulty: 2,
			},
		},
	}
}

// fallbackReflection returns a canned follow-up question keyed by mood.
func fallbackReflection(mood domain.Mood) string {
	switch mood {
	case domain.MoodConfused:
		return "What is one part that still feels fuzzy, and who could you ask about it?"
	case domain.MoodWorried:
		return "What would make this feel less worrying to you?"
	case domain.MoodExcited, domain.MoodProud:
		return "What would you like to try next, now that this went well?"
	default:
		return "What is one question this left you with?"
	}
}
