package aiclient

import (
	"fmt"
	"strings"

	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/generation"
)

// Prompt construction. Each prompt pins the exact JSON shape the response
// must take; parseAndClamp* in generator.go enforces it on the way back.

func startersPrompt(topic string, band domain.AgeBand, priorTopics []string) string {
	prior := "none"
	if len(priorTopics) > 0 {
		prior = strings.Join(priorTopics, ", ")
	}
	return fmt.Sprintf(
		`You help families talk about AI together. Write exactly %d conversation starters about %q suited to the %s age group. Avoid topics already covered: %s. Respond with JSON only, shaped as {"starters":[{"question":"...","why_it_matters":"..."}]}.`,
		generation.StarterCount, topic, band, prior,
	)
}

func explanationPrompt(term *domain.Term, band domain.AgeBand) string {
	return fmt.Sprintf(
		`Explain the AI term %q to someone in the %s age group. The canonical definition is: %s. Keep it warm and concrete. Respond with JSON only, shaped as {"text":"...","analogy":"..."}.`,
		term.Name, band, term.Definition,
	)
}

func suggestionsPrompt(band domain.AgeBand, interests []string) string {
	interest := "general curiosity"
	if len(interests) > 0 {
		interest = strings.Join(interests, ", ")
	}
	return fmt.Sprintf(
		`Suggest exactly %d AI learning activities a family can do together, tuned to the %s age group and these interests: %s. Difficulty is an integer from 1 (easy) to 5 (hard). Respond with JSON only, shaped as {"suggestions":[{"title":"...","summary":"...","age_band":"%s","difficulty":1}]}.`,
		generation.SuggestionCount, band, interest, band,
	)
}

func reflectionPrompt(entry *domain.JournalEntry, band domain.AgeBand) string {
	return fmt.Sprintf(
		`A learner in the %s age group wrote a journal entry titled %q while feeling %s: %s. Write one gentle follow-up question that deepens their thinking. Respond with JSON only, shaped as {"question":"..."}.`,
		band, entry.Title, entry.Mood, entry.Body,
	)
}
