package aiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sproutedu/sprout-api/internal/config"
	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/generation"
	"github.com/sproutedu/sprout-api/internal/governor"
)

// completionsResponse wraps content in the chat-completions envelope.
func completionsResponse(t *testing.T, content string) string {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	require.NoError(t, err)
	return string(body)
}

// validStartersContent is a well-formed starters payload.
func validStartersContent(t *testing.T) string {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"starters": []map[string]any{
			{"question": "What decisions should a computer never make alone?", "why_it_matters": "builds judgment"},
			{"question": "Where did you see a recommendation today?", "why_it_matters": "spotting AI"},
			{"question": "How would you teach a robot fairness?", "why_it_matters": "ethics"},
		},
	})
	require.NoError(t, err)
	return string(payload)
}

// newTestGenerator wires a generator against the given HTTP handler with
// zero retry delay and a generous rate ceiling.
func newTestGenerator(t *testing.T, handler http.Handler, ceiling int) (*GovernedGenerator, *httptest.Server, *governor.RateLimiter) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.AIConfig{
		BaseURL:            server.URL,
		APIKey:             "test-key",
		Model:              "gpt-4o-mini",
		FallbackModel:      "gpt-4o-mini-backup",
		RateLimitCeiling:   ceiling,
		RateWindowSeconds:  60,
		CacheSweepMinutes:  10,
		MaxAttempts:        3,
		BaseDelaySeconds:   0, // no sleeping between test retries
		RequestTimeoutSecs: 5,
	}

	client, err := NewClient(cfg)
	require.NoError(t, err)

	limiter := governor.NewRateLimiter(cfg.RateWindow(), cfg.RateLimitCeiling, nil)
	cache := governor.NewCache(cfg.SweepInterval(), nil, nil)
	t.Cleanup(cache.Close)

	gen, err := NewGovernedGenerator(testLogger(), cfg, client, limiter, cache)
	require.NoError(t, err)
	return gen, server, limiter
}

func TestGenerateStartersSuccess(t *testing.T) {
	var requests atomic.Int32
	gen, _, _ := newTestGenerator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		fmt.Fprint(w, completionsResponse(t, validStartersContent(t)))
	}), 10)

	set, err := gen.GenerateStarters(context.Background(), "caller", "fairness", domain.AgeBandElem, nil)
	require.NoError(t, err)

	assert.Equal(t, generation.SourceGenerated, set.Source)
	assert.Equal(t, "fairness", set.Topic)
	assert.Len(t, set.Starters, generation.StarterCount)
	assert.Equal(t, int32(1), requests.Load())
}

func TestGenerateStartersSecondCallServedFromCache(t *testing.T) {
	var requests atomic.Int32
	gen, _, _ := newTestGenerator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, completionsResponse(t, validStartersContent(t)))
	}), 10)

	first, err := gen.GenerateStarters(context.Background(), "caller", "fairness", domain.AgeBandElem, nil)
	require.NoError(t, err)

	second, err := gen.GenerateStarters(context.Background(), "other-caller", "fairness", domain.AgeBandElem, nil)
	require.NoError(t, err)

	assert.Same(t, first, second, "identical request must be a cache hit")
	assert.Equal(t, int32(1), requests.Load())
}

func TestGenerateStartersUnusablePayloadFallsBack(t *testing.T) {
	gen, _, _ := newTestGenerator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionsResponse(t, "this is not JSON at all"))
	}), 10)

	set, err := gen.GenerateStarters(context.Background(), "caller", "robots", domain.AgeBandEarly, nil)
	require.NoError(t, err, "unusable payloads degrade to fallback, never error")

	assert.Equal(t, generation.SourceFallback, set.Source)
	assert.Len(t, set.Starters, generation.StarterCount)
	for _, s := range set.Starters {
		assert.NotEmpty(t, s.Question)
	}
}

func TestGenerateStartersFallbackIsCached(t *testing.T) {
	var requests atomic.Int32
	gen, _, _ := newTestGenerator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}), 10)

	_, err := gen.GenerateStarters(context.Background(), "caller", "robots", domain.AgeBandEarly, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), requests.Load(), "transient failures retry to the bound")

	set, err := gen.GenerateStarters(context.Background(), "caller", "robots", domain.AgeBandEarly, nil)
	require.NoError(t, err)
	assert.Equal(t, generation.SourceFallback, set.Source)
	assert.Equal(t, int32(3), requests.Load(), "fallback result must be cached too")
}

func TestGenerateStartersFailTwiceThenSucceed(t *testing.T) {
	var requests atomic.Int32
	gen, _, limiter := newTestGenerator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, completionsResponse(t, validStartersContent(t)))
	}), 10)

	set, err := gen.GenerateStarters(context.Background(), "caller", "bias", domain.AgeBandTeen, nil)
	require.NoError(t, err)

	assert.Equal(t, generation.SourceGenerated, set.Source)
	assert.Equal(t, int32(3), requests.Load())

	// Exactly one governed request was recorded against the caller.
	for i := 0; i < 9; i++ {
		assert.True(t, limiter.Allow("caller"))
		limiter.Record("caller")
	}
	assert.False(t, limiter.Allow("caller"))
}

func TestGenerateStartersAuthFailureNotRetried(t *testing.T) {
	var requests atomic.Int32
	gen, _, limiter := newTestGenerator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}), 10)

	_, err := gen.GenerateStarters(context.Background(), "caller", "bias", domain.AgeBandTeen, nil)
	require.Error(t, err)

	assert.ErrorIs(t, err, generation.ErrAuthFailure)
	assert.Equal(t, int32(1), requests.Load(), "auth failures must not be retried")
	assert.True(t, limiter.Allow("caller"), "a failed dispatch consumes no budget")
}

func TestGenerateStartersRateLimited(t *testing.T) {
	var requests atomic.Int32
	gen, _, limiter := newTestGenerator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fmt.Fprint(w, completionsResponse(t, validStartersContent(t)))
	}), 1)

	_, err := gen.GenerateStarters(context.Background(), "caller", "first topic", domain.AgeBandElem, nil)
	require.NoError(t, err)
	assert.False(t, limiter.Allow("caller"))

	// A different topic misses the cache and hits the gate.
	_, err = gen.GenerateStarters(context.Background(), "caller", "second topic", domain.AgeBandElem, nil)
	require.Error(t, err)

	assert.ErrorIs(t, err, generation.ErrRateLimited)
	assert.Greater(t, generation.RateLimitWait(err), time.Duration(0))
	assert.Equal(t, int32(1), requests.Load(), "a gated request must not reach the network")
}

func TestExplainTermSuccess(t *testing.T) {
	content, err := json.Marshal(map[string]string{
		"text":    "An algorithm is a recipe a computer follows step by step.",
		"analogy": "Like baking cookies from a card.",
	})
	require.NoError(t, err)

	gen, _, _ := newTestGenerator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionsResponse(t, string(content)))
	}), 10)

	term := &domain.Term{Slug: "algorithm", Name: "Algorithm", Definition: "A sequence of steps."}
	exp, err := gen.ExplainTerm(context.Background(), "caller", term, domain.AgeBandEarly)
	require.NoError(t, err)

	assert.Equal(t, "algorithm", exp.Slug)
	assert.Equal(t, domain.AgeBandEarly, exp.AgeBand)
	assert.Equal(t, generation.SourceGenerated, exp.Source)
	assert.Contains(t, exp.Text, "recipe")
}

func TestExplainTermFallbackUsesDefinition(t *testing.T) {
	gen, _, _ := newTestGenerator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}), 10)

	term := &domain.Term{Slug: "algorithm", Name: "Algorithm", Definition: "A sequence of steps."}
	exp, err := gen.ExplainTerm(context.Background(), "caller", term, domain.AgeBandAdult)
	require.NoError(t, err)

	assert.Equal(t, generation.SourceFallback, exp.Source)
	assert.Contains(t, exp.Text, term.Definition, "fallback explanation leans on the stored definition")
}

func TestSuggestTopicsClampsFields(t *testing.T) {
	content, err := json.Marshal(map[string]any{
		"suggestions": []map[string]any{
			{"title": "How search ranking works", "summary": "s", "age_band": "not-a-band", "difficulty": 99},
			{"title": "Voice assistants", "summary": "s", "age_band": "13-17", "difficulty": -3},
			{"title": "Training data", "summary": "s", "age_band": "9-12", "difficulty": 3},
		},
	})
	require.NoError(t, err)

	gen, _, _ := newTestGenerator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionsResponse(t, string(content)))
	}), 10)

	set, err := gen.SuggestTopics(context.Background(), "caller", domain.AgeBandTeen, []string{"music"})
	require.NoError(t, err)

	require.Len(t, set.Suggestions, generation.SuggestionCount)
	assert.Equal(t, domain.AgeBandElem, set.Suggestions[0].AgeBand, "unknown band coerced to the default")
	assert.Equal(t, 5, set.Suggestions[0].Difficulty)
	assert.Equal(t, 1, set.Suggestions[1].Difficulty)
	assert.Equal(t, 3, set.Suggestions[2].Difficulty)
}

func TestGenerateReflection(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantSource generation.Source
	}{
		{
			name:       "valid payload",
			content:    `{"question": "What surprised you most?"}`,
			wantSource: generation.SourceGenerated,
		},
		{
			name:       "code-fenced payload",
			content:    "```json\n{\"question\": \"What surprised you most?\"}\n```",
			wantSource: generation.SourceGenerated,
		},
		{
			name:       "empty question",
			content:    `{"question": "   "}`,
			wantSource: generation.SourceFallback,
		},
		{
			name:       "not JSON",
			content:    "no reflection here",
			wantSource: generation.SourceFallback,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen, _, _ := newTestGenerator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, completionsResponse(t, tc.content))
			}), 10)

			entry := &domain.JournalEntry{
				ID:    uuid.New(),
				Title: "Robots at school",
				Body:  "We talked about robots today.",
				Mood:  domain.MoodCurious,
			}

			question, source, err := gen.GenerateReflection(context.Background(), "caller", entry, domain.AgeBandElem)
			require.NoError(t, err)
			assert.Equal(t, tc.wantSource, source)
			assert.NotEmpty(t, question)
		})
	}
}
