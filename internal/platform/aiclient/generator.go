package aiclient

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sproutedu/sprout-api/internal/config"
	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/generation"
	"github.com/sproutedu/sprout-api/internal/governor"
)

// Content-type-specific cache TTLs and sampling temperatures. Lower
// temperature for factual explanation, higher for open-ended generation.
const (
	startersTTL    = time.Hour
	suggestionsTTL = 2 * time.Hour
	explanationTTL = 24 * time.Hour
	reflectionTTL  = time.Hour

	startersTemperature    = 0.9
	reflectionTemperature  = 0.8
	suggestionsTemperature = 0.7
	explanationTemperature = 0.3

	defaultMaxTokens = 600
)

// GovernedGenerator implements generation.Generator on top of a Client,
// a RateLimiter and a Cache. Per call it follows a fixed protocol:
//
//  1. Gate: if the caller's rate budget is exhausted, fail immediately
//     with a RateLimitError carrying the wait duration; no network call.
//  2. Attempt loop: bounded retries with jittered backoff. Auth failures
//     short-circuit; everything else is transient.
//  3. On success, record the request against the caller's budget, then
//     parse the payload, clamping every field into its allowed band.
//  4. On transient exhaustion or an unusable payload, substitute static
//     fallback content instead of surfacing the error.
//  5. Cache the outcome, fallback or not, under a deterministic key.
type GovernedGenerator struct {
	logger  *slog.Logger
	cfg     config.AIConfig
	client  *Client
	limiter *governor.RateLimiter
	cache   *governor.Cache
}

// Ensure GovernedGenerator implements generation.Generator.
var _ generation.Generator = (*GovernedGenerator)(nil)

// NewGovernedGenerator creates a GovernedGenerator with the provided
// dependencies. The limiter and cache are process-wide singletons owned by
// the application; the generator is their only mutator.
func NewGovernedGenerator(
	logger *slog.Logger,
	cfg config.AIConfig,
	client *Client,
	limiter *governor.RateLimiter,
	cache *governor.Cache,
) (*GovernedGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if client == nil {
		return nil, fmt.Errorf("%w: client cannot be nil", generation.ErrInvalidConfig)
	}
	if limiter == nil {
		return nil, fmt.Errorf("%w: rate limiter cannot be nil", generation.ErrInvalidConfig)
	}
	if cache == nil {
		return nil, fmt.Errorf("%w: cache cannot be nil", generation.ErrInvalidConfig)
	}

	return &GovernedGenerator{
		logger:  logger.With("component", "governed_generator"),
		cfg:     cfg,
		client:  client,
		limiter: limiter,
		cache:   cache,
	}, nil
}

// GenerateStarters implements generation.Generator.
func (g *GovernedGenerator) GenerateStarters(
	ctx context.Context,
	callerKey, topic string,
	band domain.AgeBand,
	priorTopics []string,
) (*generation.StarterSet, error) {
	key := cacheKey("starters", topic, string(band), strings.Join(priorTopics, ","))
	if cached, ok := g.cache.Get(key); ok {
		return cached.(*generation.StarterSet), nil
	}

	raw, err := g.call(ctx, callerKey, startersPrompt(topic, band, priorTopics),
		startersTemperature)
	if err != nil {
		if isCallerError(err) {
			return nil, err
		}
		return g.storeStarters(ctx, key, fallbackStarters(topic)), nil
	}

	result, perr := parseStarters(raw, topic)
	if perr != nil {
		g.logger.WarnContext(ctx, "unusable starters payload, serving fallback",
			"error", perr, "topic", topic)
		result = fallbackStarters(topic)
	}
	return g.storeStarters(ctx, key, result), nil
}

// ExplainTerm implements generation.Generator.
func (g *GovernedGenerator) ExplainTerm(
	ctx context.Context,
	callerKey string,
	term *domain.Term,
	band domain.AgeBand,
) (*generation.Explanation, error) {
	key := cacheKey("explanation", term.Slug, string(band))
	if cached, ok := g.cache.Get(key); ok {
		return cached.(*generation.Explanation), nil
	}

	raw, err := g.call(ctx, callerKey, explanationPrompt(term, band),
		explanationTemperature)
	if err != nil {
		if isCallerError(err) {
			return nil, err
		}
		return g.storeExplanation(ctx, key, fallbackExplanation(term, band)), nil
	}

	result, perr := parseExplanation(raw, term, band)
	if perr != nil {
		g.logger.WarnContext(ctx, "unusable explanation payload, serving fallback",
			"error", perr, "slug", term.Slug)
		result = fallbackExplanation(term, band)
	}
	return g.storeExplanation(ctx, key, result), nil
}

// SuggestTopics implements generation.Generator.
func (g *GovernedGenerator) SuggestTopics(
	ctx context.Context,
	callerKey string,
	band domain.AgeBand,
	interests []string,
) (*generation.SuggestionSet, error) {
	key := cacheKey("suggestions", string(band), strings.Join(interests, ","))
	if cached, ok := g.cache.Get(key); ok {
		return cached.(*generation.SuggestionSet), nil
	}

	raw, err := g.call(ctx, callerKey, suggestionsPrompt(band, interests),
		suggestionsTemperature)
	if err != nil {
		if isCallerError(err) {
			return nil, err
		}
		return g.storeSuggestions(ctx, key, fallbackSuggestions(band)), nil
	}

	result, perr := parseSuggestions(raw)
	if perr != nil {
		g.logger.WarnContext(ctx, "unusable suggestions payload, serving fallback",
			"error", perr, "age_band", band)
		result = fallbackSuggestions(band)
	}
	return g.storeSuggestions(ctx, key, result), nil
}

// GenerateReflection implements generation.Generator.
func (g *GovernedGenerator) GenerateReflection(
	ctx context.Context,
	callerKey string,
	entry *domain.JournalEntry,
	band domain.AgeBand,
) (string, generation.Source, error) {
	key := cacheKey("reflection", entry.ID.String())
	if cached, ok := g.cache.Get(key); ok {
		r := cached.(reflectionResult)
		return r.question, r.source, nil
	}

	raw, err := g.call(ctx, callerKey, reflectionPrompt(entry, band),
		reflectionTemperature)
	if err != nil {
		if isCallerError(err) {
			return "", "", err
		}
		return g.storeReflection(key, fallbackReflection(entry.Mood), generation.SourceFallback)
	}

	var payload reflectionPayload
	if perr := json.Unmarshal([]byte(trimCodeFence(raw)), &payload); perr != nil ||
		strings.TrimSpace(payload.Question) == "" {
		g.logger.WarnContext(ctx, "unusable reflection payload, serving fallback",
			"entry_id", entry.ID)
		return g.storeReflection(key, fallbackReflection(entry.Mood), generation.SourceFallback)
	}
	return g.storeReflection(key, strings.TrimSpace(payload.Question), generation.SourceGenerated)
}

// reflectionResult is the cached form of a reflection answer.
type reflectionResult struct {
	question string
	source   generation.Source
}

// call runs the gate/attempt-loop/record protocol and returns the raw
// generated text. The returned error is a RateLimitError, ErrAuthFailure,
// or ErrTransientFailure after the retry bound is exhausted.
func (g *GovernedGenerator) call(
	ctx context.Context,
	callerKey, prompt string,
	temperature float64,
) (string, error) {
	if !g.limiter.Allow(callerKey) {
		wait := g.limiter.TimeUntilReset(callerKey)
		g.logger.WarnContext(ctx, "generation request rate limited",
			"caller", callerKey, "wait", wait)
		return "", &generation.RateLimitError{Wait: wait}
	}

	var content string
	attempt := 0
	err := governor.Do(ctx, g.cfg.MaxAttempts, g.cfg.BaseDelay(),
		func(err error) bool {
			// Auth failures are configuration problems; retrying cannot fix them.
			return !errors.Is(err, generation.ErrAuthFailure)
		},
		func(ctx context.Context) error {
			model := g.cfg.Model
			if attempt > 0 && g.cfg.FallbackModel != "" {
				model = g.cfg.FallbackModel
			}
			attempt++

			text, callErr := g.client.Complete(ctx, model, prompt, defaultMaxTokens, temperature)
			if callErr != nil {
				g.logger.WarnContext(ctx, "generation attempt failed",
					"attempt", attempt, "model", model, "error", callErr)
				return callErr
			}
			content = text
			return nil
		})
	if err != nil {
		if errors.Is(err, generation.ErrAuthFailure) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	// Only a real, successful dispatch consumes rate budget.
	g.limiter.Record(callerKey)
	return content, nil
}

func (g *GovernedGenerator) storeStarters(
	ctx context.Context,
	key string,
	set *generation.StarterSet,
) *generation.StarterSet {
	g.cache.Set(key, set, startersTTL)
	g.logger.DebugContext(ctx, "cached starter set", "source", set.Source)
	return set
}

func (g *GovernedGenerator) storeExplanation(
	ctx context.Context,
	key string,
	exp *generation.Explanation,
) *generation.Explanation {
	g.cache.Set(key, exp, explanationTTL)
	g.logger.DebugContext(ctx, "cached explanation", "slug", exp.Slug, "source", exp.Source)
	return exp
}

func (g *GovernedGenerator) storeSuggestions(
	ctx context.Context,
	key string,
	set *generation.SuggestionSet,
) *generation.SuggestionSet {
	g.cache.Set(key, set, suggestionsTTL)
	g.logger.DebugContext(ctx, "cached suggestion set", "source", set.Source)
	return set
}

func (g *GovernedGenerator) storeReflection(
	key, question string,
	source generation.Source,
) (string, generation.Source, error) {
	g.cache.Set(key, reflectionResult{question: question, source: source}, reflectionTTL)
	return question, source, nil
}

// isCallerError reports whether err must be surfaced to the caller instead
// of being absorbed behind fallback content.
func isCallerError(err error) bool {
	return errors.Is(err, generation.ErrRateLimited) ||
		errors.Is(err, generation.ErrAuthFailure)
}

// cacheKey builds a deterministic key from the semantic inputs of a
// request. Free text is hashed so key length stays bounded.
func cacheKey(kind string, parts ...string) string {
	h := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return kind + ":" + hex.EncodeToString(h[:16])
}

// trimCodeFence strips a surrounding markdown code fence, which models
// sometimes wrap around JSON despite instructions.
func trimCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
