package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/generation"
	"github.com/sproutedu/sprout-api/internal/store"
)

// ContentService produces AI-assisted educational content, tailored to
// the requesting user's age band.
type ContentService interface {
	// ConversationStarters generates discussion starters for a topic.
	ConversationStarters(ctx context.Context, userID uuid.UUID, topic string, priorTopics []string) (*generation.StarterSet, error)

	// TopicSuggestions suggests new topics based on stated interests.
	TopicSuggestions(ctx context.Context, userID uuid.UUID, interests []string) (*generation.SuggestionSet, error)

	// ExplainTerm expands a glossary term into an age-appropriate
	// explanation.
	ExplainTerm(ctx context.Context, userID uuid.UUID, slug string) (*generation.Explanation, error)
}

// contentServiceImpl implements the ContentService interface.
type contentServiceImpl struct {
	users     store.UserStore
	terms     store.TermStore
	generator generation.Generator
	logger    *slog.Logger
}

// NewContentService creates a new ContentService.
// It returns an error if any of the required dependencies are nil.
func NewContentService(
	users store.UserStore,
	terms store.TermStore,
	generator generation.Generator,
	logger *slog.Logger,
) (ContentService, error) {
	if users == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "user store cannot be nil"}
	}
	if terms == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "term store cannot be nil"}
	}
	if generator == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &contentServiceImpl{
		users:     users,
		terms:     terms,
		generator: generator,
		logger:    logger.With("component", "content_service"),
	}, nil
}

// ConversationStarters implements ContentService.ConversationStarters.
func (s *contentServiceImpl) ConversationStarters(
	ctx context.Context,
	userID uuid.UUID,
	topic string,
	priorTopics []string,
) (*generation.StarterSet, error) {
	band, err := s.bandFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	set, err := s.generator.GenerateStarters(ctx, userID.String(), topic, band, priorTopics)
	if err != nil {
		return nil, s.wrapGenerationError("conversation_starters", err)
	}

	if set.Source == generation.SourceFallback {
		s.logger.Info("served fallback starters",
			"user_id", userID,
			"topic", topic)
	}
	return set, nil
}

// TopicSuggestions implements ContentService.TopicSuggestions.
func (s *contentServiceImpl) TopicSuggestions(
	ctx context.Context,
	userID uuid.UUID,
	interests []string,
) (*generation.SuggestionSet, error) {
	band, err := s.bandFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	set, err := s.generator.SuggestTopics(ctx, userID.String(), band, interests)
	if err != nil {
		return nil, s.wrapGenerationError("topic_suggestions", err)
	}
	return set, nil
}

// ExplainTerm implements ContentService.ExplainTerm.
func (s *contentServiceImpl) ExplainTerm(
	ctx context.Context,
	userID uuid.UUID,
	slug string,
) (*generation.Explanation, error) {
	band, err := s.bandFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	term, err := s.terms.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrTermNotFound) {
			return nil, ErrTermNotFound
		}
		return nil, &ServiceError{Operation: "explain_term", Message: "failed to load term", Err: err}
	}

	explanation, err := s.generator.ExplainTerm(ctx, userID.String(), term, band)
	if err != nil {
		return nil, s.wrapGenerationError("explain_term", err)
	}
	return explanation, nil
}

// bandFor resolves the requesting user's age band from their profile.
func (s *contentServiceImpl) bandFor(ctx context.Context, userID uuid.UUID) (domain.AgeBand, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", &ServiceError{Operation: "resolve_age_band", Message: "failed to load user", Err: err}
	}
	return user.AgeBand(), nil
}

// wrapGenerationError passes governed-call errors through untouched so
// the API layer can map them; anything else gets wrapped.
func (s *contentServiceImpl) wrapGenerationError(operation string, err error) error {
	if errors.Is(err, generation.ErrRateLimited) || errors.Is(err, generation.ErrAuthFailure) {
		return err
	}
	return &ServiceError{Operation: operation, Message: "generation failed", Err: err}
}
