package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sproutedu/sprout-api/internal/api/shared"
	"github.com/sproutedu/sprout-api/internal/service"
)

// ContentHandler handles AI-generated content API requests.
type ContentHandler struct {
	contentService service.ContentService
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewContentHandler creates a new ContentHandler with the given dependencies.
func NewContentHandler(contentService service.ContentService, logger *slog.Logger) *ContentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentHandler{
		contentService: contentService,
		validator:      validator.New(),
		logger:         logger.With("component", "content_handler"),
	}
}

// GenerateStarters handles POST /content/starters.
func (h *ContentHandler) GenerateStarters(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req StartersRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	set, err := h.contentService.ConversationStarters(r.Context(), userID, req.Topic, req.PriorTopics)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewStartersResponse(set))
}

// SuggestTopics handles POST /content/suggestions.
func (h *ContentHandler) SuggestTopics(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SuggestionsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	set, err := h.contentService.TopicSuggestions(r.Context(), userID, req.Interests)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewSuggestionsResponse(set))
}
