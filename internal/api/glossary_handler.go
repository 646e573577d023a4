package api

import (
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/sproutedu/sprout-api/internal/api/shared"
	"github.com/sproutedu/sprout-api/internal/service"
	"github.com/sproutedu/sprout-api/internal/store"
)

// slugPattern mirrors the domain slug format for early request rejection.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// GlossaryHandler handles glossary term API requests.
type GlossaryHandler struct {
	termStore      store.TermStore
	contentService service.ContentService
	logger         *slog.Logger
}

// NewGlossaryHandler creates a new GlossaryHandler with the given dependencies.
func NewGlossaryHandler(
	termStore store.TermStore,
	contentService service.ContentService,
	logger *slog.Logger,
) *GlossaryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GlossaryHandler{
		termStore:      termStore,
		contentService: contentService,
		logger:         logger.With("component", "glossary_handler"),
	}
}

// ListTerms handles GET /glossary.
func (h *GlossaryHandler) ListTerms(w http.ResponseWriter, r *http.Request) {
	limit, offset := paginationParams(r)

	terms, err := h.termStore.List(r.Context(), limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list terms")
		return
	}

	out := make([]TermResponse, 0, len(terms))
	for _, t := range terms {
		out = append(out, NewTermResponse(t))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// GetTerm handles GET /glossary/{slug}.
func (h *GlossaryHandler) GetTerm(w http.ResponseWriter, r *http.Request) {
	slug, ok := h.pathSlug(w, r)
	if !ok {
		return
	}

	term, err := h.termStore.GetBySlug(r.Context(), slug)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTermResponse(term))
}

// ExplainTerm handles GET /glossary/{slug}/explain, returning an
// explanation tuned to the authenticated user's age band.
func (h *GlossaryHandler) ExplainTerm(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		h.logger.Warn("user ID not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	slug, ok := h.pathSlug(w, r)
	if !ok {
		return
	}

	explanation, err := h.contentService.ExplainTerm(r.Context(), userID, slug)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewExplanationResponse(explanation))
}

// pathSlug extracts and validates the slug path parameter, writing an
// error response on failure.
func (h *GlossaryHandler) pathSlug(w http.ResponseWriter, r *http.Request) (string, bool) {
	slug := chi.URLParam(r, "slug")
	if slug == "" || !slugPattern.MatchString(slug) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid term slug")
		return "", false
	}
	return slug, true
}
