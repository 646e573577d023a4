package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sproutedu/sprout-api/internal/api/shared"
	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/store"
)

// PromptHandler handles discussion-prompt API requests.
type PromptHandler struct {
	promptStore store.PromptStore
	logger      *slog.Logger
}

// NewPromptHandler creates a new PromptHandler with the given dependencies.
func NewPromptHandler(promptStore store.PromptStore, logger *slog.Logger) *PromptHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PromptHandler{
		promptStore: promptStore,
		logger:      logger.With("component", "prompt_handler"),
	}
}

// ListPrompts handles GET /prompts. Optional query parameters `category`
// and `age_band` narrow the listing.
func (h *PromptHandler) ListPrompts(w http.ResponseWriter, r *http.Request) {
	filter := store.PromptFilter{
		Category: domain.PromptCategory(r.URL.Query().Get("category")),
		AgeBand:  domain.AgeBand(r.URL.Query().Get("age_band")),
	}

	if filter.Category != "" && !filter.Category.IsValid() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unknown prompt category")
		return
	}
	if filter.AgeBand != "" && !filter.AgeBand.IsValid() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unknown age band")
		return
	}

	limit, offset := paginationParams(r)

	prompts, err := h.promptStore.List(r.Context(), filter, limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list prompts")
		return
	}

	out := make([]PromptResponse, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, NewPromptResponse(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// GetPrompt handles GET /prompts/{id}.
func (h *PromptHandler) GetPrompt(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	prompt, err := h.promptStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewPromptResponse(prompt))
}

// paginationParams reads `limit` and `offset` query parameters.
// The limit defaults to 50 and is capped at 100.
func paginationParams(r *http.Request) (int, int) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
