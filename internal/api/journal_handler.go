package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/sproutedu/sprout-api/internal/api/shared"
	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/service"
)

// JournalHandler handles journal entry API requests.
type JournalHandler struct {
	journalService service.JournalService
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewJournalHandler creates a new JournalHandler with the given dependencies.
func NewJournalHandler(journalService service.JournalService, logger *slog.Logger) *JournalHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &JournalHandler{
		journalService: journalService,
		validator:      validator.New(),
		logger:         logger.With("component", "journal_handler"),
	}
}

// CreateEntry handles POST /journal.
func (h *JournalHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateEntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	entry, err := h.journalService.CreateEntry(r.Context(), userID, req.Title, req.Body, domain.Mood(req.Mood))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewEntryResponse(entry))
}

// GetEntry handles GET /journal/{id}.
func (h *JournalHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	userID, entryID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	entry, err := h.journalService.GetEntry(r.Context(), userID, entryID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewEntryResponse(entry))
}

// ListEntries handles GET /journal, listing the requester's own entries.
func (h *JournalHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	limit, offset := paginationParams(r)

	entries, err := h.journalService.ListEntries(r.Context(), userID, limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list entries")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewEntryListResponse(entries))
}

// ListSharedFeed handles GET /journal/shared, listing all shared entries.
func (h *JournalHandler) ListSharedFeed(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserIDFromContext(r); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	limit, offset := paginationParams(r)

	entries, err := h.journalService.ListSharedFeed(r.Context(), limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list shared entries")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewEntryListResponse(entries))
}

// UpdateEntry handles PUT /journal/{id}.
func (h *JournalHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	userID, entryID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req UpdateEntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	entry, err := h.journalService.UpdateEntry(r.Context(), userID, entryID, req.Title, req.Body, domain.Mood(req.Mood))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewEntryResponse(entry))
}

// ShareEntry handles POST /journal/{id}/share.
func (h *JournalHandler) ShareEntry(w http.ResponseWriter, r *http.Request) {
	userID, entryID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req ShareEntryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	entry, err := h.journalService.SetShared(r.Context(), userID, entryID, req.Shared)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewEntryResponse(entry))
}

// LikeEntry handles POST /journal/{id}/like.
func (h *JournalHandler) LikeEntry(w http.ResponseWriter, r *http.Request) {
	userID, entryID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	count, err := h.journalService.LikeEntry(r.Context(), userID, entryID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LikeResponse{
		EntryID:   entryID,
		LikeCount: count,
	})
}

// DeleteEntry handles DELETE /journal/{id}.
func (h *JournalHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, entryID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.journalService.DeleteEntry(r.Context(), userID, entryID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
