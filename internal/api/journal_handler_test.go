package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sproutedu/sprout-api/internal/api/shared"
	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/service"
)

// MockJournalService is a mock implementation of service.JournalService.
type MockJournalService struct {
	CreateEntryFn    func(ctx context.Context, userID uuid.UUID, title, body string, mood domain.Mood) (*domain.JournalEntry, error)
	GetEntryFn       func(ctx context.Context, requesterID, entryID uuid.UUID) (*domain.JournalEntry, error)
	ListEntriesFn    func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.JournalEntry, error)
	ListSharedFeedFn func(ctx context.Context, limit, offset int) ([]*domain.JournalEntry, error)
	UpdateEntryFn    func(ctx context.Context, requesterID, entryID uuid.UUID, title, body string, mood domain.Mood) (*domain.JournalEntry, error)
	SetSharedFn      func(ctx context.Context, requesterID, entryID uuid.UUID, shared bool) (*domain.JournalEntry, error)
	LikeEntryFn      func(ctx context.Context, requesterID, entryID uuid.UUID) (int, error)
	DeleteEntryFn    func(ctx context.Context, requesterID, entryID uuid.UUID) error
}

func (m *MockJournalService) CreateEntry(ctx context.Context, userID uuid.UUID, title, body string, mood domain.Mood) (*domain.JournalEntry, error) {
	if m.CreateEntryFn != nil {
		return m.CreateEntryFn(ctx, userID, title, body, mood)
	}
	return nil, nil
}

func (m *MockJournalService) GetEntry(ctx context.Context, requesterID, entryID uuid.UUID) (*domain.JournalEntry, error) {
	if m.GetEntryFn != nil {
		return m.GetEntryFn(ctx, requesterID, entryID)
	}
	return nil, nil
}

func (m *MockJournalService) ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.JournalEntry, error) {
	if m.ListEntriesFn != nil {
		return m.ListEntriesFn(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *MockJournalService) ListSharedFeed(ctx context.Context, limit, offset int) ([]*domain.JournalEntry, error) {
	if m.ListSharedFeedFn != nil {
		return m.ListSharedFeedFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *MockJournalService) UpdateEntry(ctx context.Context, requesterID, entryID uuid.UUID, title, body string, mood domain.Mood) (*domain.JournalEntry, error) {
	if m.UpdateEntryFn != nil {
		return m.UpdateEntryFn(ctx, requesterID, entryID, title, body, mood)
	}
	return nil, nil
}

func (m *MockJournalService) SetShared(ctx context.Context, requesterID, entryID uuid.UUID, shared bool) (*domain.JournalEntry, error) {
	if m.SetSharedFn != nil {
		return m.SetSharedFn(ctx, requesterID, entryID, shared)
	}
	return nil, nil
}

func (m *MockJournalService) LikeEntry(ctx context.Context, requesterID, entryID uuid.UUID) (int, error) {
	if m.LikeEntryFn != nil {
		return m.LikeEntryFn(ctx, requesterID, entryID)
	}
	return 0, nil
}

func (m *MockJournalService) DeleteEntry(ctx context.Context, requesterID, entryID uuid.UUID) error {
	if m.DeleteEntryFn != nil {
		return m.DeleteEntryFn(ctx, requesterID, entryID)
	}
	return nil
}

// Interface guard for the mock.
var _ service.JournalService = (*MockJournalService)(nil)

func authedRequest(method, target string, body interface{}, userID uuid.UUID) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

func withPathID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func sampleEntry(userID uuid.UUID) *domain.JournalEntry {
	return &domain.JournalEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "Rockets",
		Body:      "We watched a launch together.",
		Mood:      domain.MoodExcited,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestJournalHandlerCreateEntry(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		body           interface{}
		withAuth       bool
		serviceErr     error
		expectedStatus int
	}{
		{
			name:           "valid entry",
			body:           CreateEntryRequest{Title: "Rockets", Body: "We watched a launch.", Mood: "excited"},
			withAuth:       true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing title",
			body:           CreateEntryRequest{Body: "No title here.", Mood: "curious"},
			withAuth:       true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown mood",
			body:           CreateEntryRequest{Title: "Rockets", Body: "Body.", Mood: "bored"},
			withAuth:       true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no auth context",
			body:           CreateEntryRequest{Title: "Rockets", Body: "Body.", Mood: "excited"},
			withAuth:       false,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockJournalService{
				CreateEntryFn: func(ctx context.Context, uid uuid.UUID, title, body string, mood domain.Mood) (*domain.JournalEntry, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					entry := sampleEntry(uid)
					entry.Title = title
					entry.Body = body
					entry.Mood = mood
					return entry, nil
				},
			}
			handler := NewJournalHandler(mockSvc, nil)

			var req *http.Request
			if tt.withAuth {
				req = authedRequest(http.MethodPost, "/api/journal", tt.body, userID)
			} else {
				var buf bytes.Buffer
				_ = json.NewEncoder(&buf).Encode(tt.body)
				req = httptest.NewRequest(http.MethodPost, "/api/journal", &buf)
			}

			rr := httptest.NewRecorder()
			handler.CreateEntry(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusCreated {
				var resp EntryResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, userID, resp.UserID)
				assert.Equal(t, "excited", resp.Mood)
			}
		})
	}
}

func TestJournalHandlerGetEntry(t *testing.T) {
	userID := uuid.New()
	entry := sampleEntry(userID)

	tests := []struct {
		name           string
		pathID         string
		serviceErr     error
		expectedStatus int
	}{
		{name: "found", pathID: entry.ID.String(), expectedStatus: http.StatusOK},
		{name: "not found", pathID: uuid.New().String(), serviceErr: service.ErrEntryNotFound, expectedStatus: http.StatusNotFound},
		{name: "not owner", pathID: entry.ID.String(), serviceErr: service.ErrNotOwner, expectedStatus: http.StatusForbidden},
		{name: "malformed id", pathID: "not-a-uuid", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := &MockJournalService{
				GetEntryFn: func(ctx context.Context, requesterID, entryID uuid.UUID) (*domain.JournalEntry, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return entry, nil
				},
			}
			handler := NewJournalHandler(mockSvc, nil)

			req := withPathID(authedRequest(http.MethodGet, "/api/journal/"+tt.pathID, nil, userID), tt.pathID)
			rr := httptest.NewRecorder()
			handler.GetEntry(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestJournalHandlerShareEntry(t *testing.T) {
	userID := uuid.New()
	entry := sampleEntry(userID)

	mockSvc := &MockJournalService{
		SetSharedFn: func(ctx context.Context, requesterID, entryID uuid.UUID, sharedFlag bool) (*domain.JournalEntry, error) {
			out := *entry
			out.Shared = sharedFlag
			return &out, nil
		},
	}
	handler := NewJournalHandler(mockSvc, nil)

	req := withPathID(authedRequest(http.MethodPost, "/api/journal/"+entry.ID.String()+"/share", ShareEntryRequest{Shared: true}, userID), entry.ID.String())
	rr := httptest.NewRecorder()
	handler.ShareEntry(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp EntryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Shared)
}

func TestJournalHandlerLikeEntry(t *testing.T) {
	userID := uuid.New()
	entryID := uuid.New()

	t.Run("shared entry", func(t *testing.T) {
		mockSvc := &MockJournalService{
			LikeEntryFn: func(ctx context.Context, requesterID, id uuid.UUID) (int, error) {
				return 4, nil
			},
		}
		handler := NewJournalHandler(mockSvc, nil)

		req := withPathID(authedRequest(http.MethodPost, "/api/journal/"+entryID.String()+"/like", nil, userID), entryID.String())
		rr := httptest.NewRecorder()
		handler.LikeEntry(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp LikeResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 4, resp.LikeCount)
		assert.Equal(t, entryID, resp.EntryID)
	})

	t.Run("private entry", func(t *testing.T) {
		mockSvc := &MockJournalService{
			LikeEntryFn: func(ctx context.Context, requesterID, id uuid.UUID) (int, error) {
				return 0, service.ErrNotShared
			},
		}
		handler := NewJournalHandler(mockSvc, nil)

		req := withPathID(authedRequest(http.MethodPost, "/api/journal/"+entryID.String()+"/like", nil, userID), entryID.String())
		rr := httptest.NewRecorder()
		handler.LikeEntry(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestJournalHandlerDeleteEntry(t *testing.T) {
	userID := uuid.New()
	entryID := uuid.New()

	mockSvc := &MockJournalService{}
	handler := NewJournalHandler(mockSvc, nil)

	req := withPathID(authedRequest(http.MethodDelete, "/api/journal/"+entryID.String(), nil, userID), entryID.String())
	rr := httptest.NewRecorder()
	handler.DeleteEntry(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestJournalHandlerListEntries(t *testing.T) {
	userID := uuid.New()

	mockSvc := &MockJournalService{
		ListEntriesFn: func(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*domain.JournalEntry, error) {
			assert.Equal(t, 10, limit)
			assert.Equal(t, 20, offset)
			return []*domain.JournalEntry{sampleEntry(uid), sampleEntry(uid)}, nil
		},
	}
	handler := NewJournalHandler(mockSvc, nil)

	req := authedRequest(http.MethodGet, "/api/journal?limit=10&offset=20", nil, userID)
	rr := httptest.NewRecorder()
	handler.ListEntries(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp []EntryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}
