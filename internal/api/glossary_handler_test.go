package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sproutedu/sprout-api/internal/domain"
	"github.com/sproutedu/sprout-api/internal/generation"
	"github.com/sproutedu/sprout-api/internal/service"
	"github.com/sproutedu/sprout-api/internal/store"
)

// MockTermStore is a mock implementation of store.TermStore.
type MockTermStore struct {
	GetBySlugFn func(ctx context.Context, slug string) (*domain.Term, error)
	ListFn      func(ctx context.Context, limit, offset int) ([]*domain.Term, error)
}

func (m *MockTermStore) Create(ctx context.Context, term *domain.Term) error { return nil }

func (m *MockTermStore) GetBySlug(ctx context.Context, slug string) (*domain.Term, error) {
	if m.GetBySlugFn != nil {
		return m.GetBySlugFn(ctx, slug)
	}
	return nil, store.ErrTermNotFound
}

func (m *MockTermStore) List(ctx context.Context, limit, offset int) ([]*domain.Term, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *MockTermStore) Update(ctx context.Context, term *domain.Term) error { return nil }
func (m *MockTermStore) Delete(ctx context.Context, slug string) error       { return nil }
func (m *MockTermStore) WithTx(tx *sql.Tx) store.TermStore                   { return m }

func sampleTerm(slug string) *domain.Term {
	return &domain.Term{
		ID:         uuid.New(),
		Slug:       slug,
		Name:       "Neural Network",
		Definition: "A system of connected nodes loosely modeled on the brain.",
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
}

func withSlug(req *http.Request, slug string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", slug)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGlossaryHandlerGetTerm(t *testing.T) {
	tests := []struct {
		name           string
		slug           string
		storeErr       error
		expectedStatus int
	}{
		{name: "known term", slug: "neural-network", expectedStatus: http.StatusOK},
		{name: "unknown term", slug: "warp-drive", storeErr: store.ErrTermNotFound, expectedStatus: http.StatusNotFound},
		{name: "malformed slug", slug: "Not A Slug!", expectedStatus: http.StatusBadRequest},
		{name: "empty slug", slug: "", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			termStore := &MockTermStore{
				GetBySlugFn: func(ctx context.Context, slug string) (*domain.Term, error) {
					if tt.storeErr != nil {
						return nil, tt.storeErr
					}
					return sampleTerm(slug), nil
				},
			}
			handler := NewGlossaryHandler(termStore, &MockContentService{}, nil)

			req := withSlug(httptest.NewRequest(http.MethodGet, "/api/glossary/x", nil), tt.slug)
			rr := httptest.NewRecorder()
			handler.GetTerm(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp TermResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.slug, resp.Slug)
			}
		})
	}
}

func TestGlossaryHandlerListTerms(t *testing.T) {
	termStore := &MockTermStore{
		ListFn: func(ctx context.Context, limit, offset int) ([]*domain.Term, error) {
			return []*domain.Term{sampleTerm("neural-network"), sampleTerm("token")}, nil
		},
	}
	handler := NewGlossaryHandler(termStore, &MockContentService{}, nil)

	rr := httptest.NewRecorder()
	handler.ListTerms(rr, httptest.NewRequest(http.MethodGet, "/api/glossary", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp []TermResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestGlossaryHandlerExplainTerm(t *testing.T) {
	userID := uuid.New()

	t.Run("explains for the authenticated user", func(t *testing.T) {
		contentSvc := &MockContentService{
			ExplainTermFn: func(ctx context.Context, uid uuid.UUID, slug string) (*generation.Explanation, error) {
				assert.Equal(t, userID, uid)
				return &generation.Explanation{
					Slug:    slug,
					AgeBand: domain.AgeBandElem,
					Source:  generation.SourceGenerated,
					Text:    "It is a system of connected pretend brain cells.",
					Analogy: "Like a bucket brigade passing guesses along.",
				}, nil
			},
		}
		handler := NewGlossaryHandler(&MockTermStore{}, contentSvc, nil)

		req := withSlug(authedRequest(http.MethodGet, "/api/glossary/neural-network/explain", nil, userID), "neural-network")
		rr := httptest.NewRecorder()
		handler.ExplainTerm(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp ExplanationResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "neural-network", resp.Slug)
		assert.Equal(t, "9-12", resp.AgeBand)
		assert.False(t, resp.Fallback)
	})

	t.Run("requires authentication", func(t *testing.T) {
		handler := NewGlossaryHandler(&MockTermStore{}, &MockContentService{}, nil)

		req := withSlug(httptest.NewRequest(http.MethodGet, "/api/glossary/neural-network/explain", nil), "neural-network")
		rr := httptest.NewRecorder()
		handler.ExplainTerm(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("unknown term", func(t *testing.T) {
		contentSvc := &MockContentService{
			ExplainTermFn: func(ctx context.Context, uid uuid.UUID, slug string) (*generation.Explanation, error) {
				return nil, service.ErrTermNotFound
			},
		}
		handler := NewGlossaryHandler(&MockTermStore{}, contentSvc, nil)

		req := withSlug(authedRequest(http.MethodGet, "/api/glossary/warp-drive/explain", nil, userID), "warp-drive")
		rr := httptest.NewRecorder()
		handler.ExplainTerm(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("rate limited", func(t *testing.T) {
		contentSvc := &MockContentService{
			ExplainTermFn: func(ctx context.Context, uid uuid.UUID, slug string) (*generation.Explanation, error) {
				return nil, &generation.RateLimitError{Wait: 30 * time.Second}
			},
		}
		handler := NewGlossaryHandler(&MockTermStore{}, contentSvc, nil)

		req := withSlug(authedRequest(http.MethodGet, "/api/glossary/neural-network/explain", nil, userID), "neural-network")
		rr := httptest.NewRecorder()
		handler.ExplainTerm(rr, req)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "30", rr.Header().Get("Retry-After"))
	})
}
