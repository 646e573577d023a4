package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sproutedu/sprout-api/internal/api"
	apiMiddleware "github.com/sproutedu/sprout-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordHasher)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	promptHandler := api.NewPromptHandler(app.promptStore, app.logger)
	glossaryHandler := api.NewGlossaryHandler(app.termStore, app.contentService, app.logger)
	journalHandler := api.NewJournalHandler(app.journalService, app.logger)
	contentHandler := api.NewContentHandler(app.contentService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Browsing endpoints (public)
		r.Get("/prompts", promptHandler.ListPrompts)
		r.Get("/prompts/{id}", promptHandler.GetPrompt)
		r.Get("/glossary", glossaryHandler.ListTerms)
		r.Get("/glossary/{slug}", glossaryHandler.GetTerm)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Age-tuned term explanations
			r.Get("/glossary/{slug}/explain", glossaryHandler.ExplainTerm)

			// Journal endpoints
			r.Post("/journal", journalHandler.CreateEntry)
			r.Get("/journal", journalHandler.ListEntries)
			r.Get("/journal/shared", journalHandler.ListSharedFeed)
			r.Get("/journal/{id}", journalHandler.GetEntry)
			r.Put("/journal/{id}", journalHandler.UpdateEntry)
			r.Delete("/journal/{id}", journalHandler.DeleteEntry)
			r.Post("/journal/{id}/share", journalHandler.ShareEntry)
			r.Post("/journal/{id}/like", journalHandler.LikeEntry)

			// Generated content endpoints
			r.Post("/content/starters", contentHandler.GenerateStarters)
			r.Post("/content/suggestions", contentHandler.SuggestTopics)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
