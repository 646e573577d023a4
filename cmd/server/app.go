package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sproutedu/sprout-api/internal/config"
	"github.com/sproutedu/sprout-api/internal/events"
	"github.com/sproutedu/sprout-api/internal/generation"
	"github.com/sproutedu/sprout-api/internal/governor"
	"github.com/sproutedu/sprout-api/internal/platform/aiclient"
	"github.com/sproutedu/sprout-api/internal/platform/postgres"
	"github.com/sproutedu/sprout-api/internal/service"
	"github.com/sproutedu/sprout-api/internal/service/auth"
	"github.com/sproutedu/sprout-api/internal/store"
	"github.com/sproutedu/sprout-api/internal/task"
)

// TaskFactoryEventHandler turns reflection events into background tasks
// submitted to the runner.
type TaskFactoryEventHandler struct {
	taskFactory *task.ReflectionTaskFactory
	taskRunner  *task.Runner
	logger      *slog.Logger
}

// HandleEvent processes events by creating and submitting tasks.
func (h *TaskFactoryEventHandler) HandleEvent(
	ctx context.Context,
	event *events.TaskRequestEvent,
) error {
	if event.Type != task.TaskTypeReflection {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload struct {
		EntryID uuid.UUID `json:"entry_id"`
	}
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	t, err := h.taskFactory.CreateTask(payload.EntryID)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"entry_id", payload.EntryID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.taskRunner.Submit(ctx, t); err != nil {
		h.logger.Warn("failed to submit task, entry keeps no reflection",
			"error", err,
			"task_id", t.ID(),
			"entry_id", payload.EntryID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Debug("task submitted",
		"task_id", t.ID(),
		"entry_id", payload.EntryID,
		"event_id", event.ID)
	return nil
}

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore    store.UserStore
	promptStore  store.PromptStore
	termStore    store.TermStore
	journalStore store.JournalStore

	// Services
	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher
	generator      generation.Generator
	journalService service.JournalService
	contentService service.ContentService

	// Governed-call infrastructure, process-wide singletons
	rateLimiter   *governor.RateLimiter
	responseCache *governor.Cache

	// Event system and background processing
	eventEmitter events.EventEmitter
	taskRunner   *task.Runner
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger and
// database connection that must be established before initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	// Stores
	app.userStore = postgres.NewUserStore(db)
	app.promptStore = postgres.NewPromptStore(db)
	app.termStore = postgres.NewTermStore(db)
	app.journalStore = postgres.NewJournalStore(db)

	// Governed-call infrastructure: one limiter and one cache for the
	// whole process, shared across every generation feature.
	clock := governor.SystemClock()
	app.rateLimiter = governor.NewRateLimiter(cfg.AI.RateWindow(), cfg.AI.RateLimitCeiling, clock)
	app.responseCache = governor.NewCache(cfg.AI.SweepInterval(), clock, logger)
	app.responseCache.Start(ctx)

	aiClient, err := aiclient.NewClient(cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI client: %w", err)
	}

	app.generator, err = aiclient.NewGovernedGenerator(
		logger,
		cfg.AI,
		aiClient,
		app.rateLimiter,
		app.responseCache,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}
	logger.Info("governed generator initialized",
		"model", cfg.AI.Model,
		"rate_ceiling", cfg.AI.RateLimitCeiling,
		"rate_window", cfg.AI.RateWindow())

	// Event emitter and background task runner
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.taskRunner = task.NewRunner(task.DefaultRunnerConfig(), logger)
	app.taskRunner.Start()

	reflectionFactory := task.NewReflectionTaskFactory(
		app.journalStore,
		app.userStore,
		app.generator,
		logger,
	)

	taskFactoryHandler := &TaskFactoryEventHandler{
		taskFactory: reflectionFactory,
		taskRunner:  app.taskRunner,
		logger:      logger.With("component", "task_factory_event_handler"),
	}

	if emitter, ok := app.eventEmitter.(*events.InMemoryEventEmitter); ok {
		emitter.RegisterHandler(taskFactoryHandler)
	} else {
		return nil, fmt.Errorf("unexpected event emitter type, cannot register task handler")
	}

	// Feature services
	app.journalService, err = service.NewJournalService(db, app.journalStore, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal service: %w", err)
	}

	app.contentService, err = service.NewContentService(app.userStore, app.termStore, app.generator, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create content service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.responseCache != nil {
		app.responseCache.Close()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
