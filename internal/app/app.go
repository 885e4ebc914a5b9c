package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/config"
	httpcontroller "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/controller/http"
	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/database"
	analysisentity "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/analysis/entity"
	analysisservice "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/analysis/service"
	historydao "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/history/dao"
	historyservice "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/history/service"
	videoservice "github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/domain/video/service"
	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/httpx/upstream/gemini"
	"github.com/SanikaSawant2110/Semantic-Sentinel-Backend/internal/httpx/upstream/youtube"
)

// ErrYouTubeKeyMissing is returned at startup when no YouTube credential is set
var ErrYouTubeKeyMissing = errors.New("youtube API key not configured")

// requestTimeout bounds a single request. Bulk analysis holds the request
// open across the whole chunk pipeline (rate-gate waits plus inter-chunk
// delays), so this is minutes, not seconds; the server's WriteTimeout has
// to stay above it or the connection dies before the handler finishes.
const requestTimeout = 10 * time.Minute

// App is the main application container
type App struct {
	cfg        config.Config
	httpServer *http.Server
	router     *chi.Mux
	logger     *slog.Logger
	db         *sql.DB

	videoSvc   *videoservice.Service
	analyzer   *analysisservice.Analyzer
	historySvc *historyservice.Service
}

// NewApp creates and initializes the application
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Initialize router with middleware
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Timeout(requestTimeout))

	app := &App{
		cfg:    cfg,
		router: r,
		logger: logger,
	}

	// Initialize infrastructure
	if err := app.initInfrastructure(ctx); err != nil {
		return nil, fmt.Errorf("initializing infrastructure: %w", err)
	}

	// Initialize domain layers
	if err := app.initDomains(ctx); err != nil {
		return nil, fmt.Errorf("initializing domains: %w", err)
	}

	// Register routes
	app.registerRoutes()

	// Initialize HTTP server
	app.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      app.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// initInfrastructure initializes infrastructure components
func (a *App) initInfrastructure(ctx context.Context) error {
	db, err := database.NewSqlite(ctx, a.cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening sqlite database: %w", err)
	}
	a.db = db

	return nil
}

// initDomains initializes domain layers. Missing credentials are fatal
// here rather than on first use.
func (a *App) initDomains(_ context.Context) error {
	if a.cfg.YouTube.APIKey == "" {
		return ErrYouTubeKeyMissing
	}
	if a.cfg.Gemini.APIKey == "" {
		return analysisentity.ErrAPIKeyMissing
	}

	ytClient := youtube.New(
		a.cfg.YouTube.APIKey,
		youtube.WithBaseURL(a.cfg.YouTube.BaseURL),
	)
	a.videoSvc = videoservice.New(ytClient, a.cfg.YouTube.MaxComments, a.logger)

	geminiClient := gemini.New(
		a.cfg.Gemini.APIKey,
		gemini.WithBaseURL(a.cfg.Gemini.BaseURL),
		gemini.WithModel(a.cfg.Gemini.Model),
		gemini.WithTimeout(a.cfg.Gemini.Timeout),
	)
	a.analyzer = analysisservice.New(geminiClient, analysisservice.Config{
		ChunkSize:       a.cfg.Analysis.ChunkSize,
		InterChunkDelay: a.cfg.Analysis.InterChunkDelay,
		MaxComments:     a.cfg.Analysis.MaxComments,
		MinCallInterval: a.cfg.Gemini.MinCallInterval,
	}, a.logger)

	historyRepo := historydao.NewAnalysisSqlite(a.db)
	a.historySvc = historyservice.New(historyRepo)

	return nil
}

// registerRoutes registers all HTTP routes
func (a *App) registerRoutes() {
	// Health check
	a.router.Get("/healthz", a.healthHandler)
	a.router.Get("/readyz", a.readyHandler)

	// API v1; browser clients call it cross-origin
	a.router.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))

		videoHandler := httpcontroller.NewVideoHandler(a.videoSvc)
		videoHandler.RegisterRoutes(r)

		analysisHandler := httpcontroller.NewAnalysisHandler(a.analyzer, a.historySvc)
		analysisHandler.RegisterRoutes(r)

		historyHandler := httpcontroller.NewHistoryHandler(a.historySvc)
		historyHandler.RegisterRoutes(r)
	})
}

// healthHandler handles health check requests
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// readyHandler handles readiness check requests
func (a *App) readyHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.db.PingContext(r.Context()); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

// Run starts the application and blocks until shutdown signal
func (a *App) Run(ctx context.Context) error {
	// Channel to receive errors from server
	errCh := make(chan error, 1)

	// Start HTTP server in goroutine
	go func() {
		a.logger.Info("starting HTTP server", "addr", a.cfg.Server.Address())
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.logger.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		a.logger.Info("context cancelled")
	}

	// Graceful shutdown
	return a.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down...")

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
