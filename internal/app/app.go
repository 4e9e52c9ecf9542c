package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"fpapulse/internal/ai"
	"fpapulse/internal/config"
	apierrors "fpapulse/internal/errors"
	"fpapulse/internal/infrastructure"
	customMiddleware "fpapulse/internal/middleware"
	"fpapulse/internal/services"
	"fpapulse/internal/sheets"
	handlers "fpapulse/internal/transport/http"
)

const (
	// Version is the application version, overridable at link time.
	Version = "v1.0.0"
)

// BuildTime is set at compile time via -ldflags.
var BuildTime = "development"

// Application is the main application container. It owns configuration,
// the HTTP server, telemetry providers and the service layer, and wires
// them together in NewApplication.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders

	errorHandler   *apierrors.ErrorHandler
	otelMiddleware *customMiddleware.OTelMiddleware

	sheetService    *services.SheetService
	metricsService  *services.MetricsService
	analysisService *services.AnalysisService
	healthService   *services.HealthService
}

// NewApplication creates and wires the application: configuration,
// logging, telemetry, services, router and HTTP server, in that order.
func NewApplication(ctx context.Context) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	slog.SetDefault(logger)

	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: providers,
	}

	if err := app.initializeServices(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.setupRouter(); err != nil {
		return nil, fmt.Errorf("failed to setup router: %w", err)
	}

	app.createServer()

	logger.Info("application initialized",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port),
		slog.String("spreadsheet_id", cfg.Sheets.SpreadsheetID),
	)

	return app, nil
}

// initializeServices builds the service layer. A missing service
// account does not abort startup: the sheet-backed endpoints serve 503
// until credentials appear, and readiness reports not_ready.
func (a *Application) initializeServices(ctx context.Context) error {
	environment := os.Getenv("ENVIRONMENT")
	a.errorHandler = apierrors.NewErrorHandler(a.Logger, environment != "production")

	otelMW, err := customMiddleware.NewOTelMiddleware(a.OTelProviders)
	if err != nil {
		return fmt.Errorf("failed to create telemetry middleware: %w", err)
	}
	a.otelMiddleware = otelMW
	businessMetrics := otelMW.BusinessMetrics()

	var fetcher services.SheetFetcher
	credentials, err := a.Config.ServiceAccountJSON()
	if err != nil {
		a.Logger.Warn("sheets credentials unavailable, running degraded",
			slog.String("error", err.Error()))
		fetcher = unavailableSheets{}
	} else {
		client, err := sheets.NewClient(ctx, a.Config.Sheets.SpreadsheetID, credentials, a.Logger)
		if err != nil {
			return fmt.Errorf("failed to create sheets client: %w", err)
		}
		fetcher = client
	}

	aiClient := ai.NewClient(ai.Config{
		APIKey:      a.Config.OpenAIKey(),
		BaseURL:     a.Config.OpenAI.BaseURL,
		Model:       a.Config.OpenAI.Model,
		Temperature: a.Config.OpenAI.Temperature,
		MaxTokens:   a.Config.OpenAI.MaxTokens,
		Timeout:     a.Config.Server.AnalysisTimeout,
	}, a.Logger)
	if !aiClient.Configured() {
		a.Logger.Info("analysis disabled, no API key configured",
			slog.String("env", a.Config.OpenAI.APIKeyEnv))
	}

	a.sheetService = services.NewSheetService(fetcher, a.Logger, businessMetrics)
	a.metricsService = services.NewMetricsService(a.sheetService, a.Config.Sheets, a.Logger, businessMetrics)
	a.analysisService = services.NewAnalysisService(a.sheetService, aiClient, a.Config.OpenAI, a.Config.Sheets, a.Logger, businessMetrics)
	a.healthService = services.NewHealthService(Version, BuildTime, fetcher, aiClient, a.Logger)

	return nil
}

// setupRouter configures the chi router with the middleware chain and
// all routes. The Prometheus endpoint sits outside the middleware group
// so scrapes are never rate limited or counted as API traffic.
func (a *Application) setupRouter() error {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StripSlashes)
	r.Use(customMiddleware.Compress(5))

	r.Group(func(r chi.Router) {
		r.Use(a.otelMiddleware.Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Logger:         a.Logger,
			}))
		}

		if a.Config.Security.RateLimit.Enabled {
			limiter := customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			)
			r.Use(limiter.Handler)
		}

		a.setupAPIRoutes(r)
		a.setupStaticRoutes(r)
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
	return nil
}

// setupAPIRoutes mounts the API under /api plus the health endpoints.
// Sheet and metrics routes share a short timeout; analysis calls an
// upstream model and gets its own, longer one.
func (a *Application) setupAPIRoutes(r chi.Router) {
	healthHandler := handlers.NewHealthHandler(a.healthService, a.Logger)
	sheetHandler := handlers.NewSheetHandler(a.sheetService, a.Logger, a.errorHandler)
	metricsHandler := handlers.NewMetricsHandler(a.metricsService, a.Logger, a.errorHandler)
	analysisHandler := handlers.NewAnalysisHandler(a.analysisService, a.Logger, a.errorHandler)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(30*time.Second, a.Logger))
			r.Mount("/sheets", sheetHandler.Routes())
			r.Mount("/metrics", metricsHandler.Routes())
		})

		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.AnalysisTimeout, a.Logger))
			r.Mount("/analyze", analysisHandler.Routes())
		})

		r.With(render.SetContentType(render.ContentTypeJSON)).
			Get("/version", healthHandler.Version)

		r.Route("/health", func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Get("/", healthHandler.HealthCheck)
			r.Get("/ready", healthHandler.ReadinessCheck)
			r.Get("/live", healthHandler.LivenessCheck)
		})
	})
}

// setupStaticRoutes serves the web UI from the configured directory
// when it exists. API-style 404s apply everywhere else.
func (a *Application) setupStaticRoutes(r chi.Router) {
	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	webDir := a.Config.Paths.WebDir
	info, err := os.Stat(webDir)
	if err != nil || !info.IsDir() {
		a.Logger.Debug("web directory not found, static serving disabled",
			slog.String("dir", webDir))
		return
	}

	fileServer := http.FileServer(http.Dir(webDir))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		fileServer.ServeHTTP(w, req)
	})
}

// createServer builds the HTTP server with timeouts from config.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start launches the HTTP server. It returns immediately; server errors
// cancel the supplied context via cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.Info("starting HTTP server", slog.String("addr", a.Server.Addr))

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.Error("HTTP server failed", slog.String("error", err.Error()))
			cancel()
		}
	}()

	return nil
}

// Stop gracefully shuts down the server and telemetry providers.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("server shutdown failed", slog.String("error", err.Error()))
		return fmt.Errorf("server shutdown: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warn("telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
	}

	a.Logger.Info("shutdown complete")
	return nil
}

// Run starts the application and blocks until an interrupt or
// termination signal arrives, then shuts down gracefully.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received signal", slog.String("signal", sig.String()))
	case <-ctx.Done():
		a.Logger.Info("context cancelled")
	}

	return a.Stop(context.Background())
}

// unavailableSheets stands in for the Google Sheets client when no
// service account is configured. Every call reports the credentials
// error, which the error handler maps to 503.
type unavailableSheets struct{}

func (unavailableSheets) ListTabs(context.Context) ([]string, error) {
	return nil, apierrors.ErrSheetsCredentials
}

func (unavailableSheets) Values(context.Context, string, string) ([][]any, error) {
	return nil, apierrors.ErrSheetsCredentials
}

func (unavailableSheets) BatchValues(context.Context, []string, int, string) (map[string][][]any, error) {
	return nil, apierrors.ErrSheetsCredentials
}

func (unavailableSheets) Ping(context.Context) error {
	return apierrors.ErrSheetsCredentials
}
