package ui

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"cricdash/internal/catalog"
	"cricdash/internal/engine"
	"cricdash/internal/logging"
	"cricdash/internal/registry"
	"cricdash/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// App serves the dashboard page and its JSON API.
type App struct {
	router    *chi.Mux
	registry  *registry.Registry
	catalog   *catalog.Catalog
	evaluator *engine.Evaluator
	exporter  ports.ChartExporter
	templates *template.Template
	logger    *logging.Logger
	config    Config
}

// Config holds UI application configuration
type Config struct {
	Port            string
	DefaultPageSize int
}

// Deps are the services the handlers read from.
type Deps struct {
	Registry  *registry.Registry
	Catalog   *catalog.Catalog
	Evaluator *engine.Evaluator
	Exporter  ports.ChartExporter
	Logger    *logging.Logger
}

// NewApp creates a new UI application
func NewApp(config Config, deps Deps) (*App, error) {
	if deps.Registry == nil || deps.Catalog == nil || deps.Evaluator == nil || deps.Exporter == nil {
		return nil, fmt.Errorf("ui: registry, catalog, evaluator and exporter are required")
	}
	if deps.Logger == nil {
		deps.Logger = logging.DefaultLogger
	}
	if config.DefaultPageSize < 1 {
		config.DefaultPageSize = 50
	}

	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"cell":     formatCell,
		"number":   formatNumber,
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		registry:  deps.Registry,
		catalog:   deps.Catalog,
		evaluator: deps.Evaluator,
		exporter:  deps.Exporter,
		templates: templates,
		logger:    deps.Logger.With("UI"),
		config:    config,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Pages
	a.router.Get("/", a.handleIndex)
	a.router.Get("/datasets/{name}/charts", a.handleChartsPage)

	// API endpoints
	a.router.Route("/api/datasets", func(r chi.Router) {
		r.Get("/", a.handleListDatasets)
		r.Get("/{name}", a.handleDatasetView)
		r.Get("/{name}/stages", a.handleStages)
		r.Get("/{name}/charts", a.handleCharts)
		r.Get("/{name}/charts/{id}/export.xlsx", a.handleExport)
	})
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + a.config.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting dashboard server on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		a.logger.Info("shutting down dashboard server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// renderTemplate executes a template into a buffer first so that a
// template error never leaves a half-written page.
func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	buf, err := a.execute(templateName, data)
	if err != nil {
		a.logger.Error("template %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Warn("writing %s: %v", templateName, err)
	}
}
