// Package ui serves the HTML dashboard: the full chart walkthrough plus the
// interactive filter panel, rendered server-side over one loaded dataset.
package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"claimscope/domain/charts"
	"claimscope/internal"
	"claimscope/internal/analysis"
)

//go:embed templates/*
var embeddedFiles embed.FS

// App represents the dashboard application
type App struct {
	router    *chi.Mux
	engine    *analysis.Engine
	bundle    *charts.Bundle
	narrative Narrative
	templates *template.Template
	log       *internal.Logger
}

// NewApp creates the dashboard over an engine and its prebuilt chart bundle
func NewApp(engine *analysis.Engine, bundle *charts.Bundle) (*App, error) {
	funcMap := template.FuncMap{
		"json": func(v interface{}) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(b), nil
		},
		"cell": formatCell,
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		engine:    engine,
		bundle:    bundle,
		narrative: renderNarrative(),
		templates: templates,
		log:       internal.DefaultLogger,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleDashboard)
	a.router.Get("/filter", a.handleFilter)
}

// Start starts the HTTP server
func (a *App) Start(port string) error {
	a.log.Info("[UI] serving dashboard on :%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

// Router exposes the underlying handler for tests
func (a *App) Router() http.Handler {
	return a.router
}

func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.log.Error("[UI] template %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
