package app

import (
	"context"
	"net/http"
	"time"

	"github.com/almanak/almanak/internal/config"
	"github.com/almanak/almanak/internal/rest"
	"github.com/almanak/almanak/internal/watcher"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, stores, router, and server lifecycle.
type Application struct {
	cfg     config.Application
	router  *mux.Router
	srv     *http.Server
	watcher *watcher.Watcher
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (stores, services, handlers...)
	deps, err := BuildDependencies(cfg)
	if err != nil {
		return nil, err
	}

	// Initial load of the event set from disk.
	if err := deps.EventService.LoadAll(context.Background()); err != nil {
		return nil, err
	}

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	// Frontend
	if cfg.Frontend.Enabled {
		frontend := rest.NewFrontendHandler(cfg.Frontend.Dir, "index.html")
		r.PathPrefix("/").Handler(frontend)
	}

	app := &Application{cfg: cfg, router: r}

	if cfg.Data.Watch {
		w, err := watcher.New(cfg.Data.Dir, func() {
			if err := deps.EventService.LoadAll(context.Background()); err != nil {
				log.Errorf("reload after file change failed: %v", err)
			}
		})
		if err != nil {
			return nil, err
		}
		app.watcher = w
	}

	app.srv = &http.Server{
		Handler:      r,
		Addr:         cfg.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return app, nil
}

// Run starts the file watcher and the HTTP server and blocks.
func (a *Application) Run() error {
	if a.watcher != nil {
		a.watcher.Start()
		defer func() {
			if err := a.watcher.Close(); err != nil {
				log.Errorf("failed to close file watcher: %v", err)
			}
		}()
	}
	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}
