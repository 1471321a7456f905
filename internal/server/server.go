package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lsp-fixtures/internal/api"
	"lsp-fixtures/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the task, user and metrics endpoints.
func NewRouter(a api.API, defaultOwner string) *chi.Mux {
	h := &handlers{api: a, defaultOwner: defaultOwner}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.listTasks)
		r.Post("/", h.addTask)
		r.Get("/summary", h.summary)
		r.Post("/{id}/complete", h.completeTask)
	})
	r.Get("/users/{key}/display-name", h.displayName)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Run serves handler on addr until ctx is canceled, then shuts down.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Debugf("listening on %s\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logging.Debugln("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
