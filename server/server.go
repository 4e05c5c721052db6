package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dentalbot/scribe/config"
	"github.com/dentalbot/scribe/server/shared"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const shutdownTimeout = 30 * time.Second

// Handler is a set of routes mounted on the server.
type Handler interface {
	Attach(r chi.Router)
}

type Server struct {
	*config.Config

	name     string
	handlers []Handler
}

func New(name string, cfg *config.Config, handlers ...Handler) *Server {
	return &Server{
		Config: cfg,

		name:     name,
		handlers: handlers,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.Origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},

		// preflights for every route end here, plain OPTIONS reach the routes
		OptionsSuccessStatus: http.StatusNoContent,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		shared.WriteJson(w, shared.StatusResponse{Status: "ok"})
	})

	for _, h := range s.handlers {
		h.Attach(r)
	}

	return otelhttp.NewHandler(r, s.name)
}

// ListenAndServe serves until ctx is cancelled, then drains open requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),

		ReadHeaderTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("server listening", "service", s.name, "addr", addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received", "service", s.name)

	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// recoverer turns a handler panic into a JSON 500.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				slog.ErrorContext(r.Context(), "handler panic", "path", r.URL.Path, "panic", rvr)

				shared.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
