package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"max.ks1230/converter-bot/internal/logger"
	"max.ks1230/converter-bot/internal/model/converter"
)

const shutdownTimeout = 5 * time.Second

type config interface {
	Addr() string
}

type converterSource interface {
	Current() (*converter.Converter, bool)
}

// Server exposes metrics and a readiness probe.
type Server struct {
	srv *http.Server
}

func New(config config, converters converterSource) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              config.Addr(),
			Handler:           NewRouter(converters),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func NewRouter(converters converterSource) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		conv, ok := converters.Current()
		if !ok {
			http.Error(w, "rates are not loaded", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Last-Modified", conv.FetchedAt().UTC().Format(http.TimeFormat))
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

// Run serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("ops server listening", zap.String("addr", s.srv.Addr))
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	logger.Info("ops server stopped")
	return nil
}
