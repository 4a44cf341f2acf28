// pkg/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/zhaowt/limitup-export/pkg/config"
	"github.com/zhaowt/limitup-export/pkg/pipeline"
)

// Server exposes the processing pipeline over HTTP.
type Server struct {
	cfg       *config.Config
	logger    *zap.Logger
	processor *pipeline.Processor
	http      *http.Server
}

// New creates a Server wired to the given processor.
func New(cfg *config.Config, logger *zap.Logger, processor *pipeline.Processor) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if processor == nil {
		return nil, errors.New("processor cannot be nil")
	}

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		processor: processor,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/upload", s.requestLogged(s.handleUpload))
	mux.HandleFunc("/api/health", s.requestLogged(s.handleHealth))

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// Run starts the listener and blocks until ctx is cancelled, then drains
// in-flight requests before returning.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
