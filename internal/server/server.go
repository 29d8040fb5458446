// Package server exposes the scanning engine over a small JSON HTTP API.
// The server owns no state; every request runs one synchronous scan.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/alphabeam/screenline/internal/logger"
	"github.com/alphabeam/screenline/internal/scanner"
	"github.com/alphabeam/screenline/internal/store"
)

// Server wires the scan orchestrator and scanner registry behind HTTP
// routes.
type Server struct {
	registry   scanner.Registry
	orch       *scanner.Orchestrator
	logger     *logger.Logger
	httpServer *http.Server
}

func NewServer(st store.Store, registry scanner.Registry, log *logger.Logger) *Server {
	return &Server{
		registry: registry,
		orch:     scanner.NewOrchestrator(st, log),
		logger:   log,
	}
}

// Handler builds the route table. Exposed separately so tests can drive the
// API through httptest without binding a socket.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/api/scanners", s.handleListScanners).Methods("GET")
	router.HandleFunc("/api/scan", s.handleScan).Methods("POST")
	router.HandleFunc("/api/schema", s.handleSchema).Methods("GET")

	return router
}

// Start serves the API until the context is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info("api server listening", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}

		return err
	}
}
