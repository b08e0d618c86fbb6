package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/common"
)

// Server exposes the global registry over HTTP
type Server struct {
	addr       string
	httpServer *http.Server
}

// NewServer creates a metrics endpoint at host:port/path.
// InitRegistry must have been called first.
func NewServer(host string, port int, path string) (*Server, error) {
	if Registry == nil {
		return nil, errors.New("metrics registry is not initialized")
	}
	if path == "" {
		path = "/metrics"
	}
	addr := net.JoinHostPort(host, fmt.Sprint(port))

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry}))

	return &Server{
		addr: addr,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

// ListenAndServe runs the endpoint until ctx ends
func (s *Server) ListenAndServe(ctx context.Context, shutdownTimeout time.Duration) error {
	logger := common.LoggerFromContext(ctx)
	logger.Log(common.LevelInfo, "Metrics endpoint listening", map[string]interface{}{
		"address": s.addr,
	})

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	}
}
