package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/common"
)

// ProductionService is the health service name reported for the campaign clock
const ProductionService = "ufoprod.Production"

// DaemonServer exposes the production daemon over gRPC.
// Only the standard health service is served; it reports whether the
// campaign clock is advancing.
type DaemonServer struct {
	listener net.Listener
	server   *grpc.Server
	health   *health.Server
	done     chan struct{}
}

// NewDaemonServer listens on a TCP address (host:port)
func NewDaemonServer(address string) (*DaemonServer, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ProductionService, healthpb.HealthCheckResponse_NOT_SERVING)

	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	return &DaemonServer{
		listener: listener,
		server:   grpcServer,
		health:   healthServer,
		done:     make(chan struct{}),
	}, nil
}

// Addr returns the address the server listens on
func (s *DaemonServer) Addr() net.Addr {
	return s.listener.Addr()
}

// SetServing flips the reported status of the production service
func (s *DaemonServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ProductionService, status)
}

// Start serves requests until ctx is cancelled, then stops gracefully.
// Shutdown waits at most shutdownTimeout for in-flight calls.
func (s *DaemonServer) Start(ctx context.Context, shutdownTimeout time.Duration) error {
	logger := common.LoggerFromContext(ctx)
	logger.Log(common.LevelInfo, "Daemon server listening", map[string]interface{}{
		"address": s.listener.Addr().String(),
	})

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
		close(s.done)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	logger.Log(common.LevelInfo, "Initiating graceful shutdown of gRPC server", nil)
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(shutdownTimeout):
		logger.Log(common.LevelWarn, "Graceful shutdown timed out, forcing stop", map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
		s.server.Stop()
	}
	<-s.done
	return nil
}

// CheckHealth asks a running daemon for the production service status
func CheckHealth(ctx context.Context, address string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ProductionService})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, fmt.Errorf("health check failed: %w", err)
	}
	return resp.GetStatus(), nil
}
