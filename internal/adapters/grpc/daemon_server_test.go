package grpc_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	daemongrpc "github.com/ufoaiorg/ufoai-sub009/internal/adapters/grpc"
)

func TestDaemonServer_HealthFollowsClock(t *testing.T) {
	// Arrange
	server, err := daemongrpc.NewDaemonServer("127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan error, 1)
	go func() { stopped <- server.Start(ctx, time.Second) }()
	address := server.Addr().String()

	checkCtx, checkCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer checkCancel()

	// Act & Assert
	status, err := daemongrpc.CheckHealth(checkCtx, address)
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status)

	server.SetServing(true)
	status, err = daemongrpc.CheckHealth(checkCtx, address)
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status)

	cancel()
	select {
	case err := <-stopped:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestDaemonServer_ListenError(t *testing.T) {
	_, err := daemongrpc.NewDaemonServer("not-an-address")
	assert.Error(t, err)
}
