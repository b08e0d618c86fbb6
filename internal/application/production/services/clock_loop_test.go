package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/shared"
)

func TestClockLoop_RunsRequestedHours(t *testing.T) {
	calls := 0
	loop := services.NewClockLoop(0, func(ctx context.Context) error {
		calls++
		return nil
	}, shared.NewMockClock(time.Unix(0, 0)))

	err := loop.Run(context.Background(), 24)

	require.NoError(t, err)
	assert.Equal(t, 24, calls)
	assert.Equal(t, int64(24), loop.HoursRun())
	assert.Equal(t, shared.LifecycleStatusStopped, loop.Status())
}

func TestClockLoop_StopsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	loop := services.NewClockLoop(0, func(ctx context.Context) error {
		calls++
		if calls == 3 {
			return boom
		}
		return nil
	}, nil)

	err := loop.Run(context.Background(), 10)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(2), loop.HoursRun())
	assert.Equal(t, shared.LifecycleStatusFailed, loop.Status())
}

func TestClockLoop_CancelStopsCleanly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loop := services.NewClockLoop(time.Millisecond, func(ctx context.Context) error {
		cancel()
		return nil
	}, nil)

	err := loop.Run(ctx, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(1), loop.HoursRun())
	assert.Equal(t, shared.LifecycleStatusStopped, loop.Status())
}
