package shared_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/shared"
)

func TestCampaignClock_Advance(t *testing.T) {
	c := shared.NewCampaignClock(23)

	assert.Equal(t, int64(0), c.Day())
	assert.Equal(t, int64(24), c.Advance())
	assert.Equal(t, int64(1), c.Day())
	assert.Equal(t, int64(0), c.HourOfDay())
}

func TestLifecycleStateMachine_Transitions(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})
	sm := shared.NewLifecycleStateMachine(clock)

	require.NoError(t, sm.Start())
	assert.True(t, sm.IsRunning())
	assert.Error(t, sm.Start())

	clock.Advance(5 * time.Minute)
	require.NoError(t, sm.Stop())
	assert.Equal(t, 5*time.Minute, sm.Uptime())

	require.NoError(t, sm.Start())
	require.NoError(t, sm.Fail(errors.New("db gone")))
	assert.Equal(t, shared.LifecycleStatusFailed, sm.Status())
	assert.EqualError(t, sm.LastError(), "db gone")
	assert.Error(t, sm.Start())
}
