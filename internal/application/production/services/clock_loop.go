package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/common"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/shared"
)

// HourFunc simulates one campaign hour
type HourFunc func(ctx context.Context) error

// ClockLoop drives campaign hours at a fixed real-time pace
type ClockLoop struct {
	limiter   *rate.Limiter
	lifecycle *shared.LifecycleStateMachine
	hour      HourFunc
	hoursRun  atomic.Int64
}

// NewClockLoop creates a loop running one hour per interval.
// A zero interval runs hours back to back.
func NewClockLoop(interval time.Duration, hour HourFunc, clock shared.Clock) *ClockLoop {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &ClockLoop{
		limiter:   rate.NewLimiter(limit, 1),
		lifecycle: shared.NewLifecycleStateMachine(clock),
		hour:      hour,
	}
}

// Status returns the lifecycle state of the loop
func (l *ClockLoop) Status() shared.LifecycleStatus {
	return l.lifecycle.Status()
}

// HoursRun returns how many hours completed since the loop was created
func (l *ClockLoop) HoursRun() int64 {
	return l.hoursRun.Load()
}

// Run simulates hours until ctx is cancelled or maxHours have run (0 means no limit).
// The first failing hour stops the loop and is returned.
func (l *ClockLoop) Run(ctx context.Context, maxHours int64) error {
	if err := l.lifecycle.Start(); err != nil {
		return err
	}
	logger := common.LoggerFromContext(ctx)

	var ran int64
	for maxHours == 0 || ran < maxHours {
		if err := l.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			return l.fail(err)
		}

		if err := l.hour(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			logger.Log(common.LevelError, "campaign hour failed", map[string]interface{}{
				"error":     err.Error(),
				"hours_run": l.hoursRun.Load(),
			})
			return l.fail(err)
		}
		ran++
		l.hoursRun.Add(1)
	}

	return l.lifecycle.Stop()
}

func (l *ClockLoop) fail(err error) error {
	if ferr := l.lifecycle.Fail(err); ferr != nil {
		return fmt.Errorf("%w (%v)", err, ferr)
	}
	return err
}
