package notify

import (
	"context"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/common"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// LogSink writes production notices to the logger carried by the context
type LogSink struct{}

// NewLogSink creates a log sink
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Notify logs the event. Blocked and unresolved orders log at WARNING,
// invariant violations at ERROR.
func (s *LogSink) Notify(ctx context.Context, e production.Event) {
	level := common.LevelInfo
	switch e.Type {
	case production.EventBlockedCredits, production.EventBlockedSpace, production.EventUnresolved:
		level = common.LevelWarn
	case production.EventInvariantBroken:
		level = common.LevelError
	case production.EventUnitCompleted:
		level = common.LevelDebug
	}

	meta := map[string]interface{}{
		"event": string(e.Type),
		"hour":  e.Hour,
		"base":  e.BaseID,
	}
	if e.OrderID != "" {
		meta["order_id"] = e.OrderID
		meta["target"] = e.TargetID
		meta["amount"] = e.Amount
	}
	common.LoggerFromContext(ctx).Log(level, e.Message(), meta)
}

// FanOut delivers each event to several sinks in order
type FanOut []production.NotificationSink

// Notify forwards the event to every non-nil sink
func (f FanOut) Notify(ctx context.Context, e production.Event) {
	for _, s := range f {
		if s != nil {
			s.Notify(ctx, e)
		}
	}
}

// Recorder keeps every event in memory; the CLI prints them after a command
type Recorder struct {
	events []production.Event
}

// Notify stores the event
func (r *Recorder) Notify(ctx context.Context, e production.Event) {
	r.events = append(r.events, e)
}

// Events returns the recorded events
func (r *Recorder) Events() []production.Event {
	out := make([]production.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Reset forgets the recorded events
func (r *Recorder) Reset() {
	r.events = nil
}

var (
	_ production.NotificationSink = (*LogSink)(nil)
	_ production.NotificationSink = FanOut(nil)
	_ production.NotificationSink = (*Recorder)(nil)
)
