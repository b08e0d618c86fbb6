package metrics

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
)

// PrometheusMiddleware creates a middleware that records command execution metrics:
// duration, success/failure counts and commands in flight.
// Command names drop their package prefix, so "*commands.EnqueueOrderCommand"
// is recorded as "EnqueueOrderCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		commandName := extractCommandName(request)
		collector.inFlight.Inc()
		defer collector.inFlight.Dec()

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(commandName, time.Since(start).Seconds(), err == nil)

		return response, err
	}
}

func extractCommandName(request mediator.Request) string {
	if request == nil {
		return "UnknownCommand"
	}
	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}
