package common

import (
	"context"
	"fmt"
	"time"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
)

// LoggingMiddleware logs each dispatched request and its outcome at DEBUG,
// failures at WARNING
func LoggingMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := LoggerFromContext(ctx)
		name := fmt.Sprintf("%T", request)
		start := time.Now()

		resp, err := next(ctx, request)

		meta := map[string]interface{}{
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			meta["error"] = err.Error()
			logger.Log(LevelWarn, "request failed", meta)
			return resp, err
		}
		logger.Log(LevelDebug, "request handled", meta)
		return resp, nil
	}
}
