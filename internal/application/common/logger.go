package common

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
)

// Log levels understood by StdLogger
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARNING"
	LevelError = "ERROR"
)

var levelRank = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
	"WARN":     2,
}

// Logger is the structured logger passed through context
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {}

// StdLogger writes leveled entries through a standard library logger,
// either as text lines or as one JSON object per line
type StdLogger struct {
	mu       sync.Mutex
	out      *log.Logger
	minLevel int
	json     bool
}

// NewStdLogger creates a logger writing to w. Unknown levels fall back to INFO.
func NewStdLogger(w io.Writer, level, format string) *StdLogger {
	rank, ok := levelRank[strings.ToUpper(level)]
	if !ok {
		rank = levelRank[LevelInfo]
	}
	flags := log.LstdFlags
	if strings.EqualFold(format, "json") {
		flags = 0
	}
	return &StdLogger{
		out:      log.New(w, "", flags),
		minLevel: rank,
		json:     strings.EqualFold(format, "json"),
	}
}

// Log writes an entry if level is at or above the configured minimum
func (l *StdLogger) Log(level, message string, metadata map[string]interface{}) {
	level = strings.ToUpper(level)
	if rank, ok := levelRank[level]; ok && rank < l.minLevel {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.json {
		entry := make(map[string]interface{}, len(metadata)+2)
		for k, v := range metadata {
			entry[k] = v
		}
		entry["level"] = level
		entry["msg"] = message
		data, err := json.Marshal(entry)
		if err != nil {
			l.out.Printf(`{"level":"ERROR","msg":"unencodable log entry: %s"}`, err)
			return
		}
		l.out.Print(string(data))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", level, message)
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	l.out.Print(b.String())
}
