package monitoring

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger provides enhanced structured logging with context
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new enhanced logger at the given level
func NewLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Add timestamp in RFC3339 format
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   "timestamp",
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DatasetLogger logs dataset load details
func (l *Logger) DatasetLogger(path string, rows, scenarios, metaOnly int, duration time.Duration) {
	l.Info("Dataset Loaded",
		"path", path,
		"rows", rows,
		"scenarios", scenarios,
		"meta_without_data", metaOnly,
		"duration_ms", duration.Milliseconds(),
	)
}

// AnalysisLogger logs analysis pipeline details
func (l *Logger) AnalysisLogger(scenarios, excluded, pairs, droppedPairs int, duration time.Duration) {
	l.Info("Analysis Completed",
		"scenarios", scenarios,
		"excluded_series", excluded,
		"pairs", pairs,
		"dropped_pairs", droppedPairs,
		"duration_ms", duration.Milliseconds(),
	)
}

// ExportLogger logs one written report artifact
func (l *Logger) ExportLogger(artifact, path string, duration time.Duration) {
	l.Info("Artifact Written",
		"artifact", artifact,
		"path", path,
		"duration_ms", duration.Milliseconds(),
	)
}

// ScreenLogger logs one excluded timeseries
func (l *Logger) ScreenLogger(scenario, reason string) {
	l.Warn("Series Excluded",
		"scenario", scenario,
		"reason", reason,
	)
}

// SystemLogger logs system-level events
func (l *Logger) SystemLogger(event, details string) {
	l.Info("System Event",
		"event", event,
		"details", details,
		"uptime", time.Since(startTime).String(),
	)
}

var startTime = time.Now()
