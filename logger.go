package relterm

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/relterm/partition"
	"github.com/hupe1980/relterm/vocab"
)

// Logger wraps slog.Logger with relterm-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithRunID adds a run id field to the logger.
func (l *Logger) WithRunID(id string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id),
	}
}

// WithPolicy adds a similarity policy field to the logger.
func (l *Logger) WithPolicy(policy string) *Logger {
	return &Logger{
		Logger: l.Logger.With("policy", policy),
	}
}

// WithSource adds a corpus source field to the logger.
func (l *Logger) WithSource(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", name),
	}
}

// LogBuild logs a matrix build.
func (l *Logger) LogBuild(ctx context.Context, words, lines, cells int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "matrix build failed",
			"words", words,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "matrix built",
			"words", words,
			"lines", lines,
			"cells", cells,
			"elapsed", elapsed,
		)
	}
}

// LogSource logs one corpus source read during a build.
func (l *Logger) LogSource(ctx context.Context, name string, lines int, elapsed time.Duration) {
	l.DebugContext(ctx, "source read",
		"source", name,
		"lines", lines,
		"elapsed", elapsed,
	)
}

// LogPhase logs a timed processing phase.
func (l *Logger) LogPhase(ctx context.Context, phase string, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "phase failed",
			"phase", phase,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "phase completed",
			"phase", phase,
			"elapsed", elapsed,
		)
	}
}

// LogPartition logs the outcome of one partition.
func (l *Logger) LogPartition(ctx context.Context, st partition.Status) {
	switch st.State {
	case partition.StateFailed:
		l.ErrorContext(ctx, "partition failed",
			"partition", st.Range.Index,
			"output", st.Output,
			"error", st.Err,
		)
	case partition.StateSkipped:
		l.InfoContext(ctx, "partition skipped",
			"partition", st.Range.Index,
			"output", st.Output,
		)
	default:
		l.InfoContext(ctx, "partition completed",
			"partition", st.Range.Index,
			"output", st.Output,
			"lines", st.Lines,
			"elapsed", st.Elapsed,
		)
	}
}

// LogRun logs a partitioned run.
func (l *Logger) LogRun(ctx context.Context, report partition.Report, elapsed time.Duration) {
	failed := len(report.Failed())
	if failed > 0 {
		l.WarnContext(ctx, "run completed with failures",
			"run_id", report.RunID,
			"partitions", len(report.Partitions),
			"failed", failed,
		)
	} else {
		l.InfoContext(ctx, "run completed",
			"run_id", report.RunID,
			"partitions", len(report.Partitions),
			"lines", report.Lines(),
			"elapsed", elapsed,
		)
	}
}

// LogDiagnostics logs malformed vocabulary lines.
func (l *Logger) LogDiagnostics(ctx context.Context, diags []*vocab.LineError) {
	for _, d := range diags {
		l.WarnContext(ctx, "skipped vocabulary line",
			"line", d.Line,
			"text", d.Text,
			"error", d.Err,
		)
	}
}
