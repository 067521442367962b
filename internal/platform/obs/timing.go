package obs

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey string

const RunIDKey ctxKey = "run_id"

// WithRunID returns a context carrying the run id used in timing logs.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// RunID returns the run id stored in ctx, or "" when none is set.
func RunID(ctx context.Context) string {
	runID, _ := ctx.Value(RunIDKey).(string)
	return runID
}

// Time starts timing op and returns a func that logs its duration and,
// when errp points at a non-nil error, the failure.
//
//	defer obs.Time(ctx, "catalog.Load")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	runID := RunID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			slog.Warn("op failed", "run_id", runID, "op", name, "dur", dur, "error", *errp)
			return
		}
		slog.Debug("op done", "run_id", runID, "op", name, "dur", dur)
	}
}
