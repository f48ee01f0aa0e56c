// Package pipeline provides the uniform execution contract for workflow
// steps: a step is a phase name plus a handler, run under timing and
// structured logging. Fault handling stays with the caller.
package pipeline

import (
	"context"
	"log/slog"
	"time"
)

// StepResult carries a step's value together with its wall-clock duration.
// It is immutable once returned.
type StepResult[T any] struct {
	Value      T
	DurationMs int64
}

// Handler is the unit of work executed by RunStep. The returned map is
// optional metadata merged into the completion log record.
type Handler[T any] func(ctx context.Context) (T, map[string]any, error)

// RunStep executes handler under the step contract: a start event, the
// handler itself, then either a completion event with duration or an error
// event. Errors are returned unchanged, never swallowed; aborting or
// continuing the workflow is the caller's decision.
func RunStep[T any](ctx context.Context, logger *slog.Logger, phase string, startMeta map[string]any, handler Handler[T]) (StepResult[T], error) {
	if startMeta == nil {
		logger.Info("Step started", "phase", phase)
	} else {
		logger.Info("Step started", "phase", phase, "meta", startMeta)
	}

	start := time.Now()
	value, completeData, err := handler(ctx)
	if err != nil {
		logger.Error("Step failed", "phase", phase, "error", err)
		return StepResult[T]{}, err
	}

	durationMs := time.Since(start).Milliseconds()

	attrs := []any{"phase", phase, "duration_ms", durationMs}
	for k, v := range completeData {
		attrs = append(attrs, k, v)
	}
	logger.Info("Step completed", attrs...)

	return StepResult[T]{Value: value, DurationMs: durationMs}, nil
}
