package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStep_Success(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	res, err := RunStep(context.Background(), logger, "compile-context", nil,
		func(ctx context.Context) (string, map[string]any, error) {
			time.Sleep(5 * time.Millisecond)
			return "compiled", map[string]any{"sources": 3}, nil
		})

	require.NoError(t, err)
	assert.Equal(t, "compiled", res.Value)
	assert.GreaterOrEqual(t, res.DurationMs, int64(5))
}

func TestRunStep_ErrorPropagates(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	wantErr := errors.New("search provider down")

	_, err := RunStep(context.Background(), logger, "research", nil,
		func(ctx context.Context) (int, map[string]any, error) {
			return 0, nil, wantErr
		})

	assert.ErrorIs(t, err, wantErr)
}

func TestDiagnostics_OrderPreserved(t *testing.T) {
	var d Diagnostics
	d.Record("metadata", 12)
	d.Record("research", 340)
	d.Record("metadata", 1) // duplicates are kept, never merged

	entries := d.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "metadata", entries[0].Phase)
	assert.Equal(t, "research", entries[1].Phase)
	assert.Equal(t, "metadata", entries[2].Phase)
	assert.Equal(t, int64(340), entries[1].DurationMs)
}

func TestDiagnostics_EntriesReturnsCopy(t *testing.T) {
	var d Diagnostics
	d.Record("metadata", 1)

	entries := d.Entries()
	entries[0].Phase = "mutated"

	assert.Equal(t, "metadata", d.Entries()[0].Phase)
}
