package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStore_Lifecycle(t *testing.T) {
	store := NewRunStore()

	id := store.Create()
	require.NotEmpty(t, id)

	run, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, RunPending, run.State)
	assert.False(t, run.CreatedAt.IsZero())

	require.NoError(t, store.SetRunning(id))
	run, err = store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, RunRunning, run.State)

	require.NoError(t, store.Complete(id, &PostResult{PreviewResult: PreviewResult{Title: "Done"}}))
	run, err = store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, RunCompleted, run.State)
	require.NotNil(t, run.Result)
	assert.Empty(t, run.Error)
	assert.False(t, run.UpdatedAt.Before(run.CreatedAt))
}

func TestRunStore_Fail(t *testing.T) {
	store := NewRunStore()
	id := store.Create()

	require.NoError(t, store.Fail(id, errors.New("upstream timeout")))

	run, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, RunFailed, run.State)
	assert.Equal(t, "upstream timeout", run.Error)
	assert.Nil(t, run.Result)
}

func TestRunStore_UnknownID(t *testing.T) {
	store := NewRunStore()

	_, err := store.Get("no-such-run")
	assert.Error(t, err)
	assert.Error(t, store.SetRunning("no-such-run"))
}

func TestRunStore_GetReturnsCopy(t *testing.T) {
	store := NewRunStore()
	id := store.Create()

	run, err := store.Get(id)
	require.NoError(t, err)
	run.State = RunFailed

	fresh, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, RunPending, fresh.State)
}

func TestRunStore_IDsAreUnique(t *testing.T) {
	store := NewRunStore()

	seen := make(map[string]bool)
	for range 50 {
		id := store.Create()
		assert.False(t, seen[id])
		seen[id] = true
	}
}
