package editor_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbarrett/tempo/internal/editor"
	"github.com/lbarrett/tempo/internal/repository"
	"github.com/lbarrett/tempo/internal/testutil"
)

func TestUndoBuffer_DeleteThenUndoRecreates(t *testing.T) {
	ctx := context.Background()
	database, svc, task := newEditorFixture(t)
	entry := seedEntry(t, database, task.ID, at(9, 0), at(10, 30))

	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	buf := editor.NewUndoBuffer(svc, func() time.Time { return clock })

	require.NoError(t, buf.Delete(ctx, entry))
	entries := repository.NewSQLiteTimeEntryRepo(database)
	_, err := entries.GetByID(ctx, entry.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	assert.True(t, buf.CanUndo())

	clock = clock.Add(5 * time.Second)
	recreated, err := buf.Undo(ctx)
	require.NoError(t, err)

	// Same task and endpoints, fresh id: a recreate, not a restore.
	assert.NotEqual(t, entry.ID, recreated.ID)
	assert.Equal(t, entry.TaskID, recreated.TaskID)
	assert.True(t, recreated.StartTime.Equal(entry.StartTime))
	require.NotNil(t, recreated.EndTime)
	assert.True(t, recreated.EndTime.Equal(*entry.EndTime))
	assert.Equal(t, entry.DurationSeconds, recreated.DurationSeconds)

	// The buffer is spent.
	assert.False(t, buf.CanUndo())
	_, err = buf.Undo(ctx)
	require.ErrorIs(t, err, editor.ErrNothingToUndo)
}

func TestUndoBuffer_WindowExpires(t *testing.T) {
	ctx := context.Background()
	database, svc, task := newEditorFixture(t)
	entry := seedEntry(t, database, task.ID, at(9, 0), at(10, 0))

	clock := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	buf := editor.NewUndoBuffer(svc, func() time.Time { return clock })

	require.NoError(t, buf.Delete(ctx, entry))

	clock = clock.Add(editor.UndoWindow + time.Second)
	assert.False(t, buf.CanUndo())
	_, err := buf.Undo(ctx)
	require.ErrorIs(t, err, editor.ErrNothingToUndo)

	// The deletion stands.
	_, err = repository.NewSQLiteTimeEntryRepo(database).GetByID(ctx, entry.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUndoBuffer_RejectsRunningEntry(t *testing.T) {
	ctx := context.Background()
	_, svc, task := newEditorFixture(t)
	open := testutil.NewTestEntry(task.ID, testutil.WithOpenSince(at(9, 0)))

	buf := editor.NewUndoBuffer(svc, nil)
	require.Error(t, buf.Delete(ctx, open))
}
