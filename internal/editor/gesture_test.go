package editor_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbarrett/tempo/internal/domain"
	"github.com/lbarrett/tempo/internal/editor"
	"github.com/lbarrett/tempo/internal/repository"
	"github.com/lbarrett/tempo/internal/service"
	"github.com/lbarrett/tempo/internal/testutil"
	"github.com/lbarrett/tempo/internal/timeline"
)

var day = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.UTC)
}

// px maps a wall-clock time to its track position at 80px/hour from 05:00.
func px(h, m int) float64 {
	return (float64(h) + float64(m)/60 - 5) * 80
}

func newEditorFixture(t *testing.T) (*sql.DB, service.EntryService, *domain.Task) {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	task := testutil.NewTestTask("Draggable")
	require.NoError(t, repository.NewSQLiteTaskRepo(database).Create(ctx, task))

	entries := repository.NewSQLiteTimeEntryRepo(database)
	svc := service.NewEntryService(entries, testutil.NewTestUoW(database), time.UTC, nil)
	return database, svc, task
}

func seedEntry(t *testing.T, database *sql.DB, taskID string, start, end time.Time) *domain.TimeEntry {
	t.Helper()
	entry := testutil.NewTestEntry(taskID, testutil.WithInterval(start, end))
	require.NoError(t, repository.NewSQLiteTimeEntryRepo(database).Create(context.Background(), entry))
	return entry
}

func TestGesture_ResizeEndCommitsOnce(t *testing.T) {
	ctx := context.Background()
	database, svc, task := newEditorFixture(t)
	entry := seedEntry(t, database, task.ID, at(9, 0), at(10, 0))

	g := editor.NewGesture(timeline.DefaultConfig(time.UTC), svc)
	require.NoError(t, g.Begin(editor.ResizeEnd, entry, day, px(10, 0)))
	assert.Equal(t, editor.Dragging, g.State())

	require.NoError(t, g.Tick(px(10, 30)))
	require.NoError(t, g.Tick(px(11, 0)))
	_, end := g.Candidate()
	assert.True(t, end.Equal(at(11, 0)))

	updated, err := g.End(ctx)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, 7200, updated.DurationSeconds)
	assert.Equal(t, editor.Idle, g.State())

	stored, err := repository.NewSQLiteTimeEntryRepo(database).GetByID(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.EndTime)
	assert.True(t, stored.EndTime.Equal(at(11, 0)))
}

func TestGesture_ResizeStartRejectsInversion(t *testing.T) {
	ctx := context.Background()
	database, svc, task := newEditorFixture(t)
	entry := seedEntry(t, database, task.ID, at(9, 0), at(10, 0))

	g := editor.NewGesture(timeline.DefaultConfig(time.UTC), svc)
	require.NoError(t, g.Begin(editor.ResizeStart, entry, day, px(9, 0)))

	// Dragging the start past the end is ignored; the last valid candidate
	// stands.
	require.NoError(t, g.Tick(px(9, 30)))
	require.NoError(t, g.Tick(px(10, 30)))
	start, _ := g.Candidate()
	assert.True(t, start.Equal(at(9, 30)))

	_, err := g.End(ctx)
	require.NoError(t, err)

	stored, err := repository.NewSQLiteTimeEntryRepo(database).GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.True(t, stored.StartTime.Equal(at(9, 30)))
	assert.Equal(t, 1800, stored.DurationSeconds)
}

func TestGesture_MovePreservesDuration(t *testing.T) {
	ctx := context.Background()
	database, svc, task := newEditorFixture(t)
	entry := seedEntry(t, database, task.ID, at(9, 0), at(10, 30))

	g := editor.NewGesture(timeline.DefaultConfig(time.UTC), svc)
	// Grab the block in its middle and drag two hours right.
	require.NoError(t, g.Begin(editor.Move, entry, day, px(9, 45)))
	require.NoError(t, g.Tick(px(11, 45)))

	start, end := g.Candidate()
	assert.True(t, start.Equal(at(11, 0)))
	assert.True(t, end.Equal(at(12, 30)))

	updated, err := g.End(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5400, updated.DurationSeconds)
	assert.True(t, updated.StartTime.Equal(at(11, 0)))
}

func TestGesture_NoNetMovementSkipsCommit(t *testing.T) {
	ctx := context.Background()
	database, svc, task := newEditorFixture(t)
	entry := seedEntry(t, database, task.ID, at(9, 0), at(10, 0))

	g := editor.NewGesture(timeline.DefaultConfig(time.UTC), svc)
	require.NoError(t, g.Begin(editor.ResizeEnd, entry, day, px(10, 0)))
	require.NoError(t, g.Tick(px(10, 30)))
	require.NoError(t, g.Tick(px(10, 0))) // dragged back where it started

	updated, err := g.End(ctx)
	require.NoError(t, err)
	assert.Nil(t, updated, "no net movement must not hit the store")

	stored, err := repository.NewSQLiteTimeEntryRepo(database).GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.UpdatedAt.Unix(), stored.UpdatedAt.Unix())
}

func TestGesture_CancelDiscards(t *testing.T) {
	ctx := context.Background()
	database, svc, task := newEditorFixture(t)
	entry := seedEntry(t, database, task.ID, at(9, 0), at(10, 0))

	g := editor.NewGesture(timeline.DefaultConfig(time.UTC), svc)
	require.NoError(t, g.Begin(editor.Move, entry, day, px(9, 0)))
	require.NoError(t, g.Tick(px(14, 0)))
	g.Cancel()
	assert.Equal(t, editor.Idle, g.State())

	stored, err := repository.NewSQLiteTimeEntryRepo(database).GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.True(t, stored.StartTime.Equal(at(9, 0)))
}

func TestGesture_CommitFailureKeepsStoredEntry(t *testing.T) {
	ctx := context.Background()
	database, svc, task := newEditorFixture(t)
	entry := seedEntry(t, database, task.ID, at(9, 0), at(10, 0))

	g := editor.NewGesture(timeline.DefaultConfig(time.UTC), svc)
	require.NoError(t, g.Begin(editor.ResizeEnd, entry, day, px(10, 0)))
	require.NoError(t, g.Tick(px(11, 0)))

	// The entry disappears underneath the gesture (deleted elsewhere).
	require.NoError(t, repository.NewSQLiteTimeEntryRepo(database).Delete(ctx, entry.ID))

	_, err := g.End(ctx)
	require.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, editor.Idle, g.State())
}

func TestGesture_CreateDragsOutNewEntry(t *testing.T) {
	ctx := context.Background()
	database, svc, task := newEditorFixture(t)

	g := editor.NewGesture(timeline.DefaultConfig(time.UTC), svc)
	require.NoError(t, g.BeginCreate(task.ID, day, px(13, 0)))
	require.NoError(t, g.Tick(px(14, 15)))

	created, err := g.End(ctx)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, task.ID, created.TaskID)
	assert.True(t, created.StartTime.Equal(at(13, 0)))
	assert.Equal(t, 4500, created.DurationSeconds)

	stored, err := repository.NewSQLiteTimeEntryRepo(database).GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 4500, stored.DurationSeconds)
}

func TestGesture_CreateWithoutDragIsNoop(t *testing.T) {
	ctx := context.Background()
	_, svc, task := newEditorFixture(t)

	g := editor.NewGesture(timeline.DefaultConfig(time.UTC), svc)
	require.NoError(t, g.BeginCreate(task.ID, day, px(13, 0)))

	created, err := g.End(ctx)
	require.NoError(t, err)
	assert.Nil(t, created, "a click with no drag creates nothing")
}

func TestGesture_BeginRejectsRunningEntry(t *testing.T) {
	_, svc, task := newEditorFixture(t)
	open := testutil.NewTestEntry(task.ID, testutil.WithOpenSince(at(9, 0)))

	g := editor.NewGesture(timeline.DefaultConfig(time.UTC), svc)
	require.Error(t, g.Begin(editor.Move, open, day, px(9, 0)))
}
