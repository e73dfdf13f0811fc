package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbarrett/tempo/internal/domain"
	"github.com/lbarrett/tempo/internal/repository"
	"github.com/lbarrett/tempo/internal/service"
	"github.com/lbarrett/tempo/internal/testutil"
)

// fakeClock returns a controllable now function for timer tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTimerFixture(t *testing.T) (*sql.DB, service.TimerService, *fakeClock, *repository.SQLiteTimeEntryRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	clock := &fakeClock{now: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	entries := repository.NewSQLiteTimeEntryRepo(database)
	svc := service.NewTimerService(entries, testutil.NewTestUoW(database), nil, clock.Now)
	return database, svc, clock, entries
}

func seedTask(ctx context.Context, t *testing.T, database *sql.DB, name string) *domain.Task {
	t.Helper()
	task := testutil.NewTestTask(name)
	require.NoError(t, repository.NewSQLiteTaskRepo(database).Create(ctx, task))
	return task
}

func TestTimerService_StartOpensEntry(t *testing.T) {
	ctx := context.Background()
	database, svc, clock, entries := newTimerFixture(t)
	task := seedTask(ctx, t, database, "Write report")

	result, err := svc.Start(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Entry)
	assert.Nil(t, result.Stopped)
	assert.False(t, result.Resumed)
	assert.Equal(t, task.ID, result.Entry.TaskID)
	assert.Equal(t, task.ExternalID, result.Entry.TaskExternalID)
	assert.True(t, result.Entry.StartTime.Equal(clock.Now()))
	assert.True(t, result.Entry.Running())

	stored, err := entries.GetByID(ctx, result.Entry.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.EndTime)
}

func TestTimerService_StartClosesRunningEntry(t *testing.T) {
	ctx := context.Background()
	database, svc, clock, entries := newTimerFixture(t)
	first := seedTask(ctx, t, database, "First")
	second := seedTask(ctx, t, database, "Second")

	started, err := svc.Start(ctx, first.ID)
	require.NoError(t, err)

	clock.Advance(90 * time.Minute)

	result, err := svc.Start(ctx, second.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Stopped)
	assert.Equal(t, started.Entry.ID, result.Stopped.ID)
	assert.Equal(t, 5400, result.Stopped.DurationSeconds)
	require.NotNil(t, result.Stopped.EndTime)
	assert.True(t, result.Stopped.EndTime.Equal(clock.Now()))
	assert.Equal(t, second.ID, result.Entry.TaskID)

	// Exactly one open entry remains.
	open, err := entries.FindOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.Entry.ID, open.ID)
}

func TestTimerService_StartSameTaskResumes(t *testing.T) {
	ctx := context.Background()
	database, svc, clock, entries := newTimerFixture(t)
	task := seedTask(ctx, t, database, "Focus block")

	first, err := svc.Start(ctx, task.ID)
	require.NoError(t, err)

	clock.Advance(10 * time.Minute)

	second, err := svc.Start(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, second.Resumed)
	assert.Nil(t, second.Stopped)
	assert.Equal(t, first.Entry.ID, second.Entry.ID)

	// The original entry is still open with its original start time.
	open, err := entries.FindOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Entry.ID, open.ID)
	assert.True(t, open.StartTime.Equal(first.Entry.StartTime))
}

func TestTimerService_StartUnknownTaskLeavesTimerRunning(t *testing.T) {
	ctx := context.Background()
	database, svc, clock, entries := newTimerFixture(t)
	task := seedTask(ctx, t, database, "Keep running")

	running, err := svc.Start(ctx, task.ID)
	require.NoError(t, err)

	clock.Advance(5 * time.Minute)

	_, err = svc.Start(ctx, "no-such-task")
	require.ErrorIs(t, err, repository.ErrNotFound)

	// The failed start rolled back wholesale: the prior timer is untouched.
	open, err := entries.FindOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, running.Entry.ID, open.ID)
	assert.True(t, open.Running())
}

func TestTimerService_StartRequiresTaskID(t *testing.T) {
	ctx := context.Background()
	_, svc, _, _ := newTimerFixture(t)

	_, err := svc.Start(ctx, "")
	require.Error(t, err)
	assert.True(t, service.IsValidation(err))
}

func TestTimerService_Stop(t *testing.T) {
	ctx := context.Background()
	database, svc, clock, _ := newTimerFixture(t)
	task := seedTask(ctx, t, database, "Deep work")

	started, err := svc.Start(ctx, task.ID)
	require.NoError(t, err)

	clock.Advance(25 * time.Minute)

	stopped, err := svc.Stop(ctx, started.Entry.ID)
	require.NoError(t, err)
	require.NotNil(t, stopped.EndTime)
	assert.True(t, stopped.EndTime.Equal(clock.Now()))
	assert.Equal(t, 1500, stopped.DurationSeconds)
	assert.False(t, stopped.Running())
}

func TestTimerService_StopAlreadyStopped(t *testing.T) {
	ctx := context.Background()
	database, svc, clock, _ := newTimerFixture(t)
	task := seedTask(ctx, t, database, "Once only")

	started, err := svc.Start(ctx, task.ID)
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = svc.Stop(ctx, started.Entry.ID)
	require.NoError(t, err)

	_, err = svc.Stop(ctx, started.Entry.ID)
	require.ErrorIs(t, err, service.ErrAlreadyStopped)
}

func TestTimerService_StopUnknownEntry(t *testing.T) {
	ctx := context.Background()
	_, svc, _, _ := newTimerFixture(t)

	_, err := svc.Stop(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTimerService_Active(t *testing.T) {
	ctx := context.Background()
	database, svc, _, _ := newTimerFixture(t)

	// No timer running: nil, not an error.
	detail, err := svc.Active(ctx)
	require.NoError(t, err)
	assert.Nil(t, detail)

	client := testutil.NewTestClient("Acme")
	require.NoError(t, repository.NewSQLiteClientRepo(database).Create(ctx, client))
	project := testutil.NewTestProject("Website", testutil.WithClient(client.ID), testutil.WithHourlyRate(120))
	require.NoError(t, repository.NewSQLiteProjectRepo(database).Create(ctx, project))
	task := testutil.NewTestTask("Design pass", testutil.WithProject(project.ID))
	require.NoError(t, repository.NewSQLiteTaskRepo(database).Create(ctx, task))

	started, err := svc.Start(ctx, task.ID)
	require.NoError(t, err)

	detail, err = svc.Active(ctx)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, started.Entry.ID, detail.Entry.ID)
	assert.Equal(t, "Design pass", detail.TaskName)
	assert.Equal(t, "Website", detail.ProjectName)
	assert.Equal(t, "Acme", detail.ClientName)
	assert.Equal(t, 120.0, detail.HourlyRate)
}

func TestTimerService_SingleOpenAcrossSequence(t *testing.T) {
	ctx := context.Background()
	database, svc, clock, entries := newTimerFixture(t)
	tasks := []*domain.Task{
		seedTask(ctx, t, database, "One"),
		seedTask(ctx, t, database, "Two"),
		seedTask(ctx, t, database, "Three"),
	}

	for _, task := range tasks {
		_, err := svc.Start(ctx, task.ID)
		require.NoError(t, err)
		clock.Advance(17 * time.Minute)
	}

	var openCount int
	require.NoError(t, database.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM time_entries WHERE end_time IS NULL`).Scan(&openCount))
	assert.Equal(t, 1, openCount)

	open, err := entries.FindOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, tasks[2].ID, open.TaskID)

	_, err = svc.Stop(ctx, open.ID)
	require.NoError(t, err)

	_, err = entries.FindOpen(ctx)
	require.True(t, errors.Is(err, repository.ErrNotFound))
}
