package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbarrett/tempo/internal/domain"
	"github.com/lbarrett/tempo/internal/repository"
	"github.com/lbarrett/tempo/internal/service"
	"github.com/lbarrett/tempo/internal/testutil"
)

func TestTaskService_CreateAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	svc := service.NewTaskService(repository.NewSQLiteTaskRepo(database))

	task := &domain.Task{Name: "Inbox triage"}
	require.NoError(t, svc.Create(ctx, task))
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "active", task.Status)
	assert.False(t, task.CreatedAt.IsZero())

	got, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Inbox triage", got.Name)
}

func TestTaskService_CreateRequiresName(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	svc := service.NewTaskService(repository.NewSQLiteTaskRepo(database))

	err := svc.Create(ctx, &domain.Task{})
	require.Error(t, err)
	assert.True(t, service.IsValidation(err))
}

func TestCatalogServices_LocalOnlyRowsSkipMirrorKey(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	tasks := service.NewTaskService(repository.NewSQLiteTaskRepo(database))
	projects := service.NewProjectService(repository.NewSQLiteProjectRepo(database))
	clients := service.NewClientService(repository.NewSQLiteClientRepo(database))

	// Rows created locally have no mirror key. The unique index on
	// external_id must not collide on the second such row.
	first := &domain.Task{Name: "Inbox triage"}
	second := &domain.Task{Name: "Expense report"}
	require.NoError(t, tasks.Create(ctx, first))
	require.NoError(t, tasks.Create(ctx, second))

	got, err := tasks.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ExternalID)

	require.NoError(t, projects.Create(ctx, &domain.Project{Name: "Website"}))
	require.NoError(t, projects.Create(ctx, &domain.Project{Name: "Mobile"}))

	require.NoError(t, clients.Create(ctx, &domain.Client{Name: "Acme"}))
	require.NoError(t, clients.Create(ctx, &domain.Client{Name: "Globex"}))

	all, err := tasks.List(ctx, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProjectService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	clients := service.NewClientService(repository.NewSQLiteClientRepo(database))
	projects := service.NewProjectService(repository.NewSQLiteProjectRepo(database))

	client := &domain.Client{Name: "Acme"}
	require.NoError(t, clients.Create(ctx, client))

	project := &domain.Project{Name: "Website", ClientID: client.ID, HourlyRate: 150}
	require.NoError(t, projects.Create(ctx, project))
	assert.NotEmpty(t, project.ID)

	project.Name = "Website Redesign"
	require.NoError(t, projects.Update(ctx, project))

	got, err := projects.GetByID(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Website Redesign", got.Name)
	assert.Equal(t, client.ID, got.ClientID)

	require.NoError(t, projects.Delete(ctx, project.ID))
	_, err = projects.GetByID(ctx, project.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
