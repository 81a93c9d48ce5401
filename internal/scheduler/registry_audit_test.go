package scheduler_test

import (
	"context"
	"testing"
	"time"

	"impes-be/internal/entity"
	"impes-be/internal/pkg/logger"
	"impes-be/internal/repository/memory"
	"impes-be/internal/repository/unitofwork"
	"impes-be/internal/scheduler"
	"impes-be/internal/service"
	"impes-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAudit_CountsIssues(t *testing.T) {
	db := testutil.NewDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	registry := service.NewWorkflowRegistry(factory, memory.NewWorkflowTableCache(time.Minute), nil, logger.NewNopLogger())
	audit := scheduler.NewRegistryAudit(registry, "*/15 * * * *", logger.NewNopLogger())
	ctx := context.Background()

	// Empty registry: no levels plus the four chain-wide statuses.
	assert.Equal(t, 5, audit.Run(ctx))

	wf := testutil.SeedWorkflow(t, factory)
	assert.Equal(t, 0, audit.Run(ctx))

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.PaymentStatusRepository().Delete(ctx, wf.Statuses[entity.StatusCodePaid].Id))
	assert.Equal(t, 1, audit.Run(ctx))
}

func TestRegistryAudit_StartValidatesSchedule(t *testing.T) {
	db := testutil.NewDB(t)
	registry := service.NewWorkflowRegistry(unitofwork.NewRepositoryFactory(db), memory.NewWorkflowTableCache(time.Minute), nil, logger.NewNopLogger())

	bad := scheduler.NewRegistryAudit(registry, "every now and then", logger.NewNopLogger())
	assert.Error(t, bad.Start())

	good := scheduler.NewRegistryAudit(registry, "@every 1h", logger.NewNopLogger())
	require.NoError(t, good.Start())
	require.NoError(t, good.Start())
	good.Stop()
	good.Stop()
}
