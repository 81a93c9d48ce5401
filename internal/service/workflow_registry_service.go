package service

import (
	"context"

	"impes-be/internal/pkg/apperr"
	"impes-be/internal/pkg/logger"
	"impes-be/internal/repository/memory"
	"impes-be/internal/repository/unitofwork"
	"impes-be/pkg/workflow"

	"github.com/redis/go-redis/v9"
)

// RegistryChangedChannel carries invalidations between instances.
const RegistryChangedChannel = "approval_registry_changed"

type IWorkflowRegistry interface {
	// Table returns the compiled transition table, compiling it on a cache
	// miss. It never runs inside a caller's transaction.
	Table(ctx context.Context) (*workflow.Table, error)
	// Recompile bypasses the cache and stores a fresh table.
	Recompile(ctx context.Context) (*workflow.Table, error)
	Invalidate(ctx context.Context)
	// Listen drops the local table whenever another instance writes the
	// registry. It returns when ctx is done.
	Listen(ctx context.Context)
}

type workflowRegistry struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.WorkflowTableCache
	rdb        *redis.Client
	logger     logger.ILogger
}

func NewWorkflowRegistry(
	uowFactory unitofwork.RepositoryFactory,
	cache *memory.WorkflowTableCache,
	rdb *redis.Client,
	log logger.ILogger,
) IWorkflowRegistry {
	return &workflowRegistry{
		uowFactory: uowFactory,
		cache:      cache,
		rdb:        rdb,
		logger:     log,
	}
}

func (r *workflowRegistry) Table(ctx context.Context) (*workflow.Table, error) {
	if table, ok := r.cache.Get(); ok {
		return table, nil
	}
	return r.Recompile(ctx)
}

func (r *workflowRegistry) Recompile(ctx context.Context) (*workflow.Table, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)

	levels, err := uow.ApprovalLevelRepository().FindAll(ctx)
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to load approval levels")
	}
	statuses, err := uow.PaymentStatusRepository().FindAll(ctx)
	if err != nil {
		return nil, apperr.FromStorage(err, "failed to load payment statuses")
	}

	table, issues := workflow.Compile(levels, statuses)
	if len(issues) > 0 {
		r.logger.Warn("REGISTRY", "Approval workflow compiled with issues", map[string]interface{}{
			"issues": issues,
		})
	}

	r.cache.Save(table)
	return table, nil
}

func (r *workflowRegistry) Invalidate(ctx context.Context) {
	r.cache.Invalidate()

	if r.rdb == nil {
		return
	}
	if err := r.rdb.Publish(ctx, RegistryChangedChannel, "invalidate").Err(); err != nil {
		r.logger.Warn("REGISTRY", "Failed to broadcast registry invalidation", map[string]interface{}{
			"error": err,
		})
	}
}

func (r *workflowRegistry) Listen(ctx context.Context) {
	if r.rdb == nil {
		return
	}

	pubsub := r.rdb.Subscribe(ctx, RegistryChangedChannel)
	defer pubsub.Close()

	r.logger.Info("REGISTRY", "Listening for registry invalidations", map[string]interface{}{
		"channel": RegistryChangedChannel,
	})

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			r.cache.Invalidate()
		}
	}
}
