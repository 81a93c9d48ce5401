// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"impes-be/internal/pkg/logger"
	"impes-be/internal/service"

	"github.com/robfig/cron/v3"
)

// RegistryAudit recompiles the approval workflow on a schedule and logs
// every binding issue it finds.
type RegistryAudit struct {
	registry service.IWorkflowRegistry
	schedule string
	logger   logger.ILogger

	scheduler *cron.Cron
	mu        sync.Mutex
}

func NewRegistryAudit(registry service.IWorkflowRegistry, schedule string, log logger.ILogger) *RegistryAudit {
	return &RegistryAudit{
		registry: registry,
		schedule: schedule,
		logger:   log,
	}
}

func (a *RegistryAudit) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.scheduler != nil {
		return nil
	}
	if _, err := cron.ParseStandard(a.schedule); err != nil {
		return fmt.Errorf("invalid registry audit schedule %q: %w", a.schedule, err)
	}

	a.scheduler = cron.New()
	if _, err := a.scheduler.AddFunc(a.schedule, func() { a.Run(context.Background()) }); err != nil {
		return err
	}
	a.scheduler.Start()

	a.logger.Info("REGISTRY", "Registry audit scheduled", map[string]interface{}{"schedule": a.schedule})
	return nil
}

func (a *RegistryAudit) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.scheduler == nil {
		return
	}
	<-a.scheduler.Stop().Done()
	a.scheduler = nil
}

// Run performs one audit and returns the number of issues found.
func (a *RegistryAudit) Run(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	table, err := a.registry.Recompile(ctx)
	if err != nil {
		a.logger.Error("REGISTRY", "Registry audit failed", map[string]interface{}{"error": err})
		return -1
	}

	issues := table.Issues()
	if len(issues) == 0 {
		a.logger.Debug("REGISTRY", "Registry audit clean", map[string]interface{}{
			"levels":      len(table.Levels()),
			"transitions": len(table.Transitions()),
		})
		return 0
	}

	for _, issue := range issues {
		a.logger.Warn("REGISTRY", "Approval workflow issue", map[string]interface{}{
			"code":     issue.Code,
			"message":  issue.Message,
			"level_id": issue.LevelId,
		})
	}
	return len(issues)
}
