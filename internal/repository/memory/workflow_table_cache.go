package memory

import (
	"time"

	"impes-be/pkg/workflow"

	"github.com/patrickmn/go-cache"
)

const workflowTableKey = "approval_workflow_table"

// WorkflowTableCache holds the compiled transition table between registry
// writes. Entries also expire after ttl so a missed invalidation heals.
type WorkflowTableCache struct {
	cache *cache.Cache
}

func NewWorkflowTableCache(ttl time.Duration) *WorkflowTableCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &WorkflowTableCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *WorkflowTableCache) Save(table *workflow.Table) {
	c.cache.Set(workflowTableKey, table, cache.DefaultExpiration)
}

func (c *WorkflowTableCache) Get() (*workflow.Table, bool) {
	if x, found := c.cache.Get(workflowTableKey); found {
		return x.(*workflow.Table), true
	}
	return nil, false
}

func (c *WorkflowTableCache) Invalidate() {
	c.cache.Delete(workflowTableKey)
}
