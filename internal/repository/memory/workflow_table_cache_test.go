package memory

import (
	"testing"
	"time"

	"impes-be/pkg/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowTableCache(t *testing.T) {
	c := NewWorkflowTableCache(50 * time.Millisecond)

	_, ok := c.Get()
	assert.False(t, ok)

	table, _ := workflow.Compile(nil, nil)
	c.Save(table)
	got, ok := c.Get()
	require.True(t, ok)
	assert.Same(t, table, got)

	c.Invalidate()
	_, ok = c.Get()
	assert.False(t, ok)

	c.Save(table)
	assert.Eventually(t, func() bool {
		_, ok := c.Get()
		return !ok
	}, time.Second, 10*time.Millisecond)
}
