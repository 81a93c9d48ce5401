package service_test

import (
	"context"
	"testing"

	"impes-be/internal/dto"
	"impes-be/internal/entity"
	"impes-be/internal/pkg/apperr"
	"impes-be/pkg/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_ReportsSeededChainAsHealthy(t *testing.T) {
	h := newHarness(t)

	wf, err := h.levels.Workflow(context.Background())
	require.NoError(t, err)
	assert.True(t, wf.Healthy)
	assert.Empty(t, wf.Issues)
	require.Len(t, wf.Levels, 3)
	assert.Equal(t, "Finance Role", wf.Levels[1].RoleName)
	assert.Len(t, wf.Transitions, 12)
}

func TestApprovalLevel_WritesRecompileTheTable(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// Warm the cache so a missing invalidation would show up.
	_, err := h.registry.Table(ctx)
	require.NoError(t, err)

	auditor, err := h.levels.Create(ctx, &dto.CreateApprovalLevelRequest{
		LevelName:     "Auditor",
		RoleId:        h.wf.Roles[0].Id,
		ApprovalOrder: 4,
	})
	require.NoError(t, err)

	wf, err := h.levels.Workflow(ctx)
	require.NoError(t, err)
	assert.False(t, wf.Healthy)
	require.Len(t, wf.Issues, 1)
	assert.Equal(t, workflow.IssueMissingStatus, wf.Issues[0].Code)

	// A request now walks to the Director level, then cannot leave it.
	res := h.submit(t)
	h.approveTo(t, res.RequestId, 2)
	_, err = h.act(t, h.wf.Reviewer(3), res.RequestId, "Approve")
	assert.True(t, apperr.Is(err, apperr.KindConfiguration), "got %v", err)

	levelId := auditor.LevelId
	_, err = h.statuses.Create(ctx, &dto.CreatePaymentStatusRequest{
		StatusName:      "Awaiting Auditor Review",
		Code:            string(entity.StatusCodeAwaitingReview),
		ApprovalLevelId: &levelId,
	})
	require.NoError(t, err)

	out, err := h.act(t, h.wf.Reviewer(3), res.RequestId, "Approve")
	require.NoError(t, err)
	assert.Equal(t, "Awaiting Auditor Review", out.Status)
}

func TestApprovalLevel_Validation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.levels.Create(ctx, &dto.CreateApprovalLevelRequest{LevelName: "Ghost", RoleId: uuid.New(), ApprovalOrder: 9})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = h.levels.Create(ctx, &dto.CreateApprovalLevelRequest{LevelName: "Clash", RoleId: h.wf.Roles[0].Id, ApprovalOrder: 2})
	assert.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)

	_, err = h.levels.Show(ctx, uuid.New())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestApprovalLevel_DeleteInUse(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.submit(t)

	err := h.levels.Delete(ctx, h.wf.Level(1).Id)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	err = h.levels.Delete(ctx, h.wf.Level(2).Id)
	assert.True(t, apperr.Is(err, apperr.KindConflict), "bound review status blocks delete")

	require.NoError(t, h.statuses.Delete(ctx, h.wf.Reviews[3].Id))
	require.NoError(t, h.levels.Delete(ctx, h.wf.Level(3).Id))

	all, err := h.levels.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestPaymentStatus_BindingRules(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	levelId := h.wf.Level(2).Id

	_, err := h.statuses.Create(ctx, &dto.CreatePaymentStatusRequest{StatusName: "On Hold", Code: "ON_HOLD"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = h.statuses.Create(ctx, &dto.CreatePaymentStatusRequest{StatusName: "Awaiting Nobody", Code: string(entity.StatusCodeAwaitingReview)})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = h.statuses.Create(ctx, &dto.CreatePaymentStatusRequest{StatusName: "Settled", Code: string(entity.StatusCodePaid), ApprovalLevelId: &levelId})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	note, err := h.statuses.Create(ctx, &dto.CreatePaymentStatusRequest{StatusName: "On Hold", Description: "informational"})
	require.NoError(t, err)

	wf, err := h.levels.Workflow(ctx)
	require.NoError(t, err)
	assert.True(t, wf.Healthy)

	res := h.submit(t)
	err = h.statuses.Delete(ctx, res.PaymentStatusId)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	require.NoError(t, h.statuses.Delete(ctx, note.StatusId))
}
