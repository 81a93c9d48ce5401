package service_test

import (
	"context"
	"testing"

	"impes-be/internal/dto"
	"impes-be/internal/entity"
	"impes-be/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_ApproveWalksEveryLevel(t *testing.T) {
	h := newHarness(t)
	res := h.submit(t)

	want := []struct {
		status string
		level  *uuid.UUID
	}{
		{"Awaiting Finance Review", &h.wf.Level(2).Id},
		{"Awaiting Director Review", &h.wf.Level(3).Id},
		{"Approved for Payment", nil},
	}
	for i, w := range want {
		out, err := h.act(t, h.wf.Reviewer(i+1), res.RequestId, "Approve")
		require.NoError(t, err)
		assert.Equal(t, w.status, out.Status)
		assert.Equal(t, w.level, out.CurrentApprovalLevelId)
		assert.Equal(t, i+2, out.Version)
	}

	// Each action adds exactly one entry, in order.
	history, err := h.history.List(context.Background(), res.RequestId)
	require.NoError(t, err)
	require.Len(t, history, 4)
	for i, entry := range history {
		assert.Equal(t, i+1, entry.Sequence)
	}
	assert.Equal(t, "Approve", history[3].Action)
	assert.Equal(t, h.wf.Statuses[entity.StatusCodeApprovedForPayment].Id, *history[3].ToStatusId)
	assert.Nil(t, history[3].ToLevelId)

	_, err = h.act(t, h.wf.Reviewer(3), res.RequestId, "Approve")
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
	assert.EqualValues(t, 4, h.historyCount(t, res.RequestId))
}

func TestApply_ApproveRequiresLevelRole(t *testing.T) {
	h := newHarness(t)
	res := h.submit(t)

	_, err := h.act(t, h.wf.Reviewer(2), res.RequestId, "Approve")
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))

	current := h.load(t, res.RequestId)
	assert.Equal(t, 1, current.Version)
	assert.Equal(t, h.wf.Level(1).Id, *current.CurrentApprovalLevelId)
	assert.EqualValues(t, 1, h.historyCount(t, res.RequestId))
}

func TestApply_ReturnThenResubmit(t *testing.T) {
	h := newHarness(t)
	res := h.submit(t)
	h.approveTo(t, res.RequestId, 1)

	out, err := h.act(t, h.wf.Reviewer(2), res.RequestId, "Returned for Correction")
	require.NoError(t, err)
	assert.Equal(t, "Returned for Correction", out.Status)
	assert.Equal(t, h.wf.Level(2).Id, *out.CurrentApprovalLevelId)

	_, err = h.act(t, h.wf.Reviewer(2), res.RequestId, "Approve")
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	_, err = h.act(t, h.wf.Reviewer(2), res.RequestId, "Resubmit")
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))

	out, err = h.act(t, h.wf.SubmitterPrincipal(nil), res.RequestId, "Resubmit")
	require.NoError(t, err)
	assert.Equal(t, "Awaiting Finance Review", out.Status)
	assert.Equal(t, h.wf.Level(2).Id, *out.CurrentApprovalLevelId)

	out, err = h.act(t, h.wf.Reviewer(2), res.RequestId, "approve")
	require.NoError(t, err)
	assert.Equal(t, "Awaiting Director Review", out.Status)
}

func TestApply_AssignedContractorMayResubmit(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	projectId, contractorId := uuid.New(), uuid.New()

	res, err := h.requests.Submit(ctx, h.wf.SubmitterPrincipal(nil), h.submission(projectId))
	require.NoError(t, err)
	_, err = h.act(t, h.wf.Reviewer(1), res.RequestId, "Return")
	require.NoError(t, err)

	other := h.wf.Reviewer(3)
	other.ContractorId = &contractorId
	_, err = h.act(t, other, res.RequestId, "Resubmit")
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))

	_, err = h.requests.AssignContractor(ctx, projectId, contractorId)
	require.NoError(t, err)
	out, err := h.act(t, other, res.RequestId, "Resubmit")
	require.NoError(t, err)
	assert.Equal(t, "Submitted", out.Status)
}

func TestApply_RejectIsTerminal(t *testing.T) {
	h := newHarness(t)
	res := h.submit(t)

	out, err := h.act(t, h.wf.Reviewer(1), res.RequestId, "Reject")
	require.NoError(t, err)
	assert.Equal(t, "Rejected", out.Status)
	assert.Nil(t, out.CurrentApprovalLevelId)

	for _, action := range []string{"Approve", "Reject", "Returned for Correction", "Resubmit"} {
		_, err := h.act(t, h.wf.Reviewer(1), res.RequestId, action)
		assert.True(t, apperr.Is(err, apperr.KindInvalidTransition), "%s: %v", action, err)
	}
	assert.EqualValues(t, 2, h.historyCount(t, res.RequestId))
}

func TestApply_Validation(t *testing.T) {
	h := newHarness(t)
	res := h.submit(t)

	_, err := h.act(t, h.wf.Reviewer(1), res.RequestId, "escalate")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = h.act(t, h.wf.Reviewer(1), uuid.New(), "Approve")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	ghost := uuid.New()
	_, err = h.approvals.Apply(context.Background(), h.wf.Reviewer(1), res.RequestId, &dto.PaymentActionRequest{
		Action:           "Approve",
		AssignedToUserId: &ghost,
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Equal(t, 1, h.load(t, res.RequestId).Version)
}

func TestApply_RecordsAssignee(t *testing.T) {
	h := newHarness(t)
	res := h.submit(t)
	assignee := h.wf.Reviewers[1].Id

	_, err := h.approvals.Apply(context.Background(), h.wf.Reviewer(1), res.RequestId, &dto.PaymentActionRequest{
		Action:           "Approve",
		Notes:            "looks good",
		AssignedToUserId: &assignee,
	})
	require.NoError(t, err)

	history, err := h.history.List(context.Background(), res.RequestId)
	require.NoError(t, err)
	last := history[len(history)-1]
	assert.Equal(t, &assignee, last.AssignedToUserId)
	assert.Equal(t, "Finance", last.AssignedToName)
	assert.Equal(t, "looks good", last.Notes)
	assert.Contains(t, h.publisher.Events(), "PAYMENT_REQUEST_ACTIONED:Approve")
}

func TestRecordItemApproval(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res := h.submit(t)

	detail, err := h.requests.GetDetailed(ctx, h.wf.Reviewer(1, entity.PrivilegePaymentRequestReadAll), res.RequestId)
	require.NoError(t, err)
	milestoneId := detail.Milestones[0].Id

	out, err := h.approvals.RecordItemApproval(ctx, h.wf.Reviewer(1), res.RequestId, milestoneId, &dto.ItemApprovalRequest{Decision: "Verified"})
	require.NoError(t, err)
	assert.Equal(t, h.wf.Level(1).Id, out.ApprovalLevelId)

	_, err = h.approvals.RecordItemApproval(ctx, h.wf.Reviewer(2), res.RequestId, milestoneId, &dto.ItemApprovalRequest{Decision: "Disputed"})
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))

	_, err = h.approvals.RecordItemApproval(ctx, h.wf.Reviewer(1), res.RequestId, uuid.New(), &dto.ItemApprovalRequest{Decision: "Verified"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	detail, err = h.requests.GetDetailed(ctx, h.wf.Reviewer(1, entity.PrivilegePaymentRequestReadAll), res.RequestId)
	require.NoError(t, err)
	assert.Len(t, detail.ItemApprovals, 1)
	assert.Equal(t, 1, detail.Version)
}
