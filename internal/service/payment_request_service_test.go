package service_test

import (
	"context"
	"errors"
	"testing"

	"impes-be/internal/dto"
	"impes-be/internal/entity"
	"impes-be/internal/model"
	"impes-be/internal/pkg/apperr"
	"impes-be/internal/repository/unitofwork"
	"impes-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSubmit_StartsAtFirstLevel(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	res, err := h.requests.Submit(ctx, h.wf.SubmitterPrincipal(nil), h.submission(uuid.New()))
	require.NoError(t, err)

	assert.Equal(t, "Submitted", res.StatusName)
	assert.Equal(t, h.wf.Statuses[entity.StatusCodeSubmitted].Id, res.PaymentStatusId)
	require.NotNil(t, res.CurrentApprovalLevelId)
	assert.Equal(t, h.wf.Level(1).Id, *res.CurrentApprovalLevelId)

	detail, err := h.requests.GetDetailed(ctx, h.wf.Reviewer(1, entity.PrivilegePaymentRequestReadAll), res.RequestId)
	require.NoError(t, err)
	assert.Len(t, detail.Milestones, 2)
	assert.Len(t, detail.Documents, 1)
	assert.Len(t, detail.InspectionTeam, 1)
	assert.Equal(t, "Casey Builder", detail.SubmitterName)
	assert.Equal(t, "Contractor", detail.SubmitterRoleName)
	assert.Equal(t, 1, detail.Version)
	require.NotNil(t, detail.CurrentLevel)
	assert.Equal(t, "Engineer", detail.CurrentLevel.LevelName)

	history, err := h.history.List(ctx, res.RequestId)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.HistoryActionSubmitted, history[0].Action)

	assert.Equal(t, []string{"PAYMENT_REQUEST_SUBMITTED"}, h.publisher.Events())
}

func TestSubmit_RollsBackWhenAnyInsertFails(t *testing.T) {
	h := newHarness(t)

	err := h.db.Callback().Create().Before("gorm:create").Register("test:fail_inspection_team", func(tx *gorm.DB) {
		if tx.Statement.Table == "payment_request_inspection_team" {
			_ = tx.AddError(errors.New("simulated write failure"))
		}
	})
	require.NoError(t, err)

	_, err = h.requests.Submit(context.Background(), h.wf.SubmitterPrincipal(nil), h.submission(uuid.New()))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindSubmission))

	for _, m := range []interface{}{
		&model.PaymentRequest{},
		&model.PaymentRequestMilestone{},
		&model.PaymentRequestDocument{},
		&model.PaymentRequestInspectionMember{},
		&model.PaymentApprovalHistory{},
	} {
		var n int64
		require.NoError(t, h.db.Model(m).Count(&n).Error)
		assert.Zero(t, n, "%T rows left behind", m)
	}
	assert.Empty(t, h.publisher.Events())
}

func TestSubmit_EmptyRegistryIsConfigurationError(t *testing.T) {
	db := testutil.NewDB(t)
	h := newHarnessWith(t, db, unitofwork.NewRepositoryFactory(db))
	principal := &entity.Principal{UserId: uuid.New()}

	_, err := h.requests.Submit(context.Background(), principal, h.submission(uuid.New()))
	assert.True(t, apperr.Is(err, apperr.KindConfiguration), "got %v", err)

	var n int64
	require.NoError(t, db.Model(&model.PaymentRequest{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSubmit_RequiresActivities(t *testing.T) {
	h := newHarness(t)
	req := h.submission(uuid.New())
	req.Activities = nil

	_, err := h.requests.Submit(context.Background(), h.wf.SubmitterPrincipal(nil), req)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestRead_RequiresGlobalPrivilegeOrAssignment(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	projectId, contractorId := uuid.New(), uuid.New()

	res, err := h.requests.Submit(ctx, h.wf.SubmitterPrincipal(nil), h.submission(projectId))
	require.NoError(t, err)

	outsider := h.wf.SubmitterPrincipal(&contractorId, entity.PrivilegePaymentRequestRead)

	_, err = h.requests.GetDetailed(ctx, outsider, res.RequestId)
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))
	_, err = h.requests.ListForProject(ctx, outsider, projectId)
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))
	_, _, err = h.requests.ListAll(ctx, outsider, &dto.ListPaymentRequestsQuery{Page: 1, Limit: 10})
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))

	_, err = h.requests.AssignContractor(ctx, projectId, contractorId)
	require.NoError(t, err)

	detail, err := h.requests.GetDetailed(ctx, outsider, res.RequestId)
	require.NoError(t, err)
	assert.Equal(t, res.RequestId, detail.RequestId)

	list, err := h.requests.ListForProject(ctx, outsider, projectId)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, h.requests.UnassignContractor(ctx, projectId, contractorId))
	_, err = h.requests.GetDetailed(ctx, outsider, res.RequestId)
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))

	all, total, err := h.requests.ListAll(ctx, h.wf.Reviewer(2, entity.PrivilegePaymentRequestReadAll), &dto.ListPaymentRequestsQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, all, 1)
}

func TestVoid_HidesRequestFromReads(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	res := h.submit(t)
	admin := h.wf.Reviewer(1, entity.PrivilegePaymentRequestReadAll, entity.PrivilegePaymentRequestDelete)

	require.NoError(t, h.requests.Void(ctx, admin, res.RequestId))

	_, err := h.requests.GetDetailed(ctx, admin, res.RequestId)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = h.act(t, h.wf.Reviewer(1), res.RequestId, "Approve")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	err = h.requests.Void(ctx, admin, res.RequestId)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
