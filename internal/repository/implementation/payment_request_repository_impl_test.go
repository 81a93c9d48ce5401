package implementation_test

import (
	"context"
	"testing"

	"impes-be/internal/entity"
	"impes-be/internal/repository/implementation"
	"impes-be/internal/repository/specification"
	"impes-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T, statusId, levelId uuid.UUID) *entity.PaymentRequest {
	t.Helper()
	return &entity.PaymentRequest{
		ProjectId:              uuid.New(),
		ContractorId:           uuid.New(),
		Amount:                 5000,
		Description:            "Mobilization",
		UserId:                 uuid.New(),
		PaymentStatusId:        statusId,
		CurrentApprovalLevelId: &levelId,
	}
}

func TestCompareAndSwapState_RejectsStaleVersion(t *testing.T) {
	db := testutil.NewDB(t)
	repo := implementation.NewPaymentRequestRepository(db)
	ctx := context.Background()

	statusA, statusB, level := uuid.New(), uuid.New(), uuid.New()
	req := newRequest(t, statusA, level)
	require.NoError(t, repo.Create(ctx, req))
	assert.Equal(t, 1, req.Version)

	stale := *req

	ok, err := repo.CompareAndSwapState(ctx, req, statusB, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, req.Version)
	assert.Nil(t, req.CurrentApprovalLevelId)

	ok, err = repo.CompareAndSwapState(ctx, &stale, statusB, &level)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, stale.Version, "failed swap leaves the caller's copy untouched")

	stored, err := repo.FindOne(ctx, specification.ByID{ID: req.Id})
	require.NoError(t, err)
	assert.Equal(t, statusB, stored.PaymentStatusId)
	assert.Nil(t, stored.CurrentApprovalLevelId)
	assert.Equal(t, 2, stored.Version)
}

func TestVoid_ExcludesFromReads(t *testing.T) {
	db := testutil.NewDB(t)
	repo := implementation.NewPaymentRequestRepository(db)
	ctx := context.Background()

	req := newRequest(t, uuid.New(), uuid.New())
	require.NoError(t, repo.Create(ctx, req))

	ok, err := repo.Void(ctx, req)
	require.NoError(t, err)
	require.True(t, ok)

	found, err := repo.FindOne(ctx, specification.ByID{ID: req.Id})
	require.NoError(t, err)
	assert.Nil(t, found)

	n, err := repo.Count(ctx, specification.ByProjectID{ProjectID: req.ProjectId})
	require.NoError(t, err)
	assert.Zero(t, n)

	// A voided row never matches the guard again.
	ok, err = repo.CompareAndSwapState(ctx, req, uuid.New(), nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProjectAssignment_AssignIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := implementation.NewProjectAssignmentRepository(db)
	ctx := context.Background()
	projectId, contractorId := uuid.New(), uuid.New()

	first, err := repo.Assign(ctx, projectId, contractorId)
	require.NoError(t, err)
	second, err := repo.Assign(ctx, projectId, contractorId)
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)

	assigned, err := repo.IsAssigned(ctx, projectId, contractorId)
	require.NoError(t, err)
	assert.True(t, assigned)

	removed, err := repo.Unassign(ctx, projectId, contractorId)
	require.NoError(t, err)
	assert.True(t, removed)

	assigned, err = repo.IsAssigned(ctx, projectId, contractorId)
	require.NoError(t, err)
	assert.False(t, assigned)

	again, err := repo.Assign(ctx, projectId, contractorId)
	require.NoError(t, err)
	assert.False(t, again.Voided)

	list, err := repo.FindByProject(ctx, projectId)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
