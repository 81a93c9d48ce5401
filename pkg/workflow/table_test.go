package workflow

import (
	"testing"

	"impes-be/internal/entity"
	"impes-be/internal/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func level(name string, order int) *entity.ApprovalLevel {
	return &entity.ApprovalLevel{Id: uuid.New(), LevelName: name, RoleId: uuid.New(), ApprovalOrder: order}
}

func status(name string, code entity.StatusCode, levelId *uuid.UUID) *entity.PaymentStatus {
	return &entity.PaymentStatus{Id: uuid.New(), StatusName: name, Code: code, ApprovalLevelId: levelId}
}

type fixture struct {
	levels   []*entity.ApprovalLevel
	statuses map[string]*entity.PaymentStatus
}

func (f fixture) all() []*entity.PaymentStatus {
	out := make([]*entity.PaymentStatus, 0, len(f.statuses))
	for _, s := range f.statuses {
		out = append(out, s)
	}
	return out
}

// threeLevels is coded on purpose: names alone would also bind.
func threeLevels() fixture {
	l1, l2, l3 := level("Engineer", 1), level("Finance", 2), level("Director", 3)
	return fixture{
		levels: []*entity.ApprovalLevel{l3, l1, l2},
		statuses: map[string]*entity.PaymentStatus{
			"submitted": status("Submitted", entity.StatusCodeSubmitted, nil),
			"l2":        status("Awaiting Finance Review", entity.StatusCodeAwaitingReview, &l2.Id),
			"l3":        status("Awaiting Director Review", entity.StatusCodeAwaitingReview, &l3.Id),
			"approved":  status("Approved for Payment", entity.StatusCodeApprovedForPayment, nil),
			"rejected":  status("Rejected", entity.StatusCodeRejected, nil),
			"returned":  status("Returned for Correction", entity.StatusCodeReturnedForCorrection, nil),
			"paid":      status("Paid", entity.StatusCodePaid, nil),
		},
	}
}

func TestCompile_CleanRegistryHasNoIssues(t *testing.T) {
	f := threeLevels()
	table, issues := Compile(f.levels, f.all())

	assert.Empty(t, issues)
	require.Len(t, table.Levels(), 3)
	assert.Equal(t, "Engineer", table.Levels()[0].LevelName)
	assert.Len(t, table.Transitions(), 12)
}

func TestNext_ApproveWalksLevelsInOrder(t *testing.T) {
	f := threeLevels()
	table, _ := Compile(f.levels, f.all())
	levels := table.Levels()

	statusId, levelId, err := table.Initial()
	require.NoError(t, err)
	assert.Equal(t, f.statuses["submitted"].Id, statusId)
	assert.Equal(t, levels[0].Id, levelId)

	current := &levelId
	want := []struct {
		status string
		level  *uuid.UUID
	}{
		{"Awaiting Finance Review", &levels[1].Id},
		{"Awaiting Director Review", &levels[2].Id},
		{"Approved for Payment", nil},
	}
	for _, w := range want {
		tr, err := table.Next(statusId, current, ActionApprove)
		require.NoError(t, err)
		assert.Equal(t, w.status, tr.NextStatusName)
		assert.Equal(t, w.level, tr.NextLevelId)
		statusId, current = *tr.NextStatusId, tr.NextLevelId
	}

	_, err = table.Next(statusId, current, ActionApprove)
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
}

func TestNext_SideBranches(t *testing.T) {
	f := threeLevels()
	table, _ := Compile(f.levels, f.all())
	l2 := table.Levels()[1].Id
	reviewing := f.statuses["l2"].Id

	tests := []struct {
		name       string
		status     uuid.UUID
		action     Action
		wantStatus string
		wantLevel  *uuid.UUID
		wantKind   apperr.Kind
	}{
		{"reject ends the chain", reviewing, ActionReject, "Rejected", nil, ""},
		{"return stays at level", reviewing, ActionReturn, "Returned for Correction", &l2, ""},
		{"resubmit re-enters level", f.statuses["returned"].Id, ActionResubmit, "Awaiting Finance Review", &l2, ""},
		{"resubmit requires returned", reviewing, ActionResubmit, "", nil, apperr.KindInvalidTransition},
		{"returned waits for resubmit", f.statuses["returned"].Id, ActionApprove, "", nil, apperr.KindInvalidTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := table.Next(tt.status, &l2, tt.action)
			if tt.wantKind != "" {
				assert.True(t, apperr.Is(err, tt.wantKind), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, tr.NextStatusName)
			assert.Equal(t, tt.wantLevel, tr.NextLevelId)
		})
	}
}

func TestCompile_BindsLegacyNames(t *testing.T) {
	f := threeLevels()
	for _, s := range f.statuses {
		s.Code = entity.StatusCodeNone
		s.ApprovalLevelId = nil
	}
	table, issues := Compile(f.levels, f.all())

	assert.Empty(t, issues)
	tr, err := table.Next(f.statuses["submitted"].Id, &table.Levels()[0].Id, ActionApprove)
	require.NoError(t, err)
	assert.Equal(t, f.statuses["l2"].Id, *tr.NextStatusId)
}

func TestCompile_ReportsMissingReviewStatus(t *testing.T) {
	f := threeLevels()
	delete(f.statuses, "l3")
	table, issues := Compile(f.levels, f.all())

	require.Len(t, issues, 1)
	assert.Equal(t, IssueMissingStatus, issues[0].Code)
	assert.Contains(t, issues[0].Message, "Awaiting Director Review")

	levels := table.Levels()
	_, err := table.Next(f.statuses["l2"].Id, &levels[1].Id, ActionApprove)
	assert.True(t, apperr.Is(err, apperr.KindConfiguration))

	// Other transitions from the same level still work.
	_, err = table.Next(f.statuses["l2"].Id, &levels[1].Id, ActionReject)
	assert.NoError(t, err)
}

func TestCompile_ReportsDuplicatesAndEmptyRegistry(t *testing.T) {
	f := threeLevels()
	f.levels = append(f.levels, level("Auditor", 3))
	f.statuses["paid2"] = status("Settled", entity.StatusCodePaid, nil)
	_, issues := Compile(f.levels, f.all())

	codes := make([]string, 0, len(issues))
	for _, i := range issues {
		codes = append(codes, i.Code)
	}
	assert.Contains(t, codes, IssueDuplicateOrder)
	assert.Contains(t, codes, IssueDuplicateStatus)

	empty, issues := Compile(nil, nil)
	assert.NotEmpty(t, issues)
	_, _, err := empty.Initial()
	assert.True(t, apperr.Is(err, apperr.KindConfiguration))
}

func TestNext_UnknownLevelIsConfigurationError(t *testing.T) {
	f := threeLevels()
	table, _ := Compile(f.levels, f.all())
	gone := uuid.New()

	_, err := table.Next(f.statuses["submitted"].Id, &gone, ActionApprove)
	assert.True(t, apperr.Is(err, apperr.KindConfiguration))
}

func TestParseAction(t *testing.T) {
	a, ok := ParseAction("Returned for Correction")
	assert.True(t, ok)
	assert.Equal(t, ActionReturn, a)

	a, ok = ParseAction(" approve ")
	assert.True(t, ok)
	assert.Equal(t, ActionApprove, a)

	_, ok = ParseAction("escalate")
	assert.False(t, ok)
}
