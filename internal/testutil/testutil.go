// Package testutil builds an isolated sqlite database with the payment
// schema and a seeded three-level approval chain.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"impes-be/internal/entity"
	"impes-be/internal/model"
	"impes-be/internal/repository/unitofwork"
	"impes-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory database. A single connection keeps
// every statement, including open transactions, on the same database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=0", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// Workflow is the seeded registry: Engineer -> Finance -> Director.
type Workflow struct {
	Roles    []*entity.Role
	Levels   []*entity.ApprovalLevel
	Statuses map[entity.StatusCode]*entity.PaymentStatus
	// Review statuses keyed by approval order, starting at 2.
	Reviews   map[int]*entity.PaymentStatus
	Reviewers []*entity.User
	Submitter *entity.User
}

func (w *Workflow) Level(order int) *entity.ApprovalLevel {
	return w.Levels[order-1]
}

// Reviewer returns a principal holding the role of the given level.
func (w *Workflow) Reviewer(order int, privileges ...entity.Privilege) *entity.Principal {
	u := w.Reviewers[order-1]
	return Principal(u, w.Roles[order-1], privileges...)
}

func Principal(u *entity.User, role *entity.Role, privileges ...entity.Privilege) *entity.Principal {
	names := make([]string, 0, len(privileges))
	for _, p := range privileges {
		names = append(names, string(p))
	}
	return &entity.Principal{
		UserId:     u.Id,
		Username:   u.Username,
		RoleId:     role.Id,
		RoleName:   role.Name,
		Privileges: entity.NewPrivilegeSet(names...),
	}
}

func SeedWorkflow(t *testing.T, factory unitofwork.RepositoryFactory) *Workflow {
	t.Helper()
	ctx := context.Background()
	uow := factory.NewUnitOfWork(ctx)

	w := &Workflow{
		Statuses: map[entity.StatusCode]*entity.PaymentStatus{},
		Reviews:  map[int]*entity.PaymentStatus{},
	}

	names := []string{"Engineer", "Finance", "Director"}
	for i, name := range names {
		role := &entity.Role{Name: name + " Role"}
		require.NoError(t, uow.RoleRepository().Create(ctx, role))
		w.Roles = append(w.Roles, role)

		level := &entity.ApprovalLevel{LevelName: name, RoleId: role.Id, ApprovalOrder: i + 1}
		require.NoError(t, uow.ApprovalLevelRepository().Create(ctx, level))
		w.Levels = append(w.Levels, level)

		reviewer := &entity.User{Username: fmt.Sprintf("reviewer%d", i+1), FirstName: name, Email: fmt.Sprintf("reviewer%d@example.com", i+1), RoleId: role.Id}
		require.NoError(t, uow.UserRepository().Create(ctx, reviewer))
		w.Reviewers = append(w.Reviewers, reviewer)

		if i == 0 {
			continue
		}
		levelId := level.Id
		review := &entity.PaymentStatus{
			StatusName:      fmt.Sprintf("Awaiting %s Review", name),
			Code:            entity.StatusCodeAwaitingReview,
			ApprovalLevelId: &levelId,
		}
		require.NoError(t, uow.PaymentStatusRepository().Create(ctx, review))
		w.Reviews[i+1] = review
	}

	fixed := map[entity.StatusCode]string{
		entity.StatusCodeSubmitted:             "Submitted",
		entity.StatusCodeApprovedForPayment:    "Approved for Payment",
		entity.StatusCodeRejected:              "Rejected",
		entity.StatusCodeReturnedForCorrection: "Returned for Correction",
		entity.StatusCodePaid:                  "Paid",
	}
	for code, name := range fixed {
		status := &entity.PaymentStatus{StatusName: name, Code: code}
		require.NoError(t, uow.PaymentStatusRepository().Create(ctx, status))
		w.Statuses[code] = status
	}

	contractorRole := &entity.Role{Name: "Contractor"}
	require.NoError(t, uow.RoleRepository().Create(ctx, contractorRole))
	w.Submitter = &entity.User{Username: "contractor", FirstName: "Casey", LastName: "Builder", Email: "contractor@example.com", RoleId: contractorRole.Id}
	require.NoError(t, uow.UserRepository().Create(ctx, w.Submitter))
	w.Roles = append(w.Roles, contractorRole)

	return w
}

// SubmitterPrincipal is the contractor user acting for contractorId.
func (w *Workflow) SubmitterPrincipal(contractorId *uuid.UUID, privileges ...entity.Privilege) *entity.Principal {
	p := Principal(w.Submitter, w.Roles[len(w.Roles)-1], privileges...)
	p.ContractorId = contractorId
	return p
}
