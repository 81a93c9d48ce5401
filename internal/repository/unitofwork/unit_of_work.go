package unitofwork

import (
	"context"

	"impes-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ApprovalLevelRepository() contract.ApprovalLevelRepository
	PaymentStatusRepository() contract.PaymentStatusRepository
	PaymentRequestRepository() contract.PaymentRequestRepository
	ApprovalHistoryRepository() contract.ApprovalHistoryRepository
	PaymentDetailsRepository() contract.PaymentDetailsRepository

	ProjectAssignmentRepository() contract.ProjectAssignmentRepository
	UserRepository() contract.UserRepository
	RoleRepository() contract.RoleRepository
}
