package unitofwork

import (
	"context"
	"errors"

	"impes-be/internal/repository/contract"
	"impes-be/internal/repository/implementation"

	"gorm.io/gorm"
)

var (
	ErrTxAlreadyStarted = errors.New("transaction already started")
	ErrNoTransaction    = errors.New("no transaction in progress")
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

// getDB hands repositories the open transaction when there is one, so every
// accessor called between Begin and Commit shares it.
func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return ErrTxAlreadyStarted
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback is safe to defer after Commit; it then reports ErrNoTransaction
// and does nothing.
func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) ApprovalLevelRepository() contract.ApprovalLevelRepository {
	return implementation.NewApprovalLevelRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PaymentStatusRepository() contract.PaymentStatusRepository {
	return implementation.NewPaymentStatusRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PaymentRequestRepository() contract.PaymentRequestRepository {
	return implementation.NewPaymentRequestRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ApprovalHistoryRepository() contract.ApprovalHistoryRepository {
	return implementation.NewApprovalHistoryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PaymentDetailsRepository() contract.PaymentDetailsRepository {
	return implementation.NewPaymentDetailsRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ProjectAssignmentRepository() contract.ProjectAssignmentRepository {
	return implementation.NewProjectAssignmentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RoleRepository() contract.RoleRepository {
	return implementation.NewRoleRepository(u.getDB())
}
