package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByProjectID struct {
	ProjectID uuid.UUID
}

func (s ByProjectID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ?", s.ProjectID)
}

// ByRequestID matches child rows of a payment request.
type ByRequestID struct {
	RequestID uuid.UUID
}

func (s ByRequestID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("request_id = ?", s.RequestID)
}

type ByPaymentStatusID struct {
	StatusID uuid.UUID
}

func (s ByPaymentStatusID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("payment_status_id = ?", s.StatusID)
}

type AtApprovalLevel struct {
	LevelID uuid.UUID
}

func (s AtApprovalLevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("current_approval_level_id = ?", s.LevelID)
}

type ByStatusName struct {
	Name string
}

func (s ByStatusName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status_name = ?", s.Name)
}

type BoundToLevel struct {
	LevelID uuid.UUID
}

func (s BoundToLevel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("approval_level_id = ?", s.LevelID)
}

type ByApprovalOrder struct {
	Order int
}

func (s ByApprovalOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("approval_order = ?", s.Order)
}

type ProjectContractor struct {
	ProjectID    uuid.UUID
	ContractorID uuid.UUID
}

func (s ProjectContractor) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("project_id = ? AND contractor_id = ?", s.ProjectID, s.ContractorID)
}
