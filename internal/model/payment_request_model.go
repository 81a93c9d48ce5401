package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRequest struct {
	Id                     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProjectId              uuid.UUID  `gorm:"type:uuid;not null;index"`
	ContractorId           uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount                 float64    `gorm:"type:decimal(15,2);not null"`
	Description            string     `gorm:"type:text;not null"`
	UserId                 uuid.UUID  `gorm:"type:uuid;not null;index"`
	PaymentStatusId        uuid.UUID  `gorm:"type:uuid;not null;index"`
	CurrentApprovalLevelId *uuid.UUID `gorm:"type:uuid;index"`
	Voided                 bool       `gorm:"not null;default:false;index"`
	Version                int        `gorm:"not null;default:1"`
	CreatedAt              time.Time  `gorm:"autoCreateTime"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime"`
}

func (PaymentRequest) TableName() string {
	return "payment_requests"
}

func (m *PaymentRequest) BeforeCreate(tx *gorm.DB) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}

// PaymentRequestRow is a request joined with status and level names.
type PaymentRequestRow struct {
	PaymentRequest
	StatusName       string
	StatusCode       string
	CurrentLevelName *string
}

type PaymentRequestMilestone struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestId  uuid.UUID `gorm:"type:uuid;not null;index"`
	ActivityId uuid.UUID `gorm:"type:uuid;not null"`
	Status     string    `gorm:"type:varchar(50);not null"`
	UserId     uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (PaymentRequestMilestone) TableName() string {
	return "payment_request_milestones"
}

func (m *PaymentRequestMilestone) BeforeCreate(tx *gorm.DB) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	return nil
}

type PaymentRequestDocument struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestId    uuid.UUID `gorm:"type:uuid;not null;index"`
	DocumentType string    `gorm:"type:varchar(100)"`
	DocumentPath string    `gorm:"type:text;not null"`
	Description  string    `gorm:"type:text"`
	UserId       uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (PaymentRequestDocument) TableName() string {
	return "payment_request_documents"
}

func (m *PaymentRequestDocument) BeforeCreate(tx *gorm.DB) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	return nil
}

type PaymentRequestInspectionMember struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestId uuid.UUID `gorm:"type:uuid;not null;index"`
	StaffId   uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"type:varchar(255)"`
	Role      string    `gorm:"type:varchar(100)"`
}

func (PaymentRequestInspectionMember) TableName() string {
	return "payment_request_inspection_team"
}

func (m *PaymentRequestInspectionMember) BeforeCreate(tx *gorm.DB) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	return nil
}

type PaymentRequestItemApproval struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestId        uuid.UUID `gorm:"type:uuid;not null;index"`
	MilestoneId      uuid.UUID `gorm:"type:uuid;not null;index"`
	ApprovalLevelId  uuid.UUID `gorm:"type:uuid;not null"`
	Decision         string    `gorm:"type:varchar(30);not null"`
	Notes            string    `gorm:"type:text"`
	ApprovedByUserId uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (PaymentRequestItemApproval) TableName() string {
	return "payment_request_item_approvals"
}

func (m *PaymentRequestItemApproval) BeforeCreate(tx *gorm.DB) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	return nil
}
