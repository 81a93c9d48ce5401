package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type HistoryTransition struct {
	FromStatusId *uuid.UUID `json:"fromStatusId,omitempty"`
	ToStatusId   *uuid.UUID `json:"toStatusId,omitempty"`
	FromLevelId  *uuid.UUID `json:"fromLevelId,omitempty"`
	ToLevelId    *uuid.UUID `json:"toLevelId,omitempty"`
}

type PaymentApprovalHistory struct {
	Id               uuid.UUID                             `gorm:"type:uuid;primaryKey"`
	RequestId        uuid.UUID                             `gorm:"type:uuid;not null;uniqueIndex:idx_history_request_sequence"`
	Sequence         int                                   `gorm:"not null;uniqueIndex:idx_history_request_sequence"`
	Action           string                                `gorm:"type:varchar(60);not null"`
	ActionByUserId   uuid.UUID                             `gorm:"type:uuid;not null"`
	AssignedToUserId *uuid.UUID                            `gorm:"type:uuid"`
	Notes            string                                `gorm:"type:text"`
	ActionDate       time.Time                             `gorm:"not null;index"`
	Metadata         datatypes.JSONType[HistoryTransition] `gorm:"column:metadata"`
}

func (PaymentApprovalHistory) TableName() string {
	return "payment_approval_history"
}

func (m *PaymentApprovalHistory) BeforeCreate(tx *gorm.DB) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	return nil
}

type PaymentApprovalHistoryRow struct {
	PaymentApprovalHistory
	ActionByFirstName   *string
	ActionByLastName    *string
	ActionByUsername    *string
	AssignedToFirstName *string
	AssignedToLastName  *string
	AssignedToUsername  *string
}
