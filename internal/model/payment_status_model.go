package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StatusName      string     `gorm:"type:varchar(150);not null;uniqueIndex"`
	Description     string     `gorm:"type:text"`
	Code            string     `gorm:"type:varchar(40);index"`
	ApprovalLevelId *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime"`
}

func (PaymentStatus) TableName() string {
	return "payment_statuses"
}

func (m *PaymentStatus) BeforeCreate(tx *gorm.DB) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	return nil
}
