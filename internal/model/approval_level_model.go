package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApprovalLevel struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	LevelName     string    `gorm:"type:varchar(150);not null"`
	RoleId        uuid.UUID `gorm:"type:uuid;not null;index"`
	ApprovalOrder int       `gorm:"not null;uniqueIndex"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (ApprovalLevel) TableName() string {
	return "approval_levels"
}

func (m *ApprovalLevel) BeforeCreate(tx *gorm.DB) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	return nil
}

// ApprovalLevelWithRole is the read shape for level listings.
type ApprovalLevelWithRole struct {
	ApprovalLevel
	RoleName string
}
