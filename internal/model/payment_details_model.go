package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentDetails struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestId     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	PaymentMode   string    `gorm:"type:varchar(60);not null"`
	BankName      string    `gorm:"type:varchar(150)"`
	AccountNumber string    `gorm:"type:varchar(100)"`
	TransactionId string    `gorm:"type:varchar(150)"`
	Notes         string    `gorm:"type:text"`
	PaidByUserId  uuid.UUID `gorm:"type:uuid;not null"`
	PaidAt        time.Time `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (PaymentDetails) TableName() string {
	return "payment_details"
}

func (m *PaymentDetails) BeforeCreate(tx *gorm.DB) error {
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}
	return nil
}
