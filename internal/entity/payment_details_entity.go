package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentDetails struct {
	Id            uuid.UUID
	RequestId     uuid.UUID
	PaymentMode   string
	BankName      string
	AccountNumber string
	TransactionId string
	Notes         string
	PaidByUserId  uuid.UUID
	PaidAt        time.Time
	UpdatedAt     *time.Time
}
