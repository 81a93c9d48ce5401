package dto

import (
	"time"

	"github.com/google/uuid"
)

type RecordPaymentRequest struct {
	PaymentMode   string `json:"paymentMode" validate:"required,max=60"`
	BankName      string `json:"bankName" validate:"max=150"`
	AccountNumber string `json:"accountNumber" validate:"max=100"`
	TransactionId string `json:"transactionId" validate:"max=150"`
	Notes         string `json:"notes"`
}

type UpdatePaymentDetailsRequest struct {
	PaymentMode   string `json:"paymentMode" validate:"required,max=60"`
	BankName      string `json:"bankName" validate:"max=150"`
	AccountNumber string `json:"accountNumber" validate:"max=100"`
	TransactionId string `json:"transactionId" validate:"max=150"`
	Notes         string `json:"notes"`
}

type PaymentDetailsResponse struct {
	DetailId      uuid.UUID `json:"detailId"`
	RequestId     uuid.UUID `json:"requestId"`
	PaymentMode   string    `json:"paymentMode"`
	BankName      string    `json:"bankName"`
	AccountNumber string    `json:"accountNumber"`
	TransactionId string    `json:"transactionId"`
	Notes         string    `json:"notes"`
	PaidByUserId  uuid.UUID `json:"paidByUserId"`
	PaidAt        time.Time `json:"paidAt"`
	Status        string    `json:"status,omitempty"`
}
