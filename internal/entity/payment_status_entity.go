package entity

import (
	"time"

	"github.com/google/uuid"
)

// StatusCode binds a status row to its role in the approval chain. Empty
// means the status is informational or bound by its conventional name.
type StatusCode string

const (
	StatusCodeNone                  StatusCode = ""
	StatusCodeSubmitted             StatusCode = "SUBMITTED"
	StatusCodeAwaitingReview        StatusCode = "AWAITING_REVIEW"
	StatusCodeApprovedForPayment    StatusCode = "APPROVED_FOR_PAYMENT"
	StatusCodeRejected              StatusCode = "REJECTED"
	StatusCodeReturnedForCorrection StatusCode = "RETURNED_FOR_CORRECTION"
	StatusCodePaid                  StatusCode = "PAID"
)

func (c StatusCode) Valid() bool {
	switch c {
	case StatusCodeNone, StatusCodeSubmitted, StatusCodeAwaitingReview, StatusCodeApprovedForPayment,
		StatusCodeRejected, StatusCodeReturnedForCorrection, StatusCodePaid:
		return true
	}
	return false
}

type PaymentStatus struct {
	Id              uuid.UUID
	StatusName      string
	Description     string
	Code            StatusCode
	ApprovalLevelId *uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
