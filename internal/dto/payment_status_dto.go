package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePaymentStatusRequest struct {
	StatusName      string     `json:"statusName" validate:"required,max=150"`
	Description     string     `json:"description"`
	Code            string     `json:"code" validate:"omitempty,oneof=SUBMITTED AWAITING_REVIEW APPROVED_FOR_PAYMENT REJECTED RETURNED_FOR_CORRECTION PAID"`
	ApprovalLevelId *uuid.UUID `json:"approvalLevelId"`
}

type UpdatePaymentStatusRequest struct {
	StatusName      string     `json:"statusName" validate:"required,max=150"`
	Description     string     `json:"description"`
	Code            string     `json:"code" validate:"omitempty,oneof=SUBMITTED AWAITING_REVIEW APPROVED_FOR_PAYMENT REJECTED RETURNED_FOR_CORRECTION PAID"`
	ApprovalLevelId *uuid.UUID `json:"approvalLevelId"`
}

type PaymentStatusResponse struct {
	StatusId        uuid.UUID  `json:"statusId"`
	StatusName      string     `json:"statusName"`
	Description     string     `json:"description"`
	Code            string     `json:"code,omitempty"`
	ApprovalLevelId *uuid.UUID `json:"approvalLevelId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}
