package dto

import (
	"time"

	"github.com/google/uuid"
)

type DocumentInput struct {
	DocumentType string `json:"documentType" validate:"max=100"`
	DocumentPath string `json:"documentPath" validate:"required"`
	Description  string `json:"description"`
}

type InspectionMemberInput struct {
	StaffId uuid.UUID `json:"staffId" validate:"required"`
	Name    string    `json:"name" validate:"max=255"`
	Role    string    `json:"role" validate:"max=100"`
}

type SubmitPaymentRequest struct {
	ProjectId      uuid.UUID               `json:"projectId" validate:"required"`
	ContractorId   uuid.UUID               `json:"contractorId" validate:"required"`
	Amount         float64                 `json:"amount" validate:"required,gt=0"`
	Description    string                  `json:"description" validate:"required"`
	Activities     []uuid.UUID             `json:"activities" validate:"required,min=1"`
	Documents      []DocumentInput         `json:"documents" validate:"dive"`
	InspectionTeam []InspectionMemberInput `json:"inspectionTeam" validate:"dive"`
}

type SubmitPaymentResponse struct {
	RequestId              uuid.UUID  `json:"requestId"`
	PaymentStatusId        uuid.UUID  `json:"paymentStatusId"`
	StatusName             string     `json:"statusName"`
	CurrentApprovalLevelId *uuid.UUID `json:"currentApprovalLevelId"`
}

type PaymentActionRequest struct {
	Action           string     `json:"action" validate:"required"`
	Notes            string     `json:"notes"`
	AssignedToUserId *uuid.UUID `json:"assignedToUserId"`
}

type PaymentActionResponse struct {
	RequestId              uuid.UUID  `json:"requestId"`
	Action                 string     `json:"action"`
	Status                 string     `json:"status"`
	PaymentStatusId        uuid.UUID  `json:"paymentStatusId"`
	CurrentApprovalLevelId *uuid.UUID `json:"currentApprovalLevelId"`
	Version                int        `json:"version"`
}

type ItemApprovalRequest struct {
	Decision string `json:"decision" validate:"required,oneof=Verified Disputed"`
	Notes    string `json:"notes"`
}

type ItemApprovalResponse struct {
	Id               uuid.UUID `json:"id"`
	MilestoneId      uuid.UUID `json:"milestoneId"`
	ApprovalLevelId  uuid.UUID `json:"approvalLevelId"`
	Decision         string    `json:"decision"`
	Notes            string    `json:"notes"`
	ApprovedByUserId uuid.UUID `json:"approvedByUserId"`
	CreatedAt        time.Time `json:"createdAt"`
}

type ListPaymentRequestsQuery struct {
	Page     int        `query:"page"`
	Limit    int        `query:"limit"`
	StatusId *uuid.UUID `query:"statusId"`
}

type PaymentRequestSummaryResponse struct {
	RequestId              uuid.UUID  `json:"requestId"`
	ProjectId              uuid.UUID  `json:"projectId"`
	ContractorId           uuid.UUID  `json:"contractorId"`
	Amount                 float64    `json:"amount"`
	Description            string     `json:"description"`
	UserId                 uuid.UUID  `json:"userId"`
	PaymentStatusId        uuid.UUID  `json:"paymentStatusId"`
	StatusName             string     `json:"statusName"`
	CurrentApprovalLevelId *uuid.UUID `json:"currentApprovalLevelId"`
	CurrentLevelName       *string    `json:"currentLevelName"`
	Version                int        `json:"version"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

type MilestoneResponse struct {
	Id         uuid.UUID `json:"id"`
	ActivityId uuid.UUID `json:"activityId"`
	Status     string    `json:"status"`
	UserId     uuid.UUID `json:"userId"`
}

type DocumentResponse struct {
	Id           uuid.UUID `json:"id"`
	DocumentType string    `json:"documentType"`
	DocumentPath string    `json:"documentPath"`
	Description  string    `json:"description"`
	UserId       uuid.UUID `json:"userId"`
}

type InspectionMemberResponse struct {
	Id      uuid.UUID `json:"id"`
	StaffId uuid.UUID `json:"staffId"`
	Name    string    `json:"name"`
	Role    string    `json:"role"`
}

type PaymentRequestDetailResponse struct {
	PaymentRequestSummaryResponse
	SubmitterName     string                     `json:"submitterName"`
	SubmitterRoleName string                     `json:"submitterRoleName"`
	CurrentLevel      *ApprovalLevelResponse     `json:"currentLevel"`
	Milestones        []MilestoneResponse        `json:"milestones"`
	Documents         []DocumentResponse         `json:"documents"`
	InspectionTeam    []InspectionMemberResponse `json:"inspectionTeam"`
	ItemApprovals     []ItemApprovalResponse     `json:"itemApprovals"`
	PaymentDetails    *PaymentDetailsResponse    `json:"paymentDetails"`
}

type HistoryEntryResponse struct {
	HistoryId        uuid.UUID  `json:"historyId"`
	RequestId        uuid.UUID  `json:"requestId"`
	Sequence         int        `json:"sequence"`
	Action           string     `json:"action"`
	ActionByUserId   uuid.UUID  `json:"actionByUserId"`
	ActionByName     string     `json:"actionByName"`
	AssignedToUserId *uuid.UUID `json:"assignedToUserId"`
	AssignedToName   string     `json:"assignedToName,omitempty"`
	Notes            string     `json:"notes"`
	ActionDate       time.Time  `json:"actionDate"`
	FromStatusId     *uuid.UUID `json:"fromStatusId,omitempty"`
	ToStatusId       *uuid.UUID `json:"toStatusId,omitempty"`
	FromLevelId      *uuid.UUID `json:"fromLevelId,omitempty"`
	ToLevelId        *uuid.UUID `json:"toLevelId,omitempty"`
}
