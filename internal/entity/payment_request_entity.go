package entity

import (
	"time"

	"github.com/google/uuid"
)

const MilestoneStatusAccomplished = "accomplished"

type PaymentRequest struct {
	Id                     uuid.UUID
	ProjectId              uuid.UUID
	ContractorId           uuid.UUID
	Amount                 float64
	Description            string
	UserId                 uuid.UUID
	PaymentStatusId        uuid.UUID
	CurrentApprovalLevelId *uuid.UUID
	Voided                 bool
	Version                int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type PaymentRequestMilestone struct {
	Id         uuid.UUID
	RequestId  uuid.UUID
	ActivityId uuid.UUID
	Status     string
	UserId     uuid.UUID
	CreatedAt  time.Time
}

type PaymentRequestDocument struct {
	Id           uuid.UUID
	RequestId    uuid.UUID
	DocumentType string
	DocumentPath string
	Description  string
	UserId       uuid.UUID
	CreatedAt    time.Time
}

type InspectionMember struct {
	Id        uuid.UUID
	RequestId uuid.UUID
	StaffId   uuid.UUID
	Name      string
	Role      string
}

type ItemDecision string

const (
	ItemDecisionVerified ItemDecision = "Verified"
	ItemDecisionDisputed ItemDecision = "Disputed"
)

type ItemApproval struct {
	Id               uuid.UUID
	RequestId        uuid.UUID
	MilestoneId      uuid.UUID
	ApprovalLevelId  uuid.UUID
	Decision         ItemDecision
	Notes            string
	ApprovedByUserId uuid.UUID
	CreatedAt        time.Time
}

// PaymentRequestSummary is a request row joined with its display names.
type PaymentRequestSummary struct {
	PaymentRequest
	StatusName       string
	StatusCode       StatusCode
	CurrentLevelName *string
}

type PaymentRequestDetail struct {
	PaymentRequestSummary
	SubmitterName     string
	SubmitterRoleName string
	CurrentLevel      *ApprovalLevel
	Milestones        []*PaymentRequestMilestone
	Documents         []*PaymentRequestDocument
	InspectionTeam    []*InspectionMember
	ItemApprovals     []*ItemApproval
	PaymentDetails    *PaymentDetails
}
