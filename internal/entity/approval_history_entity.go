package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	HistoryActionSubmitted       = "Submitted"
	HistoryActionPaymentRecorded = "Payment Recorded"
	HistoryActionVoided          = "Voided"
)

type HistoryTransition struct {
	FromStatusId *uuid.UUID `json:"fromStatusId,omitempty"`
	ToStatusId   *uuid.UUID `json:"toStatusId,omitempty"`
	FromLevelId  *uuid.UUID `json:"fromLevelId,omitempty"`
	ToLevelId    *uuid.UUID `json:"toLevelId,omitempty"`
}

// ApprovalHistory is append-only. ActionByName and AssignedToName are only
// populated on reads.
type ApprovalHistory struct {
	Id               uuid.UUID
	RequestId        uuid.UUID
	Sequence         int
	Action           string
	ActionByUserId   uuid.UUID
	AssignedToUserId *uuid.UUID
	Notes            string
	ActionDate       time.Time
	Transition       HistoryTransition
	ActionByName     string
	AssignedToName   string
}
