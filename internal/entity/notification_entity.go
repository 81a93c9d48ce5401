package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentNotification is the realtime message pushed to users involved in
// a payment request. It is not persisted.
type PaymentNotification struct {
	Type       string     `json:"type"`
	RequestId  uuid.UUID  `json:"requestId"`
	ProjectId  uuid.UUID  `json:"projectId"`
	Action     string     `json:"action,omitempty"`
	Status     string     `json:"status"`
	ActionBy   *uuid.UUID `json:"actionBy,omitempty"`
	Message    string     `json:"message"`
	OccurredAt time.Time  `json:"occurredAt"`
}
