package service

import (
	"context"
	"time"

	"impes-be/internal/entity"
	"impes-be/internal/pkg/logger"
	"impes-be/pkg/events"

	"github.com/google/uuid"
)

const (
	EventPaymentRequestSubmitted = "PAYMENT_REQUEST_SUBMITTED"
	EventPaymentRequestActioned  = "PAYMENT_REQUEST_ACTIONED"
	EventPaymentRecorded         = "PAYMENT_RECORDED"
)

// IPaymentEventPublisher emits domain events after commit. Publishing is
// best effort: failures are logged and never returned.
type IPaymentEventPublisher interface {
	PublishSubmitted(ctx context.Context, request *entity.PaymentRequest, statusName string)
	PublishActioned(ctx context.Context, request *entity.PaymentRequest, action string, actionBy uuid.UUID, assignedTo *uuid.UUID, statusName string)
	PublishPaymentRecorded(ctx context.Context, request *entity.PaymentRequest, details *entity.PaymentDetails)
}

type paymentEventPublisher struct {
	publisher events.Publisher
	logger    logger.ILogger
}

func NewPaymentEventPublisher(publisher events.Publisher, log logger.ILogger) IPaymentEventPublisher {
	return &paymentEventPublisher{
		publisher: publisher,
		logger:    log,
	}
}

func requestPayload(request *entity.PaymentRequest) map[string]interface{} {
	payload := map[string]interface{}{
		"request_id":    request.Id.String(),
		"project_id":    request.ProjectId.String(),
		"contractor_id": request.ContractorId.String(),
		"submitted_by":  request.UserId.String(),
		"amount":        request.Amount,
		"status_id":     request.PaymentStatusId.String(),
		"version":       request.Version,
		"entity_type":   "payment_request",
		"entity_id":     request.Id.String(),
	}
	if request.CurrentApprovalLevelId != nil {
		payload["level_id"] = request.CurrentApprovalLevelId.String()
	}
	return payload
}

func (p *paymentEventPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{
			"request_id": data["request_id"],
			"error":      err,
		})
	}
}

func (p *paymentEventPublisher) PublishSubmitted(ctx context.Context, request *entity.PaymentRequest, statusName string) {
	data := requestPayload(request)
	data["status"] = statusName
	p.publish(ctx, EventPaymentRequestSubmitted, data)
}

func (p *paymentEventPublisher) PublishActioned(ctx context.Context, request *entity.PaymentRequest, action string, actionBy uuid.UUID, assignedTo *uuid.UUID, statusName string) {
	data := requestPayload(request)
	data["action"] = action
	data["action_by"] = actionBy.String()
	data["status"] = statusName
	if assignedTo != nil {
		data["assigned_to"] = assignedTo.String()
	}
	p.publish(ctx, EventPaymentRequestActioned, data)
}

func (p *paymentEventPublisher) PublishPaymentRecorded(ctx context.Context, request *entity.PaymentRequest, details *entity.PaymentDetails) {
	data := requestPayload(request)
	data["payment_mode"] = details.PaymentMode
	data["transaction_id"] = details.TransactionId
	data["paid_by"] = details.PaidByUserId.String()
	data["status"] = "Paid"
	p.publish(ctx, EventPaymentRecorded, data)
}
