package service

import (
	"context"
	"fmt"

	"impes-be/internal/entity"
	"impes-be/internal/pkg/logger"
	"impes-be/internal/pkg/mailer"
	"impes-be/internal/repository/specification"
	"impes-be/internal/repository/unitofwork"
	"impes-be/pkg/events"

	"github.com/google/uuid"
)

const notificationConsumer = "payment-notifier"

// NotificationDelivery pushes realtime updates. Implemented by the
// websocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification entity.PaymentNotification)
}

type NotificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber events.Subscriber
	delivery   NotificationDelivery
	mailer     mailer.IEmailService
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub events.Subscriber,
	delivery NotificationDelivery,
	mail mailer.IEmailService,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		mailer:     mail,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, notificationConsumer, s.HandleEvent); err != nil {
		s.logger.Error("NOTIFICATION", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return err
	}
	s.logger.Info("NOTIFICATION", "Notification service started", map[string]interface{}{"consumer": notificationConsumer})
	return nil
}

func payloadUUID(payload map[string]interface{}, key string) *uuid.UUID {
	raw, _ := payload[key].(string)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func notificationMessage(eventType, action, status string) string {
	switch eventType {
	case EventPaymentRequestSubmitted:
		return "A new payment request was submitted"
	case EventPaymentRecorded:
		return "Payment has been recorded"
	default:
		return fmt.Sprintf("Payment request %s, now %s", action, status)
	}
}

// HandleEvent notifies the submitter and the assigned user. Only the
// assigned user is emailed. Unknown events are ignored.
func (s *NotificationService) HandleEvent(ctx context.Context, event events.Event) error {
	switch event.EventType() {
	case EventPaymentRequestSubmitted, EventPaymentRequestActioned, EventPaymentRecorded:
	default:
		return nil
	}

	payload := event.Payload()
	requestId := payloadUUID(payload, "request_id")
	if requestId == nil {
		s.logger.Warn("NOTIFICATION", "Event without request id", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	action, _ := payload["action"].(string)
	status, _ := payload["status"].(string)
	notification := entity.PaymentNotification{
		Type:       event.EventType(),
		RequestId:  *requestId,
		Action:     action,
		Status:     status,
		ActionBy:   payloadUUID(payload, "action_by"),
		Message:    notificationMessage(event.EventType(), action, status),
		OccurredAt: event.Timestamp(),
	}
	if projectId := payloadUUID(payload, "project_id"); projectId != nil {
		notification.ProjectId = *projectId
	}

	recipients := make([]uuid.UUID, 0, 2)
	if submitter := payloadUUID(payload, "submitted_by"); submitter != nil {
		recipients = append(recipients, *submitter)
	}
	assignee := payloadUUID(payload, "assigned_to")
	if assignee != nil && (len(recipients) == 0 || recipients[0] != *assignee) {
		recipients = append(recipients, *assignee)
	}

	if s.delivery != nil {
		for _, userID := range recipients {
			s.delivery.Send(userID, notification)
		}
	}

	if assignee != nil {
		s.emailAssignee(ctx, *assignee, notification)
	}
	return nil
}

func (s *NotificationService) emailAssignee(ctx context.Context, userID uuid.UUID, notification entity.PaymentNotification) {
	if s.mailer == nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userID})
	if err != nil {
		s.logger.Error("NOTIFICATION", "Failed to load assigned user", map[string]interface{}{
			"user_id": userID,
			"error":   err,
		})
		return
	}
	if user == nil || user.Email == "" {
		return
	}

	actionBy := ""
	if notification.ActionBy != nil {
		if actor, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *notification.ActionBy}); err == nil && actor != nil {
			actionBy = actor.DisplayName()
		}
	}

	notice := mailer.PaymentNotice{
		RecipientName: user.DisplayName(),
		RequestId:     notification.RequestId.String(),
		Action:        notification.Action,
		Status:        notification.Status,
		ActionBy:      actionBy,
		Notes:         notification.Message,
	}
	// Failures are logged by the mailer and never redeliver the event.
	_ = s.mailer.SendPaymentNotice(user.Email, notice)
}
