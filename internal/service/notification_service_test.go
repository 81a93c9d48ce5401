package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"impes-be/internal/entity"
	"impes-be/internal/pkg/logger"
	"impes-be/internal/pkg/mailer"
	"impes-be/internal/service"
	"impes-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDelivery struct {
	mu   sync.Mutex
	sent map[uuid.UUID][]entity.PaymentNotification
}

func (d *fakeDelivery) Send(userID uuid.UUID, n entity.PaymentNotification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sent == nil {
		d.sent = map[uuid.UUID][]entity.PaymentNotification{}
	}
	d.sent[userID] = append(d.sent[userID], n)
}

func (d *fakeDelivery) For(userID uuid.UUID) []entity.PaymentNotification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]entity.PaymentNotification(nil), d.sent[userID]...)
}

type fakeMailer struct {
	mu     sync.Mutex
	emails map[string][]mailer.PaymentNotice
}

func (m *fakeMailer) SendPaymentNotice(to string, notice mailer.PaymentNotice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emails == nil {
		m.emails = map[string][]mailer.PaymentNotice{}
	}
	m.emails[to] = append(m.emails[to], notice)
	return nil
}

func (m *fakeMailer) To(addr string) []mailer.PaymentNotice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mailer.PaymentNotice(nil), m.emails[addr]...)
}

func TestHandleEvent_NotifiesSubmitterAndEmailsAssignee(t *testing.T) {
	h := newHarness(t)
	delivery, mail := &fakeDelivery{}, &fakeMailer{}
	notifier := service.NewNotificationService(h.factory, nil, delivery, mail, logger.NewNopLogger())

	submitter := h.wf.Submitter.Id
	actor := h.wf.Reviewers[0]
	assignee := h.wf.Reviewers[1]
	requestId := uuid.New()

	err := notifier.HandleEvent(context.Background(), events.BaseEvent{
		Type: service.EventPaymentRequestActioned,
		Data: map[string]interface{}{
			"request_id":   requestId.String(),
			"project_id":   uuid.NewString(),
			"submitted_by": submitter.String(),
			"action":       "Approve",
			"action_by":    actor.Id.String(),
			"assigned_to":  assignee.Id.String(),
			"status":       "Awaiting Finance Review",
		},
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	require.Len(t, delivery.For(submitter), 1)
	got := delivery.For(assignee.Id)
	require.Len(t, got, 1)
	assert.Equal(t, requestId, got[0].RequestId)
	assert.Equal(t, "Awaiting Finance Review", got[0].Status)

	emails := mail.To(assignee.Email)
	require.Len(t, emails, 1)
	assert.Equal(t, "Engineer", emails[0].ActionBy)
	assert.Equal(t, "Finance", emails[0].RecipientName)
	assert.Empty(t, mail.To(h.wf.Submitter.Email))
}

func TestHandleEvent_IgnoresForeignEvents(t *testing.T) {
	h := newHarness(t)
	delivery := &fakeDelivery{}
	notifier := service.NewNotificationService(h.factory, nil, delivery, nil, logger.NewNopLogger())

	err := notifier.HandleEvent(context.Background(), events.BaseEvent{
		Type: "USER_REGISTERED",
		Data: map[string]interface{}{"request_id": uuid.NewString(), "submitted_by": uuid.NewString()},
	})
	require.NoError(t, err)
	assert.Empty(t, delivery.sent)
}

func TestNotifications_FlowOverLocalBus(t *testing.T) {
	h := newHarness(t)
	log := logger.NewNopLogger()
	bus := events.NewLocalBus(log)
	t.Cleanup(func() { _ = bus.Close() })

	delivery := &fakeDelivery{}
	notifier := service.NewNotificationService(h.factory, bus, delivery, nil, log)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, notifier.Start(ctx))

	publisher := service.NewPaymentEventPublisher(bus, log)
	requests := service.NewPaymentRequestService(h.factory, h.registry, publisher, entity.PrivilegePaymentRequestReadAll, log)

	_, err := requests.Submit(ctx, h.wf.SubmitterPrincipal(nil), h.submission(uuid.New()))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(delivery.For(h.wf.Submitter.Id)) == 1
	}, 2*time.Second, 10*time.Millisecond)
	n := delivery.For(h.wf.Submitter.Id)[0]
	assert.Equal(t, service.EventPaymentRequestSubmitted, n.Type)
	assert.Equal(t, "Submitted", n.Status)
}

