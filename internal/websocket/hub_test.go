package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"impes-be/internal/entity"
	"impes-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSession(h *Hub, userID uuid.UUID) *Session {
	s := &Session{hub: h, userID: userID, send: make(chan []byte, 4)}
	h.register <- s
	return s
}

func TestHub_SendReachesEverySessionOfTheUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(nil, logger.NewNopLogger())
	go h.Run(ctx)

	user, other := uuid.New(), uuid.New()
	tab1, tab2 := openSession(h, user), openSession(h, user)
	bystander := openSession(h, other)
	require.Eventually(t, func() bool { return h.Connected(user) && h.Connected(other) }, time.Second, 10*time.Millisecond)

	requestId := uuid.New()
	h.Send(user, entity.PaymentNotification{Type: "PAYMENT_REQUEST_ACTIONED", RequestId: requestId, Status: "Rejected"})

	for _, s := range []*Session{tab1, tab2} {
		select {
		case frame := <-s.send:
			var msg struct {
				Type string                     `json:"type"`
				Data entity.PaymentNotification `json:"data"`
			}
			require.NoError(t, json.Unmarshal(frame, &msg))
			assert.Equal(t, "payment_notification", msg.Type)
			assert.Equal(t, requestId, msg.Data.RequestId)
		case <-time.After(time.Second):
			t.Fatal("notification not delivered")
		}
	}
	assert.Empty(t, bystander.send)
}

func TestHub_UnregisterClosesSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(nil, logger.NewNopLogger())
	go h.Run(ctx)

	user := uuid.New()
	s := openSession(h, user)
	h.unregister <- s

	require.Eventually(t, func() bool { return !h.Connected(user) }, time.Second, 10*time.Millisecond)
	_, open := <-s.send
	assert.False(t, open)

	// A second unregister of the same session is a no-op.
	h.remove(s)
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	assert.False(t, (&Session{}).expired(now))
	assert.False(t, (&Session{expires: now.Add(time.Minute)}).expired(now))
	assert.True(t, (&Session{expires: now.Add(-time.Minute)}).expired(now))
}
