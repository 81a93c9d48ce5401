package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"impes-be/internal/entity"
	"impes-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClusterChannel fans notifications out to users connected to other
// instances.
const ClusterChannel = "payment_notifications"

type clusterMessage struct {
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
	Origin       string          `json:"origin"`
}

type Hub struct {
	sessions map[uuid.UUID][]*Session

	register   chan *Session
	unregister chan *Session

	mu sync.RWMutex

	rdb *redis.Client
	// instance id, so an instance skips its own cluster messages
	origin string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Session),
		unregister: make(chan *Session),
		sessions:   make(map[uuid.UUID][]*Session),
		rdb:        rdb,
		origin:     uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case s := <-h.register:
			h.mu.Lock()
			h.sessions[s.userID] = append(h.sessions[s.userID], s)
			h.mu.Unlock()
			h.logger.Info("NOTIFICATION", "Session opened", map[string]interface{}{"user_id": s.userID})

		case s := <-h.unregister:
			h.remove(s)
		}
	}
}

func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions := h.sessions[s.userID]
	for i, open := range sessions {
		if open == s {
			h.sessions[s.userID] = append(sessions[:i], sessions[i+1:]...)
			close(s.send)
			break
		}
	}
	if len(h.sessions[s.userID]) == 0 {
		delete(h.sessions, s.userID)
	}
}

// Connected reports whether the user has an open socket on this instance.
func (h *Hub) Connected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID]) > 0
}

// Send pushes a notification to every local socket of the user and, when
// Redis is configured, to the other instances.
func (h *Hub) Send(userID uuid.UUID, notification entity.PaymentNotification) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "payment_notification",
		"data": notification,
	})
	if err != nil {
		h.logger.Error("NOTIFICATION", "Failed to encode notification", map[string]interface{}{"error": err})
		return
	}

	h.deliver(userID, data)

	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(clusterMessage{
		TargetUserID: userID.String(),
		Message:      data,
		Origin:       h.origin,
	})
	if err := h.rdb.Publish(context.Background(), ClusterChannel, payload).Err(); err != nil {
		h.logger.Warn("NOTIFICATION", "Failed to publish notification to cluster", map[string]interface{}{"error": err})
	}
}

func (h *Hub) deliver(userID uuid.UUID, data []byte) {
	// Held for the sends so remove cannot close a channel mid-delivery.
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, s := range h.sessions[userID] {
		select {
		case s.send <- data:
		default:
			h.logger.Warn("NOTIFICATION", "Session buffer full, dropping it", map[string]interface{}{"user_id": userID})
			go func(s *Session) { h.unregister <- s }(s)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("NOTIFICATION", "Dropping malformed cluster message", map[string]interface{}{"error": err})
			continue
		}
		if payload.Origin == h.origin {
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}
		h.deliver(uid, payload.Message)
	}
}
