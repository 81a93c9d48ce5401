package websocket

import (
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingInterval = (pongWait * 9) / 10
	// The feed is one-way; inbound frames are only control traffic.
	maxInboundSize = 512
	sendBuffer     = 256
)

// Session is one open notification socket of a user. A user may hold
// several, one per tab or device.
type Session struct {
	hub     *Hub
	conn    *websocket.Conn
	userID  uuid.UUID
	expires time.Time
	send    chan []byte
}

// Serve registers a session for the user and blocks until the peer goes
// away or the token behind the handshake expires.
func Serve(hub *Hub, conn *websocket.Conn, userID uuid.UUID, expires time.Time) {
	s := &Session{
		hub:     hub,
		conn:    conn,
		userID:  userID,
		expires: expires,
		send:    make(chan []byte, sendBuffer),
	}
	hub.register <- s

	go s.deliverLoop()
	s.drainInbound()
}

func (s *Session) expired(now time.Time) bool {
	return !s.expires.IsZero() && now.After(s.expires)
}

func (s *Session) drainInbound() {
	defer func() {
		s.hub.unregister <- s
		s.conn.Close()
	}()
	s.conn.SetReadLimit(maxInboundSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.hub.logger.Warn("NOTIFICATION", "Unexpected websocket close", map[string]interface{}{
					"user_id": s.userID,
					"error":   err,
				})
			}
			return
		}
	}
}

func (s *Session) deliverLoop() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case frame, open := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !open {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case now := <-ticker.C:
			s.conn.SetWriteDeadline(now.Add(writeWait))
			if s.expired(now) {
				s.hub.logger.Info("NOTIFICATION", "Closing session with expired token", map[string]interface{}{"user_id": s.userID})
				s.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "token expired"))
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
