package handler

import (
	"strings"

	"impes-be/internal/pkg/apperr"
	"impes-be/internal/pkg/logger"
	"impes-be/internal/pkg/serverutils"
	internalWS "impes-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type NotificationHandler struct {
	hub      *internalWS.Hub
	verifier *serverutils.TokenVerifier
	logger   logger.ILogger
}

func NewNotificationHandler(hub *internalWS.Hub, verifier *serverutils.TokenVerifier, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		hub:      hub,
		verifier: verifier,
		logger:   log,
	}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/payment-notifications", h.ServeWs)
}

// ServeWs authenticates the handshake and upgrades it. Browsers cannot set
// headers on websocket requests, so the token may come as ?token=.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if tokenStr == "" {
		return apperr.Unauthenticated("missing token")
	}

	principal, err := h.verifier.Parse(tokenStr)
	if err != nil {
		h.logger.Warn("NOTIFICATION", "Invalid token in websocket handshake", map[string]interface{}{"error": err})
		return err
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userID, expires := principal.UserId, principal.ExpiresAt
	return websocket.New(func(conn *websocket.Conn) {
		internalWS.Serve(h.hub, conn, userID, expires)
		h.logger.Info("NOTIFICATION", "Websocket session ended", map[string]interface{}{"user_id": userID})
	})(c)
}
