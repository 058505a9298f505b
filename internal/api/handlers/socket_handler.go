package handlers

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"Go-Recipe-Chat/domain"
	"Go-Recipe-Chat/internal/api/presenters"
	"Go-Recipe-Chat/internal/middleware"
	"Go-Recipe-Chat/internal/realtime"
)

type (
	SocketHandler interface {
		Upgrade(c *fiber.Ctx) error
		Serve() fiber.Handler
	}

	socketHandler struct {
		broadcaster *realtime.Broadcaster
	}
)

func NewSocketHandler(broadcaster *realtime.Broadcaster) SocketHandler {
	return &socketHandler{broadcaster: broadcaster}
}

// Upgrade rejects plain HTTP requests to the socket endpoint.
func (h *socketHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return presenters.ErrorResponse(c, fiber.StatusUpgradeRequired, domain.MessageFailedProcessRequest, fiber.ErrUpgradeRequired)
	}
	return c.Next()
}

func (h *socketHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals(middleware.UserIDKey).(uint)
		h.broadcaster.Serve(context.Background(), conn, userID)
	})
}
