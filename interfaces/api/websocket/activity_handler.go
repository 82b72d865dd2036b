package websocket

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	wsinfra "github.com/pinkcat015/todolist/infrastructure/websocket"
	"github.com/pinkcat015/todolist/pkg/logger"
	"github.com/pinkcat015/todolist/pkg/utils"
)

type ActivityHandler struct {
	hub *wsinfra.ActivityHub
}

func NewActivityHandler(hub *wsinfra.ActivityHub) *ActivityHandler {
	return &ActivityHandler{hub: hub}
}

// Upgrade only lets authenticated websocket handshakes through and hands the
// user over to the socket via Locals.
func (h *ActivityHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}
	c.Locals("user_id", user.ID)
	return c.Next()
}

// Handle streams the user's activity events until the client goes away.
// Inbound frames are read and discarded so pings and close frames are processed.
func (h *ActivityHandler) Handle(c *websocket.Conn) {
	userID, ok := c.Locals("user_id").(int64)
	if !ok {
		_ = c.Close()
		return
	}

	if err := c.WriteJSON(wsinfra.Message{Type: "connected", Data: fiber.Map{"userId": userID}}); err != nil {
		_ = c.Close()
		return
	}

	if err := h.hub.Register(c, userID); err != nil {
		logger.Error("Failed to subscribe websocket to activity", "user_id", userID, "error", err)
		_ = c.Close()
		return
	}
	defer h.hub.Unregister(c, userID)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
