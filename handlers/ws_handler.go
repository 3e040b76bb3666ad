package handlers

import (
	"github.com/Antzgech/makeda_quest/services"
	ws "github.com/Antzgech/makeda_quest/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// WebsocketUpgrade verifies the credential carried as a query param before
// allowing the upgrade; browsers cannot set Authorization headers on
// websocket handshakes.
func WebsocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userID, err := services.VerifySession(c.Query("token"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired credential"})
	}

	c.Locals("userID", userID)
	return c.Next()
}

// AwardStream keeps the connection registered with the hub until the client
// goes away. The stream is push-only; inbound frames are drained and ignored.
func AwardStream() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID := conn.Locals("userID").(uuid.UUID)

		client := &ws.Client{UserID: userID, Conn: conn}
		ws.Register <- client
		defer func() { ws.Unregister <- client }()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	})
}
