package routes

import (
	"github.com/Antzgech/makeda_quest/handlers"
	"github.com/gofiber/fiber/v2"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api.Get("/ws", handlers.WebsocketUpgrade, handlers.AwardStream())
}
