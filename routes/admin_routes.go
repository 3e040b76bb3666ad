package routes

import (
	"github.com/Antzgech/makeda_quest/handlers"
	"github.com/Antzgech/makeda_quest/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Get("/users", handlers.ListUsers)
	admin.Patch("/users/:userId/level", handlers.SetUserLevel)
	admin.Get("/sessions", handlers.ListSessions)
	admin.Delete("/sessions/:sessionId", handlers.RevokeSession)
	admin.Put("/badges/:badgeId", handlers.UpdateBadge)
}
