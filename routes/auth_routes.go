package routes

import (
	"github.com/Antzgech/makeda_quest/handlers"
	"github.com/Antzgech/makeda_quest/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/telegram", handlers.TelegramAuth)
	auth.Post("/admin/login", handlers.AdminLogin)
	auth.Get("/me", middleware.Protected(), middleware.ActiveSession(), handlers.Me)
}
