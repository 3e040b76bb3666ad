package routes

import (
	"github.com/Antzgech/makeda_quest/handlers"
	"github.com/Antzgech/makeda_quest/middleware"
	"github.com/gofiber/fiber/v2"
)

func LeaderboardRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Get("/leaderboard", middleware.Protected(), middleware.ActiveSession(), handlers.GetLeaderboard)
	api.Get("/badges", handlers.ListBadges)
}
