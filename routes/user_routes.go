package routes

import (
	"github.com/Antzgech/makeda_quest/handlers"
	"github.com/Antzgech/makeda_quest/middleware"
	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App) {
	api := app.Group("/api")

	user := api.Group("/user", middleware.Protected(), middleware.ActiveSession())
	user.Get("/stats", handlers.GetStats)
	user.Get("/badges", handlers.GetMyBadges)
	user.Get("/avatar-signature", handlers.GenerateAvatarUploadSignature)

	levels := api.Group("/levels", middleware.Protected(), middleware.ActiveSession())
	levels.Get("", handlers.GetLevels)
	levels.Post("/advance", handlers.AdvanceLevel)

	api.Post("/invite", middleware.Protected(), middleware.ActiveSession(), handlers.RecordInvite)
}
