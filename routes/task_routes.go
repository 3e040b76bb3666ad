package routes

import (
	"github.com/Antzgech/makeda_quest/handlers"
	"github.com/Antzgech/makeda_quest/middleware"
	"github.com/gofiber/fiber/v2"
)

func TaskRoutes(app *fiber.App) {
	api := app.Group("/api")

	tasks := api.Group("/tasks", middleware.Protected(), middleware.ActiveSession())
	tasks.Get("", handlers.ListTasks)
	tasks.Post("/:id/complete", handlers.CompleteTask)
}
