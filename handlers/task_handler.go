package handlers

import (
	"errors"

	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/middleware"
	"github.com/Antzgech/makeda_quest/models"
	"github.com/Antzgech/makeda_quest/notifications"
	"github.com/Antzgech/makeda_quest/services"
	"github.com/Antzgech/makeda_quest/websocket"
	"github.com/gofiber/fiber/v2"
)

type TaskView struct {
	models.Task
	Completed bool `json:"completed"`
}

// ListTasks returns the catalog in order with the caller's completed flag on
// each entry.
func ListTasks(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired credential"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var tasks []models.Task
	if err := database.DB.Order("position ASC").Find(&tasks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load tasks"})
	}

	var completions []models.TaskCompletion
	if err := database.DB.Where("user_id = ?", userID).Find(&completions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load completions"})
	}
	completed := make(map[string]bool, len(completions))
	for _, completion := range completions {
		completed[completion.TaskID] = true
	}

	views := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, TaskView{Task: task, Completed: completed[task.ID]})
	}

	return c.JSON(views)
}

// CompleteTask marks a task completed for the caller, awarding its points at
// most once.
func CompleteTask(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired credential"})
	}

	result, err := services.CompleteTask(userID, c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		case errors.Is(err, services.ErrAlreadyCompleted):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Task already completed"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete task"})
		}
	}

	if len(result.NewBadges) > 0 {
		go notifications.NotifyBadgeAward(userID, result.NewBadges)
	}
	websocket.PushAward(userID, websocket.AwardEvent{
		Kind:        "task_completed",
		Points:      result.AwardedPoints,
		TotalPoints: result.TotalPoints,
		Badges:      result.NewBadges,
	})

	return c.JSON(fiber.Map{
		"awarded_points": result.AwardedPoints,
		"total_points":   result.TotalPoints,
		"badges":         result.NewBadges,
	})
}
