package handlers

import (
	"errors"
	"strconv"

	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/models"
	"github.com/Antzgech/makeda_quest/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ListSessions(c *fiber.Ctx) error {
	var sessions []models.Session
	if err := database.DB.Order("issued_at DESC").Limit(200).Find(&sessions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list sessions"})
	}
	return c.JSON(sessions)
}

func RevokeSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	if err := services.RevokeSession(sessionID); err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to revoke session"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type SetLevelRequest struct {
	Level int `json:"level" validate:"required,min=1,max=6"`
}

// SetUserLevel is the manual advancement override. Levels never go down.
func SetUserLevel(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req SetLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := services.SetLevel(userID, req.Level)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		case errors.Is(err, services.ErrLevelDowngrade):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Current level cannot decrease"})
		case errors.Is(err, services.ErrInvalidLevel):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Level out of range"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to set level"})
		}
	}

	return c.JSON(fiber.Map{"user_id": user.ID, "current_level": user.CurrentLevel})
}

// ListUsers is a paginated admin view over the user collection.
func ListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.Query("size", "50"))
	if size < 1 || size > 200 {
		size = 50
	}

	var users []models.User
	err := database.DB.Order("created_at DESC").
		Limit(size).Offset((page - 1) * size).
		Find(&users).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list users"})
	}

	var total int64
	database.DB.Model(&models.User{}).Count(&total)

	return c.JSON(fiber.Map{
		"users": users,
		"page":  page,
		"size":  size,
		"total": total,
	})
}
