package handlers

import (
	"errors"

	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/middleware"
	"github.com/Antzgech/makeda_quest/models"
	"github.com/Antzgech/makeda_quest/services"
	"github.com/gofiber/fiber/v2"
)

// GetStats returns the progress view for the authenticated user.
func GetStats(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired credential"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	progress, err := services.ComputeProgress(&user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute progress"})
	}

	return c.JSON(fiber.Map{
		"points":          user.Points,
		"coins":           user.Coins,
		"invited_friends": user.InvitedFriends,
		"progress":        progress,
	})
}

// GetLevels returns the six level summaries for the levels screen.
func GetLevels(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired credential"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(services.LevelSummaries(&user))
}

// AdvanceLevel moves the caller to the next level when the current one is
// complete and all requirements hold.
func AdvanceLevel(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired credential"})
	}

	user, err := services.AdvanceLevel(userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		case errors.Is(err, services.ErrMaxLevelReached):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Max level reached"})
		case errors.Is(err, services.ErrLevelRequirementsNotMet):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Level requirements not met"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to advance level"})
		}
	}

	return c.JSON(fiber.Map{"current_level": user.CurrentLevel})
}
