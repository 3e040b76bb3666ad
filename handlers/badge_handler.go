package handlers

import (
	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/middleware"
	"github.com/Antzgech/makeda_quest/models"
	"github.com/gofiber/fiber/v2"
)

func ListBadges(c *fiber.Ctx) error {
	var badges []models.Badge
	if err := database.DB.Order("created_at ASC").Find(&badges).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load badges"})
	}
	return c.JSON(badges)
}

func GetMyBadges(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired credential"})
	}

	var userBadges []models.UserBadge
	err = database.DB.Preload("Badge").
		Where("user_id = ?", userID).
		Order("awarded_at ASC").
		Find(&userBadges).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load badges"})
	}

	return c.JSON(userBadges)
}

type UpdateBadgeRequest struct {
	Description string `json:"description" validate:"required"`
	IconURL     string `json:"icon_url" validate:"required"`
}

// UpdateBadge lets an admin adjust display fields. Names are fixed because
// the award rules key on them.
func UpdateBadge(c *fiber.Ctx) error {
	badgeID := c.Params("badgeId")
	var badge models.Badge
	if err := database.DB.First(&badge, "id = ?", badgeID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Badge not found"})
	}

	var req UpdateBadgeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	badge.Description = req.Description
	badge.IconURL = req.IconURL
	if err := database.DB.Save(&badge).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update badge"})
	}

	return c.JSON(badge)
}
