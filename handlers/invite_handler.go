package handlers

import (
	"errors"

	"github.com/Antzgech/makeda_quest/middleware"
	"github.com/Antzgech/makeda_quest/notifications"
	"github.com/Antzgech/makeda_quest/services"
	"github.com/Antzgech/makeda_quest/websocket"
	"github.com/gofiber/fiber/v2"
)

type InviteRequest struct {
	InvitedUserID string `json:"invited_user_id" validate:"required"`
}

// RecordInvite credits the caller for one invited friend.
func RecordInvite(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired credential"})
	}

	var req InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := services.RecordInvite(userID, req.InvitedUserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record invite"})
	}

	if len(result.NewBadges) > 0 {
		go notifications.NotifyBadgeAward(userID, result.NewBadges)
	}
	websocket.PushAward(userID, websocket.AwardEvent{
		Kind:        "invite_recorded",
		Points:      result.BonusPoints,
		TotalPoints: result.TotalPoints,
		Badges:      result.NewBadges,
	})

	return c.JSON(result)
}
