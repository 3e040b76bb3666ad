package handlers

import (
	"strconv"

	"github.com/Antzgech/makeda_quest/services"
	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard serves the global ranking by default (or ?level=all) and a
// per-level ranking for ?level=1..6. Finalists are included either way,
// recomputed on every call.
func GetLeaderboard(c *fiber.Ctx) error {
	scope := c.Query("level", "all")

	finalists, err := services.FinalistSet()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute finalists"})
	}

	if scope == "all" || scope == "" {
		entries, err := services.GlobalRanking()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute leaderboard"})
		}
		return c.JSON(fiber.Map{
			"scope":       "all",
			"leaderboard": entries,
			"finalists":   finalists,
		})
	}

	level, err := strconv.Atoi(scope)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "level must be 'all' or 1-6"})
	}

	entries, err := services.LevelRanking(level)
	if err != nil {
		if err == services.ErrInvalidLevel {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "level must be 'all' or 1-6"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute leaderboard"})
	}

	return c.JSON(fiber.Map{
		"scope":       scope,
		"leaderboard": entries,
		"finalists":   finalists,
	})
}
