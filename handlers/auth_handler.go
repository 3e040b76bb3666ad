package handlers

import (
	"errors"
	"log"
	"time"

	config "github.com/Antzgech/makeda_quest/configs"
	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/middleware"
	"github.com/Antzgech/makeda_quest/models"
	"github.com/Antzgech/makeda_quest/services"
	"github.com/Antzgech/makeda_quest/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()

type TelegramAuthRequest struct {
	TelegramID   int64   `json:"telegram_id" validate:"required"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	AvatarURL    *string `json:"avatar_url" validate:"omitempty,url"`
	ReferralCode string  `json:"referral_code"`
	InitData     string  `json:"init_data"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID             string             `json:"id"`
	TelegramID     int64              `json:"telegram_id"`
	Username       string             `json:"username"`
	FirstName      string             `json:"first_name"`
	LastName       string             `json:"last_name"`
	AvatarURL      *string            `json:"avatar_url"`
	Points         int                `json:"points"`
	Coins          int                `json:"coins"`
	CurrentLevel   int                `json:"current_level"`
	LevelScores    models.LevelScores `json:"level_scores"`
	InvitedFriends int                `json:"invited_friends"`
	InviteCode     *string            `json:"invite_code"`
	Badges         []models.UserBadge `json:"badges"`
	CreatedAt      time.Time          `json:"created_at"`
}

func toUserResponse(user *models.User) UserResponse {
	badges := user.UserBadges
	if badges == nil {
		badges = []models.UserBadge{}
	}
	return UserResponse{
		ID:             user.ID.String(),
		TelegramID:     user.TelegramID,
		Username:       user.Username,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		AvatarURL:      user.AvatarURL,
		Points:         user.Points,
		Coins:          user.Coins,
		CurrentLevel:   user.CurrentLevel,
		LevelScores:    user.LevelScores,
		InvitedFriends: user.InvitedFriends,
		InviteCode:     user.InviteCode,
		Badges:         badges,
		CreatedAt:      user.CreatedAt,
	}
}

// TelegramAuth resolves the identity assertion delivered by the Telegram
// front door and issues a session credential. New users arriving via a
// referral deep link credit their referrer here.
func TelegramAuth(c *fiber.Ctx) error {
	var req TelegramAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// WebApp logins carry signed init data; when present it must check out.
	// The bot front door talks to us server-to-server and omits it.
	if req.InitData != "" {
		botToken := config.Config("TELEGRAM_BOT_TOKEN")
		if err := utils.ValidateWebAppInitData(req.InitData, botToken); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid identity assertion"})
		}
	}

	user, created, err := services.ResolveIdentity(services.IdentityAssertion{
		TelegramID: req.TelegramID,
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		AvatarURL:  req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, services.ErrMissingTelegramID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "telegram_id is required"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve identity"})
	}

	if created && req.ReferralCode != "" {
		if referrer, err := services.FindUserByInviteCode(req.ReferralCode); err == nil && referrer.ID != user.ID {
			if _, err := services.RecordInvite(referrer.ID, user.ID.String()); err != nil {
				log.Printf("🔥 Failed to credit referrer %s: %v", referrer.ID, err)
			}
		} else if err != nil {
			log.Printf("Invalid referral code used: %s", req.ReferralCode)
		}
	}

	token, err := services.IssueSession(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  toUserResponse(user),
	})
}

// Me returns the authenticated user's profile with badges.
func Me(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired credential"})
	}

	var user models.User
	if err := database.DB.Preload("UserBadges.Badge").First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(toUserResponse(&user))
}

// AdminLogin checks the seeded admin credentials and issues an admin token.
func AdminLogin(c *fiber.Ctx) error {
	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var admin models.AdminUser
	if err := database.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	token, err := services.IssueAdminToken(&admin)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"token": token})
}
