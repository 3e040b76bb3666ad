package services

import (
	"errors"
	"time"

	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/models"
	"github.com/Antzgech/makeda_quest/utils"
	"gorm.io/gorm"
)

var ErrMissingTelegramID = errors.New("telegram id missing")

// IdentityAssertion is what the Telegram front door hands us on /start or
// WebApp login. Everything but the ID is optional.
type IdentityAssertion struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
	AvatarURL  *string
}

// ResolveIdentity maps an external assertion to a stable user record,
// creating one with zero progress if none exists. Repeat calls refresh the
// display fields and last-active time but never touch accumulated progress.
// The boolean reports whether a record was created.
func ResolveIdentity(assertion IdentityAssertion) (*models.User, bool, error) {
	if assertion.TelegramID == 0 {
		return nil, false, ErrMissingTelegramID
	}

	var user models.User
	err := database.DB.Where("telegram_id = ?", assertion.TelegramID).First(&user).Error
	if err == nil {
		user.Username = assertion.Username
		user.FirstName = assertion.FirstName
		user.LastName = assertion.LastName
		if assertion.AvatarURL != nil {
			user.AvatarURL = assertion.AvatarURL
		}
		user.LastActiveAt = time.Now()
		if err := database.DB.Save(&user).Error; err != nil {
			return nil, false, err
		}
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		inviteCode, err := utils.GenerateUniqueInviteCode(tx)
		if err != nil {
			return err
		}

		user = models.User{
			TelegramID:   assertion.TelegramID,
			Username:     assertion.Username,
			FirstName:    assertion.FirstName,
			LastName:     assertion.LastName,
			AvatarURL:    assertion.AvatarURL,
			CurrentLevel: 1,
			LevelScores:  models.LevelScores{},
			InviteCode:   &inviteCode,
			LastActiveAt: time.Now(),
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		// A concurrent resolve for the same telegram id may have won the
		// insert; fall back to the existing record.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if fetchErr := database.DB.Where("telegram_id = ?", assertion.TelegramID).First(&user).Error; fetchErr == nil {
				return &user, false, nil
			}
		}
		return nil, false, err
	}

	return &user, true, nil
}

// FindUserByInviteCode resolves a referrer from the code carried on a
// /start deep link.
func FindUserByInviteCode(code string) (*models.User, error) {
	var user models.User
	if err := database.DB.Where("invite_code = ?", code).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
