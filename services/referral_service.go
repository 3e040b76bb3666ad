package services

import (
	"errors"
	"log"

	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InviteBonusPoints is the fixed credit per recorded invite.
const InviteBonusPoints = 20

const socialButterflyThreshold = 5

type InviteResult struct {
	InvitedFriends int      `json:"invited_friends"`
	BonusPoints    int      `json:"bonus_points"`
	TotalPoints    int      `json:"total_points"`
	NewBadges      []string `json:"new_badges"`
}

// RecordInvite credits the referrer with one invited friend and the fixed
// bonus. The invited party is recorded as given; verifying it is a real new
// user is the caller's concern.
func RecordInvite(referrerID uuid.UUID, invitedUserID string) (*InviteResult, error) {
	var result InviteResult
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", referrerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		user.InvitedFriends++
		user.Points += InviteBonusPoints
		user.Coins += InviteBonusPoints

		invite := models.Invite{
			ReferrerID:    referrerID,
			InvitedUserID: invitedUserID,
			BonusPoints:   InviteBonusPoints,
		}
		if err := tx.Create(&invite).Error; err != nil {
			return err
		}

		var newBadges []string
		if user.InvitedFriends >= socialButterflyThreshold {
			awarded, err := awardBadge(tx, user.ID, models.BadgeSocialButterfly)
			if err != nil {
				return err
			}
			if awarded {
				newBadges = append(newBadges, models.BadgeSocialButterfly)
			}
		}

		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		result = InviteResult{
			InvitedFriends: user.InvitedFriends,
			BonusPoints:    InviteBonusPoints,
			TotalPoints:    user.Points,
			NewBadges:      newBadges,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🤝 Invite recorded: referrer=%s invited=%s", referrerID, invitedUserID)
	return &result, nil
}
