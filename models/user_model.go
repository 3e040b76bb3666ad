package models

import (
	"time"

	"github.com/google/uuid"
)

// LevelScores maps a level number (1..6) to the points accumulated while the
// user was at that level. Stored as a jsonb column.
type LevelScores map[int]int

func (ls LevelScores) Score(level int) int {
	if ls == nil {
		return 0
	}
	return ls[level]
}

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TelegramID int64     `gorm:"not null;uniqueIndex" json:"telegram_id"`
	Username   string    `gorm:"size:255" json:"username"`
	FirstName  string    `gorm:"size:255" json:"first_name"`
	LastName   string    `gorm:"size:255" json:"last_name"`
	AvatarURL  *string   `gorm:"size:512" json:"avatar_url"`

	Points       int         `gorm:"default:0;index" json:"points"`
	Coins        int         `gorm:"default:0" json:"coins"`
	CurrentLevel int         `gorm:"default:1" json:"current_level"`
	LevelScores  LevelScores `gorm:"serializer:json;type:jsonb" json:"level_scores"`

	InvitedFriends int     `gorm:"default:0" json:"invited_friends"`
	InviteCode     *string `gorm:"size:10;unique" json:"invite_code"`

	UserBadges []UserBadge `gorm:"foreignkey:UserID" json:"badges,omitempty"`

	LastActiveAt time.Time `json:"last_active_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
