package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BadgeFirstSteps      = "First Steps"
	BadgeSocialStar      = "Social Star"
	BadgeSocialButterfly = "Social Butterfly"
)

type Badge struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"size:255;not null;unique" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	IconURL     string    `gorm:"size:255;not null" json:"icon_url"`
	CreatedAt   time.Time `json:"-"`
}

// UserBadge is an awarded instance. The unique pair index makes awarding
// idempotent per badge name per user.
type UserBadge struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	UserID  uuid.UUID `gorm:"not null;uniqueIndex:idx_user_badge" json:"-"`
	BadgeID uuid.UUID `gorm:"not null;uniqueIndex:idx_user_badge" json:"-"`

	Badge Badge `gorm:"foreignkey:BadgeID" json:"badge"`

	AwardedAt time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}
