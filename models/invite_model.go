package models

import (
	"time"

	"github.com/google/uuid"
)

// Invite is an audit row recorded per invite credit. The ledger does not
// verify that the invited party is a real distinct new user; that check
// belongs to the caller (the bot front door passes along what it saw).
type Invite struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReferrerID    uuid.UUID `gorm:"not null;index" json:"referrer_id"`
	InvitedUserID string    `gorm:"size:64" json:"invited_user_id"`
	BonusPoints   int       `gorm:"not null" json:"bonus_points"`

	CreatedAt time.Time `json:"created_at"`
}
