package models

import (
	"time"

	"github.com/google/uuid"
)

// Session mirrors an issued credential. Token verification is stateless; the
// row exists for inspection, manual revocation, and cleanup of expired
// credentials.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"` // the token's jti
	UserID    uuid.UUID `gorm:"not null;index" json:"user_id"`
	IssuedAt  time.Time `gorm:"not null" json:"issued_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`

	CreatedAt time.Time `json:"-"`
}
