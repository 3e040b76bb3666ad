package services

import (
	"errors"
	"time"

	config "github.com/Antzgech/makeda_quest/configs"
	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// SessionLifetime is fixed at 30 days.
const SessionLifetime = 30 * 24 * time.Hour

var (
	ErrExpiredCredential   = errors.New("credential expired")
	ErrInvalidSignature    = errors.New("credential signature invalid")
	ErrMalformedCredential = errors.New("credential malformed")
	ErrSessionNotFound     = errors.New("session not found")
)

func sessionSigningKey() []byte {
	return []byte(config.Config("JWT_SECRET"))
}

// IssueSession signs a 30-day credential for the user and records a session
// row for inspection and manual revocation. The token is verifiable without
// the row.
func IssueSession(user *models.User) (string, error) {
	jti := uuid.New()
	now := time.Now()
	expiresAt := now.Add(SessionLifetime)

	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"telegram_id": user.TelegramID,
		"role":        "user",
		"jti":         jti.String(),
		"iat":         now.Unix(),
		"exp":         expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(sessionSigningKey())
	if err != nil {
		return "", err
	}

	session := models.Session{
		ID:        jti,
		UserID:    user.ID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}
	if err := database.DB.Create(&session).Error; err != nil {
		return "", err
	}

	return signed, nil
}

// IssueAdminToken signs a short-lived credential carrying the admin role.
func IssueAdminToken(admin *models.AdminUser) (string, error) {
	claims := jwt.MapClaims{
		"user_id": admin.ID.String(),
		"role":    "admin",
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sessionSigningKey())
}

// VerifySession validates a credential and returns the user ID it binds.
// Pure function of the token and the signing key; it never touches storage.
func VerifySession(credential string) (uuid.UUID, error) {
	token, err := jwt.Parse(credential, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return sessionSigningKey(), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, ErrExpiredCredential
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return uuid.Nil, ErrInvalidSignature
		default:
			return uuid.Nil, ErrMalformedCredential
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrMalformedCredential
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, ErrMalformedCredential
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, ErrMalformedCredential
	}

	return userID, nil
}

// SessionRevoked reports whether the session row behind a jti has been
// manually invalidated. Missing rows are not treated as revoked so that
// verification stays usable without the table.
func SessionRevoked(jti uuid.UUID) bool {
	var session models.Session
	if err := database.DB.First(&session, "id = ?", jti).Error; err != nil {
		return false
	}
	return session.Revoked
}

// RevokeSession marks a session row invalid.
func RevokeSession(jti uuid.UUID) error {
	result := database.DB.Model(&models.Session{}).Where("id = ?", jti).Update("revoked", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}
