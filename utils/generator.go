package utils

import (
	"crypto/rand"
	"errors"

	"github.com/Antzgech/makeda_quest/models"
	"gorm.io/gorm"
)

const inviteCodeLength = 8
const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomInviteCode() (string, error) {
	b := make([]byte, inviteCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = inviteCodeAlphabet[int(b[i])%len(inviteCodeAlphabet)]
	}
	return string(b), nil
}

// GenerateUniqueInviteCode draws codes until one is free of the user table.
// The loop handles the rare collision; the unique column constraint is the
// storage-level backstop.
func GenerateUniqueInviteCode(tx *gorm.DB) (string, error) {
	for {
		code, err := randomInviteCode()
		if err != nil {
			return "", err
		}

		var user models.User
		err = tx.Where("invite_code = ?", code).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
}
