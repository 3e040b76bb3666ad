package utils

import (
	"strings"
	"testing"

	"github.com/Antzgech/makeda_quest/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRandomInviteCodeShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := randomInviteCode()
		if err != nil {
			t.Fatalf("randomInviteCode failed: %v", err)
		}
		if len(code) != inviteCodeLength {
			t.Fatalf("len(code) = %d, want %d", len(code), inviteCodeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(inviteCodeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		seen[code] = true
	}
	if len(seen) < 99 {
		t.Errorf("only %d distinct codes in 100 draws", len(seen))
	}
}

func TestGenerateUniqueInviteCodeAvoidsTaken(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:gentest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	taken := "TAKEN123"
	existing := models.User{TelegramID: 1, InviteCode: &taken}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	code, err := GenerateUniqueInviteCode(db)
	if err != nil {
		t.Fatalf("GenerateUniqueInviteCode failed: %v", err)
	}
	if code == taken {
		t.Errorf("generated code collides with an existing one: %q", code)
	}

	var clash models.User
	err = db.Where("invite_code = ?", code).First(&clash).Error
	if err != gorm.ErrRecordNotFound {
		t.Errorf("fresh code already present in the user table: %v", err)
	}
}
