package services

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-signing-secret")
	os.Exit(m.Run())
}

var testDBCounter int64

// setupTestDB points the global handle at a fresh in-memory database seeded
// with the task and badge catalogs.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskCompletion{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Invite{},
		&models.Session{},
		&models.AdminUser{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	database.DB = db
	database.SeedTasks(db)
	database.SeedBadges(db)
}

func createTestUser(t *testing.T, telegramID int64) *models.User {
	t.Helper()

	user, created, err := ResolveIdentity(IdentityAssertion{
		TelegramID: telegramID,
		Username:   fmt.Sprintf("player%d", telegramID),
		FirstName:  "Test",
	})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	if !created {
		t.Fatalf("expected a fresh user for telegram id %d", telegramID)
	}
	return user
}

func reloadUser(t *testing.T, user *models.User) *models.User {
	t.Helper()

	var fresh models.User
	if err := database.DB.First(&fresh, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	return &fresh
}

func badgeNames(t *testing.T, user *models.User) []string {
	t.Helper()

	var userBadges []models.UserBadge
	err := database.DB.Preload("Badge").
		Where("user_id = ?", user.ID).
		Order("awarded_at ASC").
		Find(&userBadges).Error
	if err != nil {
		t.Fatalf("failed to load badges: %v", err)
	}

	names := make([]string, 0, len(userBadges))
	for _, userBadge := range userBadges {
		names = append(names, userBadge.Badge.Name)
	}
	return names
}

func contains(names []string, want string) bool {
	for _, name := range names {
		if name == want {
			return true
		}
	}
	return false
}
