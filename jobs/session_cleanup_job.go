package jobs

import (
	"log"
	"time"

	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/models"
)

// CleanupExpiredSessions drops session rows past expiry or already revoked.
// Token verification never reads these rows, so the purge is purely
// housekeeping.
func CleanupExpiredSessions() {
	log.Println("Running job: CleanupExpiredSessions...")

	result := database.DB.
		Where("expires_at < ? OR revoked = ?", time.Now(), true).
		Delete(&models.Session{})
	if result.Error != nil {
		log.Printf("Error cleaning up sessions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Purged %d expired sessions", result.RowsAffected)
	}
}
