package database

import (
	"log"

	"github.com/Antzgech/makeda_quest/models"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func strPtr(s string) *string { return &s }

// taskCatalog is the fixed set of completable actions. Seeded once, never
// mutated at runtime.
var taskCatalog = []models.Task{
	{
		ID:        "1",
		Type:      models.TaskTypeYouTube,
		Title:     "Subscribe to Queen Makeda on YouTube",
		Points:    50,
		TargetURL: strPtr("https://www.youtube.com/@queenmakedaquest"),
		Icon:      "youtube",
		Position:  1,
	},
	{
		ID:        "2",
		Type:      models.TaskTypeTelegram,
		Title:     "Join the Queen Makeda Telegram channel",
		Points:    30,
		TargetURL: strPtr("https://t.me/queenmakedaquest"),
		Icon:      "telegram",
		Position:  2,
	},
	{
		ID:        "3",
		Type:      models.TaskTypeFacebook,
		Title:     "Follow Queen Makeda on Facebook",
		Points:    40,
		TargetURL: strPtr("https://www.facebook.com/queenmakedaquest"),
		Icon:      "facebook",
		Position:  3,
	},
	{
		ID:        "4",
		Type:      models.TaskTypeTikTok,
		Title:     "Follow Queen Makeda on TikTok",
		Points:    40,
		TargetURL: strPtr("https://www.tiktok.com/@queenmakedaquest"),
		Icon:      "tiktok",
		Position:  4,
	},
	{
		ID:        "5",
		Type:      models.TaskTypeInstagram,
		Title:     "Follow Queen Makeda on Instagram",
		Points:    40,
		TargetURL: strPtr("https://www.instagram.com/queenmakedaquest"),
		Icon:      "instagram",
		Position:  5,
	},
	{
		ID:       "6",
		Type:     models.TaskTypeInvite,
		Title:    "Invite 5 friends to the quest",
		Points:   100,
		Icon:     "invite",
		Position: 6,
	},
}

var badgeCatalog = []models.Badge{
	{
		Name:        models.BadgeFirstSteps,
		Description: "Completed your very first task",
		IconURL:     "/badges/first-steps.svg",
	},
	{
		Name:        models.BadgeSocialStar,
		Description: "Completed 5 social tasks",
		IconURL:     "/badges/social-star.svg",
	},
	{
		Name:        models.BadgeSocialButterfly,
		Description: "Invited 5 friends to the quest",
		IconURL:     "/badges/social-butterfly.svg",
	},
}

func SeedTasks(db *gorm.DB) {
	for _, task := range taskCatalog {
		task.Slug = slug.Make(task.Title)
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&task).Error
		if err != nil {
			log.Fatalf("🔥 Failed to seed task %s: %v", task.ID, err)
		}
	}
	log.Printf("✅ Task catalog seeded (%d tasks)", len(taskCatalog))
}

func SeedBadges(db *gorm.DB) {
	for _, badge := range badgeCatalog {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&badge).Error
		if err != nil {
			log.Fatalf("🔥 Failed to seed badge %s: %v", badge.Name, err)
		}
	}
	log.Printf("✅ Badge catalog seeded (%d badges)", len(badgeCatalog))
}
