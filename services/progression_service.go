package services

import (
	"errors"
	"log"
	"math"

	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const MaxLevel = 6

// LevelMaxScores is the fixed per-level score required before the level can
// be advanced past.
var LevelMaxScores = map[int]int{
	1: 1000,
	2: 1500,
	3: 2000,
	4: 2500,
	5: 3000,
	6: 5000,
}

const (
	friendsRequired       = 5
	subscriptionsRequired = 3
	followsRequired       = 1
)

var (
	ErrLevelRequirementsNotMet = errors.New("level requirements not met")
	ErrMaxLevelReached         = errors.New("max level reached")
	ErrLevelDowngrade          = errors.New("current level cannot decrease")
	ErrInvalidLevel            = errors.New("level out of range")
)

// LevelRequirements are advisory booleans surfaced to the client; they gate
// AdvanceLevel but nothing advances automatically.
type LevelRequirements struct {
	Friends       bool `json:"friends"`
	Subscriptions bool `json:"subscriptions"`
	Follows       bool `json:"follows"`
}

func (r LevelRequirements) AllMet() bool {
	return r.Friends && r.Subscriptions && r.Follows
}

type Progress struct {
	CurrentLevel         int               `json:"current_level"`
	LevelScore           int               `json:"level_score"`
	LevelMaxScore        int               `json:"level_max_score"`
	LevelProgressPercent int               `json:"level_progress_percent"`
	Requirements         LevelRequirements `json:"requirements"`
	UnlockedLevels       []int             `json:"unlocked_levels"`
}

type LevelSummary struct {
	Level     int  `json:"level"`
	MaxScore  int  `json:"max_score"`
	Score     int  `json:"score"`
	Unlocked  bool `json:"unlocked"`
	Completed bool `json:"completed"`
}

// LevelProgressPercent clamps to [0,100] even when the accumulated score
// overshoots the level's max.
func LevelProgressPercent(score, level int) int {
	max := LevelMaxScores[level]
	if max <= 0 {
		return 0
	}
	percent := int(math.Round(100 * float64(score) / float64(max)))
	if percent > 100 {
		return 100
	}
	if percent < 0 {
		return 0
	}
	return percent
}

// ComputeRequirements evaluates the three advancement requirements from the
// completion ledger and the invite counter.
func ComputeRequirements(db *gorm.DB, user *models.User) (LevelRequirements, error) {
	var subscriptions int64
	err := db.Model(&models.TaskCompletion{}).
		Joins("JOIN tasks ON tasks.id = task_completions.task_id").
		Where("task_completions.user_id = ? AND tasks.type IN ?", user.ID, []models.TaskType{
			models.TaskTypeYouTube,
			models.TaskTypeFacebook,
			models.TaskTypeTikTok,
			models.TaskTypeInstagram,
		}).
		Count(&subscriptions).Error
	if err != nil {
		return LevelRequirements{}, err
	}

	var follows int64
	err = db.Model(&models.TaskCompletion{}).
		Joins("JOIN tasks ON tasks.id = task_completions.task_id").
		Where("task_completions.user_id = ? AND tasks.type = ?", user.ID, models.TaskTypeTelegram).
		Count(&follows).Error
	if err != nil {
		return LevelRequirements{}, err
	}

	return LevelRequirements{
		Friends:       user.InvitedFriends >= friendsRequired,
		Subscriptions: subscriptions >= subscriptionsRequired,
		Follows:       follows >= followsRequired,
	}, nil
}

// ComputeProgress derives the read view for the stats endpoint.
func ComputeProgress(user *models.User) (*Progress, error) {
	requirements, err := ComputeRequirements(database.DB, user)
	if err != nil {
		return nil, err
	}

	unlocked := make([]int, 0, MaxLevel)
	for level := 1; level <= MaxLevel; level++ {
		if user.CurrentLevel >= level {
			unlocked = append(unlocked, level)
		}
	}

	score := user.LevelScores.Score(user.CurrentLevel)
	return &Progress{
		CurrentLevel:         user.CurrentLevel,
		LevelScore:           score,
		LevelMaxScore:        LevelMaxScores[user.CurrentLevel],
		LevelProgressPercent: LevelProgressPercent(score, user.CurrentLevel),
		Requirements:         requirements,
		UnlockedLevels:       unlocked,
	}, nil
}

// LevelSummaries returns one summary per level for the levels screen.
// Level 1 is always unlocked.
func LevelSummaries(user *models.User) []LevelSummary {
	summaries := make([]LevelSummary, 0, MaxLevel)
	for level := 1; level <= MaxLevel; level++ {
		score := user.LevelScores.Score(level)
		summaries = append(summaries, LevelSummary{
			Level:     level,
			MaxScore:  LevelMaxScores[level],
			Score:     score,
			Unlocked:  user.CurrentLevel >= level,
			Completed: score >= LevelMaxScores[level],
		})
	}
	return summaries
}

// AdvanceLevel moves the user to the next level once the current level's
// score is full and all three requirements hold. Advancement is explicit and
// player-initiated; nothing in the ledger advances levels on its own.
func AdvanceLevel(userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		if user.CurrentLevel >= MaxLevel {
			return ErrMaxLevelReached
		}

		score := user.LevelScores.Score(user.CurrentLevel)
		if score < LevelMaxScores[user.CurrentLevel] {
			return ErrLevelRequirementsNotMet
		}

		requirements, err := ComputeRequirements(tx, &user)
		if err != nil {
			return err
		}
		if !requirements.AllMet() {
			return ErrLevelRequirementsNotMet
		}

		user.CurrentLevel++
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("⬆️ Level advanced: user=%s level=%d", user.ID, user.CurrentLevel)
	return &user, nil
}

// SetLevel is the admin override. Levels never decrease.
func SetLevel(userID uuid.UUID, level int) (*models.User, error) {
	if level < 1 || level > MaxLevel {
		return nil, ErrInvalidLevel
	}

	var user models.User
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		if level < user.CurrentLevel {
			return ErrLevelDowngrade
		}

		user.CurrentLevel = level
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
