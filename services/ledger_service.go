package services

import (
	"errors"
	"log"

	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadyCompleted = errors.New("task already completed")
)

const socialStarThreshold = 5

type CompletionResult struct {
	AwardedPoints int      `json:"awarded_points"`
	TotalPoints   int      `json:"total_points"`
	NewBadges     []string `json:"new_badges"`
}

// FindTask resolves a catalog entry by id or slug.
func FindTask(ref string) (*models.Task, error) {
	var task models.Task
	err := database.DB.Where("id = ? OR slug = ?", ref, ref).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// CompleteTask records a task completion for the user and awards its points
// exactly once. The user row is locked for the duration of the transaction so
// two racing completions of the same task cannot both award; the unique
// (user_id, task_id) index backstops the check.
func CompleteTask(userID uuid.UUID, taskRef string) (*CompletionResult, error) {
	task, err := FindTask(taskRef)
	if err != nil {
		return nil, err
	}

	var result CompletionResult
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.TaskCompletion{}).
			Where("user_id = ? AND task_id = ?", userID, task.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyCompleted
		}

		completion := models.TaskCompletion{
			UserID: userID,
			TaskID: task.ID,
			Points: task.Points,
		}
		if err := tx.Create(&completion).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyCompleted
			}
			return err
		}

		user.Points += task.Points
		user.Coins += task.Points
		if user.LevelScores == nil {
			user.LevelScores = models.LevelScores{}
		}
		user.LevelScores[user.CurrentLevel] += task.Points

		newBadges, err := evaluateCompletionBadges(tx, &user)
		if err != nil {
			return err
		}

		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		result = CompletionResult{
			AwardedPoints: task.Points,
			TotalPoints:   user.Points,
			NewBadges:     newBadges,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🏆 Task completed: user=%s task=%s points=%d", userID, task.ID, task.Points)
	return &result, nil
}

// evaluateCompletionBadges applies the badge rules in fixed order and returns
// only the names newly awarded in this call.
func evaluateCompletionBadges(tx *gorm.DB, user *models.User) ([]string, error) {
	var newBadges []string

	var totalCompleted int64
	if err := tx.Model(&models.TaskCompletion{}).
		Where("user_id = ?", user.ID).
		Count(&totalCompleted).Error; err != nil {
		return nil, err
	}

	if totalCompleted >= 1 {
		awarded, err := awardBadge(tx, user.ID, models.BadgeFirstSteps)
		if err != nil {
			return nil, err
		}
		if awarded {
			newBadges = append(newBadges, models.BadgeFirstSteps)
		}
	}

	var socialCompleted int64
	if err := tx.Model(&models.TaskCompletion{}).
		Joins("JOIN tasks ON tasks.id = task_completions.task_id").
		Where("task_completions.user_id = ? AND tasks.type IN ?", user.ID, []models.TaskType{
			models.TaskTypeYouTube,
			models.TaskTypeTelegram,
			models.TaskTypeFacebook,
			models.TaskTypeTikTok,
			models.TaskTypeInstagram,
		}).
		Count(&socialCompleted).Error; err != nil {
		return nil, err
	}

	if socialCompleted >= socialStarThreshold {
		awarded, err := awardBadge(tx, user.ID, models.BadgeSocialStar)
		if err != nil {
			return nil, err
		}
		if awarded {
			newBadges = append(newBadges, models.BadgeSocialStar)
		}
	}

	return newBadges, nil
}

// awardBadge grants a badge by name if the user does not already hold it.
// Re-checking a held badge is a no-op.
func awardBadge(tx *gorm.DB, userID uuid.UUID, name string) (bool, error) {
	var badge models.Badge
	if err := tx.Where("name = ?", name).First(&badge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("⚠️ Badge %q missing from catalog, skipping award", name)
			return false, nil
		}
		return false, err
	}

	var held int64
	if err := tx.Model(&models.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", userID, badge.ID).
		Count(&held).Error; err != nil {
		return false, err
	}
	if held > 0 {
		return false, nil
	}

	userBadge := models.UserBadge{
		UserID:  userID,
		BadgeID: badge.ID,
	}
	if err := tx.Create(&userBadge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}

	log.Printf("🎖️ Badge awarded: %s → %s", name, userID)
	return true, nil
}
