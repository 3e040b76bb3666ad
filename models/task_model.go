package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskType string

const (
	TaskTypeYouTube   TaskType = "youtube"
	TaskTypeTelegram  TaskType = "telegram"
	TaskTypeFacebook  TaskType = "facebook"
	TaskTypeTikTok    TaskType = "tiktok"
	TaskTypeInstagram TaskType = "instagram"
	TaskTypeInvite    TaskType = "invite"
)

// IsSocial reports whether completing a task of this type counts toward the
// "Social Star" badge.
func (t TaskType) IsSocial() bool {
	switch t {
	case TaskTypeYouTube, TaskTypeTelegram, TaskTypeFacebook, TaskTypeTikTok, TaskTypeInstagram:
		return true
	}
	return false
}

// IsSubscription reports whether a task of this type counts toward the
// level-requirement subscription count.
func (t TaskType) IsSubscription() bool {
	switch t {
	case TaskTypeYouTube, TaskTypeFacebook, TaskTypeTikTok, TaskTypeInstagram:
		return true
	}
	return false
}

// Task is an immutable catalog entry. The catalog is seeded once at startup;
// completion state lives on TaskCompletion rows, never on the task itself.
type Task struct {
	ID        string   `gorm:"primary_key;size:32" json:"id"`
	Slug      string   `gorm:"size:64;uniqueIndex" json:"slug"`
	Type      TaskType `gorm:"size:20;not null" json:"type"`
	Title     string   `gorm:"size:255;not null" json:"title"`
	Points    int      `gorm:"not null" json:"points"`
	TargetURL *string  `gorm:"size:512" json:"target_url,omitempty"`
	Icon      string   `gorm:"size:64" json:"icon"`
	Position  int      `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"-"`
}

// TaskCompletion is one ledger row per (user, task). The unique index is the
// storage-level guarantee that a task is awarded at most once.
type TaskCompletion struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"not null;uniqueIndex:idx_user_task" json:"user_id"`
	TaskID string    `gorm:"size:32;not null;uniqueIndex:idx_user_task" json:"task_id"`
	Points int       `gorm:"not null" json:"points"`

	Task Task `gorm:"foreignkey:TaskID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
