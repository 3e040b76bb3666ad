package services

import (
	"errors"
	"testing"

	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/models"
)

func TestLevelProgressPercentClamped(t *testing.T) {
	cases := []struct {
		score, level, want int
	}{
		{0, 1, 0},
		{500, 1, 50},
		{1000, 1, 100},
		{4200, 1, 100}, // overshoot clamps, never overflows
		{749, 2, 50},   // 49.93 rounds to 50
		{2500, 6, 50},
		{100, 0, 0}, // unknown level
	}

	for _, tc := range cases {
		if got := LevelProgressPercent(tc.score, tc.level); got != tc.want {
			t.Errorf("LevelProgressPercent(%d, %d) = %d, want %d", tc.score, tc.level, got, tc.want)
		}
	}
}

func TestComputeRequirements(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, 600)

	requirements, err := ComputeRequirements(database.DB, user)
	if err != nil {
		t.Fatalf("ComputeRequirements failed: %v", err)
	}
	if requirements.Friends || requirements.Subscriptions || requirements.Follows {
		t.Fatalf("fresh user requirements = %+v, want all false", requirements)
	}

	// Three subscription-type tasks and the telegram follow.
	for _, taskID := range []string{"1", "3", "4", "2"} {
		if _, err := CompleteTask(user.ID, taskID); err != nil {
			t.Fatalf("completion of task %s failed: %v", taskID, err)
		}
	}

	for i := 0; i < 5; i++ {
		if _, err := RecordInvite(user.ID, "friend"); err != nil {
			t.Fatalf("invite %d failed: %v", i, err)
		}
	}

	fresh := reloadUser(t, user)
	requirements, err = ComputeRequirements(database.DB, fresh)
	if err != nil {
		t.Fatalf("ComputeRequirements failed: %v", err)
	}
	if !requirements.Friends {
		t.Error("friends requirement not met after 5 invites")
	}
	if !requirements.Subscriptions {
		t.Error("subscriptions requirement not met after 3 subscription tasks")
	}
	if !requirements.Follows {
		t.Error("follows requirement not met after telegram task")
	}
	if !requirements.AllMet() {
		t.Error("AllMet() = false, want true")
	}
}

func TestLevelSummaries(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, 601)

	summaries := LevelSummaries(user)
	if len(summaries) != MaxLevel {
		t.Fatalf("len(summaries) = %d, want %d", len(summaries), MaxLevel)
	}
	if !summaries[0].Unlocked {
		t.Error("level 1 must always be unlocked")
	}
	for _, summary := range summaries[1:] {
		if summary.Unlocked {
			t.Errorf("level %d unlocked for a level-1 user", summary.Level)
		}
	}
}

func TestAdvanceLevelGate(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, 602)

	_, err := AdvanceLevel(user.ID)
	if !errors.Is(err, ErrLevelRequirementsNotMet) {
		t.Fatalf("advance on fresh user = %v, want ErrLevelRequirementsNotMet", err)
	}

	// Meet the requirements and fill the level-1 score.
	for _, taskID := range []string{"1", "2", "3", "4"} {
		if _, err := CompleteTask(user.ID, taskID); err != nil {
			t.Fatalf("completion failed: %v", err)
		}
	}
	for i := 0; i < 5; i++ {
		if _, err := RecordInvite(user.ID, "friend"); err != nil {
			t.Fatalf("invite failed: %v", err)
		}
	}

	fresh := reloadUser(t, user)
	fresh.LevelScores = models.LevelScores{1: LevelMaxScores[1]}
	if err := database.DB.Save(fresh).Error; err != nil {
		t.Fatalf("failed to fill level score: %v", err)
	}

	advanced, err := AdvanceLevel(user.ID)
	if err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	if advanced.CurrentLevel != 2 {
		t.Errorf("current level = %d, want 2", advanced.CurrentLevel)
	}
}

func TestSetLevelNeverDecreases(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, 603)

	if _, err := SetLevel(user.ID, 4); err != nil {
		t.Fatalf("SetLevel failed: %v", err)
	}

	_, err := SetLevel(user.ID, 2)
	if !errors.Is(err, ErrLevelDowngrade) {
		t.Fatalf("downgrade error = %v, want ErrLevelDowngrade", err)
	}

	_, err = SetLevel(user.ID, 9)
	if !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("out-of-range error = %v, want ErrInvalidLevel", err)
	}
}
