package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/models"
)

func seedRankedUser(t *testing.T, telegramID int64, points, level int, levelScores models.LevelScores, createdAt time.Time) *models.User {
	t.Helper()

	user := models.User{
		TelegramID:   telegramID,
		Username:     fmt.Sprintf("ranked%d", telegramID),
		Points:       points,
		CurrentLevel: level,
		LevelScores:  levelScores,
		LastActiveAt: createdAt,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed ranked user: %v", err)
	}
	// CreatedAt is the ranking tiebreaker; pin it explicitly.
	if err := database.DB.Model(&user).Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("failed to pin created_at: %v", err)
	}
	user.CreatedAt = createdAt
	return &user
}

func TestGlobalRankingOrder(t *testing.T) {
	setupTestDB(t)

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	a := seedRankedUser(t, 700, 500, 1, nil, t1)
	b := seedRankedUser(t, 701, 500, 1, nil, t0)
	c := seedRankedUser(t, 702, 300, 1, nil, t0)

	entries, err := GlobalRanking()
	if err != nil {
		t.Fatalf("GlobalRanking failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	wantOrder := []int64{b.TelegramID, a.TelegramID, c.TelegramID}
	users := map[string]int64{
		a.Username: a.TelegramID,
		b.Username: b.TelegramID,
		c.Username: c.TelegramID,
	}
	for i, entry := range entries {
		if users[entry.Username] != wantOrder[i] {
			t.Errorf("rank %d = %s, want telegram id %d", i+1, entry.Username, wantOrder[i])
		}
		if entry.Rank != i+1 {
			t.Errorf("entry.Rank = %d, want %d", entry.Rank, i+1)
		}
		if !entry.Finalist {
			t.Errorf("entry %d not flagged finalist within top 30", i)
		}
	}

	for i := 1; i < len(entries); i++ {
		if entries[i-1].Points < entries[i].Points {
			t.Errorf("ordering violated at index %d: %d < %d", i, entries[i-1].Points, entries[i].Points)
		}
	}
}

func TestLevelRankingScopeAndLimit(t *testing.T) {
	setupTestDB(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		seedRankedUser(t, int64(800+i), 100, 2, models.LevelScores{2: 10 * (i + 1)}, base.Add(time.Duration(i)*time.Minute))
	}
	// Below the requested level, must not appear.
	seedRankedUser(t, 899, 9999, 1, models.LevelScores{1: 9999}, base)

	entries, err := LevelRanking(2)
	if err != nil {
		t.Fatalf("LevelRanking failed: %v", err)
	}
	if len(entries) != 10 {
		t.Fatalf("len(entries) = %d, want 10", len(entries))
	}
	if entries[0].Points != 120 {
		t.Errorf("top level score = %d, want 120", entries[0].Points)
	}
	for i, entry := range entries {
		wantFinalist := i < 5
		if entry.Finalist != wantFinalist {
			t.Errorf("entry %d finalist = %v, want %v", i, entry.Finalist, wantFinalist)
		}
	}

	if _, err := LevelRanking(7); err != ErrInvalidLevel {
		t.Errorf("LevelRanking(7) error = %v, want ErrInvalidLevel", err)
	}
}

func TestFinalistSetDedupAndBound(t *testing.T) {
	setupTestDB(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// One user qualifying at every level: must appear once, at level 6.
	multi := seedRankedUser(t, 900, 1000, 6, models.LevelScores{1: 100, 2: 100, 3: 100, 4: 100, 5: 100, 6: 100}, base)

	// Fill level 1 with qualifiers.
	for i := 0; i < 8; i++ {
		seedRankedUser(t, int64(910+i), 50, 1, models.LevelScores{1: 10 * (i + 1)}, base.Add(time.Duration(i)*time.Minute))
	}

	finalists, err := FinalistSet()
	if err != nil {
		t.Fatalf("FinalistSet failed: %v", err)
	}
	if len(finalists) > 30 {
		t.Fatalf("len(finalists) = %d, want at most 30", len(finalists))
	}

	appearances := 0
	for _, finalist := range finalists {
		if finalist.Username == multi.Username {
			appearances++
			if finalist.Level != 6 {
				t.Errorf("multi-level qualifier assigned level %d, want 6", finalist.Level)
			}
		}
	}
	if appearances != 1 {
		t.Errorf("multi-level qualifier appears %d times, want exactly once", appearances)
	}
}
