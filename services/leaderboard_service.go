package services

import (
	"sort"

	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/models"
	"github.com/google/uuid"
)

const (
	globalLimit         = 50
	globalFinalistCount = 30
	levelLimit          = 10
	levelFinalistCount  = 5
	finalistSetLimit    = 30
)

type LeaderboardEntry struct {
	Rank       int       `json:"rank"`
	UserID     uuid.UUID `json:"user_id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	AvatarURL  *string   `json:"avatar_url"`
	Points     int       `json:"points"`
	BadgeCount int       `json:"badge_count"`
	Finalist   bool      `json:"finalist"`
}

type FinalistEntry struct {
	LeaderboardEntry
	Level int `json:"level"`
}

// GlobalRanking returns the top 50 by points, ties broken by earliest
// creation. The first 30 are finalists. Always computed fresh from the user
// table.
func GlobalRanking() ([]LeaderboardEntry, error) {
	var users []models.User
	err := database.DB.
		Order("points DESC, created_at ASC").
		Limit(globalLimit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	badgeCounts, err := badgeCountsFor(users)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:       i + 1,
			UserID:     user.ID,
			Username:   user.Username,
			FirstName:  user.FirstName,
			AvatarURL:  user.AvatarURL,
			Points:     user.Points,
			BadgeCount: badgeCounts[user.ID],
			Finalist:   i < globalFinalistCount,
		})
	}
	return entries, nil
}

// LevelRanking scopes to users who have reached the level and orders by that
// level's score. Top 10 returned, first 5 flagged finalist.
func LevelRanking(level int) ([]LeaderboardEntry, error) {
	if level < 1 || level > MaxLevel {
		return nil, ErrInvalidLevel
	}

	users, err := usersAtLeast(level)
	if err != nil {
		return nil, err
	}
	sortByLevelScore(users, level)

	if len(users) > levelLimit {
		users = users[:levelLimit]
	}

	badgeCounts, err := badgeCountsFor(users)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, LeaderboardEntry{
			Rank:       i + 1,
			UserID:     user.ID,
			Username:   user.Username,
			FirstName:  user.FirstName,
			AvatarURL:  user.AvatarURL,
			Points:     user.LevelScores.Score(level),
			BadgeCount: badgeCounts[user.ID],
			Finalist:   i < levelFinalistCount,
		})
	}
	return entries, nil
}

// FinalistSet gathers each level's top 5 by level score among users who have
// reached it. A user qualifying in several levels appears once, assigned to
// their highest qualifying level, and the set is capped at 30.
func FinalistSet() ([]FinalistEntry, error) {
	seen := make(map[uuid.UUID]bool)
	var finalists []FinalistEntry

	for level := MaxLevel; level >= 1; level-- {
		users, err := usersAtLeast(level)
		if err != nil {
			return nil, err
		}
		sortByLevelScore(users, level)

		taken := 0
		for _, user := range users {
			if taken >= levelFinalistCount {
				break
			}
			if seen[user.ID] {
				continue
			}
			seen[user.ID] = true
			taken++
			finalists = append(finalists, FinalistEntry{
				LeaderboardEntry: LeaderboardEntry{
					Rank:      taken,
					UserID:    user.ID,
					Username:  user.Username,
					FirstName: user.FirstName,
					AvatarURL: user.AvatarURL,
					Points:    user.LevelScores.Score(level),
					Finalist:  true,
				},
				Level: level,
			})
			if len(finalists) >= finalistSetLimit {
				return finalists, nil
			}
		}
	}
	return finalists, nil
}

func usersAtLeast(level int) ([]models.User, error) {
	var users []models.User
	err := database.DB.Where("current_level >= ?", level).Find(&users).Error
	return users, err
}

// sortByLevelScore orders by the level's score descending, earliest creation
// first on ties. Stable so repeated calls agree.
func sortByLevelScore(users []models.User, level int) {
	sort.SliceStable(users, func(i, j int) bool {
		si, sj := users[i].LevelScores.Score(level), users[j].LevelScores.Score(level)
		if si != sj {
			return si > sj
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
}

func badgeCountsFor(users []models.User) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(users))
	if len(users) == 0 {
		return counts, nil
	}

	ids := make([]uuid.UUID, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}

	type row struct {
		UserID uuid.UUID
		Count  int
	}
	var rows []row
	err := database.DB.Model(&models.UserBadge{}).
		Select("user_id, count(*) as count").
		Where("user_id IN ?", ids).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.UserID] = r.Count
	}
	return counts, nil
}
