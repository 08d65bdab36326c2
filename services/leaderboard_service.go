// services/leaderboard_service.go - Global and group leaderboards
package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"predictplay/models"
	"predictplay/utils"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	globalLeaderboardKey   = "leaderboard:global"
	leaderboardCacheTTL    = 30 * time.Second
	defaultLeaderboardSize = 100
)

type LeaderboardService struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewLeaderboardService(db *gorm.DB, cache *redis.Client) *LeaderboardService {
	return &LeaderboardService{db: db, cache: cache}
}

// LeaderboardEntry is one leaderboard row ready for display.
type LeaderboardEntry struct {
	Rank               int    `json:"rank"`
	RankLabel          string `json:"rank_label"`
	UserID             uint   `json:"user_id"`
	Username           string `json:"username"`
	Avatar             string `json:"avatar,omitempty"`
	TotalPoints        int    `json:"total_points"`
	TotalPredictions   int    `json:"total_predictions"`
	CorrectPredictions int    `json:"correct_predictions"`
	Accuracy           int    `json:"accuracy"`
}

// Global returns the top of the global leaderboard. The default page is
// cached in Redis for a short TTL; the cache is dropped after every scoring
// pass.
func (s *LeaderboardService) Global(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > defaultLeaderboardSize {
		limit = defaultLeaderboardSize
	}

	cacheable := limit == defaultLeaderboardSize
	ctx := context.Background()

	if cacheable && s.cache != nil {
		if data, err := s.cache.Get(ctx, globalLeaderboardKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(data), &entries) == nil {
				return entries, nil
			}
		} else if err != redis.Nil {
			log.Printf("leaderboard cache read failed: %v", err)
		}
	}

	var users []models.User
	err := s.db.Where("is_guest = ?", false).
		Order("total_points DESC, correct_predictions DESC, total_predictions ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		rank := i + 1
		entries[i] = LeaderboardEntry{
			Rank:               rank,
			RankLabel:          utils.RankLabel(rank),
			UserID:             u.ID,
			Username:           u.Username,
			Avatar:             u.Avatar,
			TotalPoints:        u.TotalPoints,
			TotalPredictions:   u.TotalPredictions,
			CorrectPredictions: u.CorrectPredictions,
			Accuracy:           utils.Accuracy(u.CorrectPredictions, u.TotalPredictions),
		}
	}

	if cacheable && s.cache != nil {
		if data, err := json.Marshal(entries); err == nil {
			if err := s.cache.Set(ctx, globalLeaderboardKey, data, leaderboardCacheTTL).Err(); err != nil {
				log.Printf("leaderboard cache write failed: %v", err)
			}
		}
	}

	return entries, nil
}

// Invalidate drops the cached global leaderboard. Called after scoring.
func (s *LeaderboardService) Invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(context.Background(), globalLeaderboardKey).Err(); err != nil {
		log.Printf("leaderboard cache invalidation failed: %v", err)
	}
}

// Group returns a group's isolated leaderboard from its stats rows.
func (s *LeaderboardService) Group(groupID uint, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > defaultLeaderboardSize {
		limit = defaultLeaderboardSize
	}

	var stats []models.GroupStat
	err := s.db.Where("group_id = ?", groupID).
		Order("total_points DESC, correct_predictions DESC").
		Limit(limit).
		Find(&stats).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(stats))
	for i, st := range stats {
		rank := i + 1
		entries[i] = LeaderboardEntry{
			Rank:               rank,
			RankLabel:          utils.RankLabel(rank),
			UserID:             st.UserID,
			Username:           st.Username,
			TotalPoints:        st.TotalPoints,
			TotalPredictions:   st.TotalPredictions,
			CorrectPredictions: st.CorrectPredictions,
			Accuracy:           utils.Accuracy(st.CorrectPredictions, st.TotalPredictions),
		}
	}
	return entries, nil
}

// UserRank returns a user's global rank by points.
func (s *LeaderboardService) UserRank(userID uint) (int64, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return 0, err
	}

	var rank int64
	err := s.db.Raw(`
		SELECT COUNT(*) + 1 FROM users
		WHERE is_guest = false
		  AND (total_points > ?
		    OR (total_points = ? AND correct_predictions > ?))
	`, user.TotalPoints, user.TotalPoints, user.CorrectPredictions).Scan(&rank).Error
	return rank, err
}
