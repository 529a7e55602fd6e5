// Package storage 提供 Redis 后端的玩家统计和排行榜。
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	playerStatsKey    = "player:stats:"
	leaderboardKey    = "leaderboard:score"
	dailyLeaderboard  = "leaderboard:daily:"
	weeklyLeaderboard = "leaderboard:weekly:"
)

// PlayerStats 玩家统计数据
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`

	TotalGames int `json:"total_games"` // 总场次
	Wins       int `json:"wins"`        // 胜场
	Losses     int `json:"losses"`      // 败场

	// 地主/农民分开统计
	LandlordGames int `json:"landlord_games"`
	LandlordWins  int `json:"landlord_wins"`
	PeasantGames  int `json:"peasant_games"`
	PeasantWins   int `json:"peasant_wins"`

	Score int `json:"score"` // 当前积分

	CurrentStreak int `json:"current_streak"` // 正数为连胜，负数为连败
	MaxWinStreak  int `json:"max_win_streak"` // 最大连胜

	LastPlayedAt int64 `json:"last_played_at"`
	CreatedAt    int64 `json:"created_at"`
}

// 积分规则
const (
	WinAsLandlord  = 30  // 地主获胜
	WinAsPeasant   = 15  // 农民获胜
	LoseAsLandlord = -20 // 地主失败
	LoseAsPeasant  = -10 // 农民失败

	// 连胜加成
	StreakBonus3  = 5
	StreakBonus5  = 10
	StreakBonus10 = 20
)

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// LeaderboardManager 排行榜管理器
type LeaderboardManager struct {
	redis *redis.Client
}

// NewLeaderboardManager 创建排行榜管理器
func NewLeaderboardManager(client *redis.Client) *LeaderboardManager {
	return &LeaderboardManager{redis: client}
}

// GetPlayerStats 获取玩家统计，不存在时返回 nil
func (lm *LeaderboardManager) GetPlayerStats(ctx context.Context, playerID string) (*PlayerStats, error) {
	key := playerStatsKey + playerID
	data, err := lm.redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stats PlayerStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SavePlayerStats 保存玩家统计
func (lm *LeaderboardManager) SavePlayerStats(ctx context.Context, stats *PlayerStats) error {
	key := playerStatsKey + stats.PlayerID
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return lm.redis.Set(ctx, key, data, 0).Err()
}

// RecordGameResult 记录一局结果并刷新排行榜
func (lm *LeaderboardManager) RecordGameResult(ctx context.Context, playerID, playerName string, isLandlord, isWinner bool) error {
	stats, err := lm.GetPlayerStats(ctx, playerID)
	if err != nil {
		return err
	}
	if stats == nil {
		stats = &PlayerStats{
			PlayerID:  playerID,
			CreatedAt: time.Now().Unix(),
		}
	}

	// 名称可能已更改
	stats.PlayerName = playerName
	stats.TotalGames++
	stats.LastPlayedAt = time.Now().Unix()

	var scoreChange int

	if isLandlord {
		stats.LandlordGames++
	} else {
		stats.PeasantGames++
	}

	if isWinner {
		stats.Wins++
		if isLandlord {
			stats.LandlordWins++
			scoreChange = WinAsLandlord
		} else {
			stats.PeasantWins++
			scoreChange = WinAsPeasant
		}
		stats.CurrentStreak = max(1, stats.CurrentStreak+1)
	} else {
		stats.Losses++
		if isLandlord {
			scoreChange = LoseAsLandlord
		} else {
			scoreChange = LoseAsPeasant
		}
		stats.CurrentStreak = min(-1, stats.CurrentStreak-1)
	}

	// 连胜加成
	switch {
	case stats.CurrentStreak >= 10:
		scoreChange += StreakBonus10
	case stats.CurrentStreak >= 5:
		scoreChange += StreakBonus5
	case stats.CurrentStreak >= 3:
		scoreChange += StreakBonus3
	}

	if stats.CurrentStreak > stats.MaxWinStreak {
		stats.MaxWinStreak = stats.CurrentStreak
	}

	// 积分最低为 0
	stats.Score = max(0, stats.Score+scoreChange)

	if err := lm.SavePlayerStats(ctx, stats); err != nil {
		return err
	}
	return lm.updateLeaderboards(ctx, stats)
}

// updateLeaderboards 刷新总榜、日榜和周榜
func (lm *LeaderboardManager) updateLeaderboards(ctx context.Context, stats *PlayerStats) error {
	entry := redis.Z{
		Score:  float64(stats.Score),
		Member: stats.PlayerID,
	}

	if err := lm.redis.ZAdd(ctx, leaderboardKey, entry).Err(); err != nil {
		return err
	}

	dailyKey := dailyLeaderboard + time.Now().Format("2006-01-02")
	if err := lm.redis.ZAdd(ctx, dailyKey, entry).Err(); err != nil {
		return err
	}
	lm.redis.Expire(ctx, dailyKey, 48*time.Hour)

	year, week := time.Now().ISOWeek()
	weeklyKey := fmt.Sprintf("%s%d-W%02d", weeklyLeaderboard, year, week)
	if err := lm.redis.ZAdd(ctx, weeklyKey, entry).Err(); err != nil {
		return err
	}
	lm.redis.Expire(ctx, weeklyKey, 8*24*time.Hour)

	return nil
}

// GetLeaderboard 获取排行榜（total/daily/weekly），从高到低
func (lm *LeaderboardManager) GetLeaderboard(ctx context.Context, leaderboardType string, offset, limit int) ([]LeaderboardEntry, error) {
	key := leaderboardKey
	switch leaderboardType {
	case "daily":
		key = dailyLeaderboard + time.Now().Format("2006-01-02")
	case "weekly":
		year, week := time.Now().ISOWeek()
		key = fmt.Sprintf("%s%d-W%02d", weeklyLeaderboard, year, week)
	}

	results, err := lm.redis.ZRevRangeWithScores(ctx, key, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, result := range results {
		playerID, _ := result.Member.(string)

		stats, err := lm.GetPlayerStats(ctx, playerID)
		if err != nil || stats == nil {
			continue
		}

		winRate := 0.0
		if stats.TotalGames > 0 {
			winRate = float64(stats.Wins) / float64(stats.TotalGames) * 100
		}

		entries = append(entries, LeaderboardEntry{
			Rank:       offset + i + 1,
			PlayerID:   stats.PlayerID,
			PlayerName: stats.PlayerName,
			Score:      stats.Score,
			Wins:       stats.Wins,
			WinRate:    winRate,
		})
	}
	return entries, nil
}
