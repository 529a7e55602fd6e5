// Package credits 维护玩家积分账本：开局扣入场费、获胜发奖励，
// 每次变动都记一笔流水。账本只由对局事件驱动，规则引擎从不直接碰它。
package credits

import (
	"time"
)

const (
	// InitialCredits 新用户的初始积分
	InitialCredits = 200
	// GameCost 单局入场费
	GameCost = 50
	// WinReward 人类玩家获胜奖励
	WinReward = 100
)

// 流水原因
const (
	ReasonGameFee   = "game_fee"
	ReasonWinReward = "win_reward"
)

// User 账本中的用户
type User struct {
	ID        string
	Name      string
	Credits   int64
	CreatedAt time.Time
}

// Transaction 一笔积分流水
type Transaction struct {
	ID        int64
	UserID    string
	Amount    int64
	Reason    string
	CreatedAt time.Time
}

// Store 积分账本存储
type Store interface {
	Close() error
	Migrate() error

	// GetOrCreateUser 按名字取用户，不存在时以初始积分创建
	GetOrCreateUser(name string) (*User, error)
	// Balance 查询余额
	Balance(userID string) (int64, error)
	// Apply 原子地变动余额并记一笔流水；扣成负数时整笔拒绝
	Apply(userID string, change int64, reason string) (int64, error)
	// Transactions 按时间倒序返回最近的流水
	Transactions(userID string, limit int) ([]Transaction, error)
}
