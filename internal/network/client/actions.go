package client

import (
	"time"

	"github.com/jindou-games/doudizhu-arena/internal/protocol"
)

// --- 便捷方法 ---

// StartRound 开始新一局
func (c *Client) StartRound(playerName string) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgStartRound, protocol.StartRoundPayload{
		PlayerName: playerName,
	}))
}

// PlayCards 出牌
func (c *Client) PlayCards(cards []protocol.CardInfo) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPlayCards, protocol.PlayCardsPayload{
		Cards: cards,
	}))
}

// Pass 不出
func (c *Client) Pass() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPass, nil))
}

// Hint 请求提示
func (c *Client) Hint() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgHint, nil))
}

// LeaveRound 放弃本局
func (c *Client) LeaveRound() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgLeaveRound, nil))
}

// GetStats 获取个人统计
func (c *Client) GetStats() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGetStats, nil))
}

// GetLeaderboard 获取排行榜
func (c *Client) GetLeaderboard(leaderboardType string, offset, limit int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{
		Type:   leaderboardType,
		Offset: offset,
		Limit:  limit,
	}))
}

// GetTransactions 获取最近的积分流水
func (c *Client) GetTransactions(limit int) error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgGetTransactions, protocol.GetTransactionsPayload{
		Limit: limit,
	}))
}

// Ping 发送心跳
func (c *Client) Ping() error {
	return c.SendMessage(protocol.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}
