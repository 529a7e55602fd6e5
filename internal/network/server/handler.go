package server

import (
	"context"
	"log"
	"time"

	"github.com/jindou-games/doudizhu-arena/internal/protocol"
	"github.com/jindou-games/doudizhu-arena/internal/storage"
)

// Handler 消息处理器
type Handler struct {
	server *Server
}

// NewHandler 创建处理器
func NewHandler(s *Server) *Handler {
	return &Handler{server: s}
}

// Handle 处理消息
func (h *Handler) Handle(client *Client, msg *protocol.Message) {
	switch msg.Type {
	// 连接操作
	case protocol.MsgPing:
		h.handlePing(client, msg)

	// 对局操作
	case protocol.MsgStartRound:
		h.handleStartRound(client, msg)
	case protocol.MsgPlayCards:
		h.handlePlayCards(client, msg)
	case protocol.MsgPass:
		h.handlePass(client)
	case protocol.MsgHint:
		h.handleHint(client)
	case protocol.MsgLeaveRound:
		h.handleLeaveRound(client)

	// 统计与排行榜
	case protocol.MsgGetStats:
		h.handleGetStats(client)
	case protocol.MsgGetLeaderboard:
		h.handleGetLeaderboard(client, msg)
	case protocol.MsgGetTransactions:
		h.handleGetTransactions(client, msg)

	default:
		log.Printf("未知消息类型: %s", msg.Type)
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
	}
}

// handlePing 处理心跳消息
func (h *Handler) handlePing(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleStartRound 开新一局：一个连接同时只能有一局
func (h *Handler) handleStartRound(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.StartRoundPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	// 玩家可以带自己的名字进场，积分账户跟名字走
	if payload.PlayerName != "" && payload.PlayerName != client.Name {
		user, err := h.server.credits.GetOrCreateUser(payload.PlayerName)
		if err != nil {
			sendGameError(client, err)
			return
		}
		client.Name = payload.PlayerName
		client.UserID = user.ID
	}

	if arena := client.GetArena(); arena != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeRoundActive))
		return
	}

	arena := NewArena(h.server, client)
	if err := arena.Start(); err != nil {
		sendGameError(client, err)
		return
	}
	client.SetArena(arena)

	log.Printf("🎮 玩家 %s 开局", client.Name)
}

// handlePlayCards 处理人类出牌
func (h *Handler) handlePlayCards(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PlayCardsPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	arena := client.GetArena()
	if arena == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNoActiveRound))
		return
	}

	if err := arena.HumanPlay(protocol.InfosToCards(payload.Cards)); err != nil {
		sendGameError(client, err)
	}
}

// handlePass 处理人类不出
func (h *Handler) handlePass(client *Client) {
	arena := client.GetArena()
	if arena == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNoActiveRound))
		return
	}

	if err := arena.HumanPass(); err != nil {
		sendGameError(client, err)
	}
}

// handleHint 处理提示请求
func (h *Handler) handleHint(client *Client) {
	arena := client.GetArena()
	if arena == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNoActiveRound))
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgHintResult, protocol.HintResultPayload{
		Cards: protocol.CardsToInfos(arena.Hint()),
	}))
}

// handleLeaveRound 处理中途离开
func (h *Handler) handleLeaveRound(client *Client) {
	arena := client.GetArena()
	if arena == nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeNoActiveRound))
		return
	}

	arena.Abandon()
	client.SetArena(nil)
}

// handleGetStats 查询个人战绩
func (h *Handler) handleGetStats(client *Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := h.server.leaderboard.GetPlayerStats(ctx, client.UserID)
	if err != nil {
		sendGameError(client, err)
		return
	}
	if stats == nil {
		// 一局没打过的玩家：返回全零战绩
		stats = &storage.PlayerStats{}
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
		TotalGames:    stats.TotalGames,
		Wins:          stats.Wins,
		Losses:        stats.Losses,
		LandlordGames: stats.LandlordGames,
		LandlordWins:  stats.LandlordWins,
		Score:         stats.Score,
		CurrentStreak: stats.CurrentStreak,
	}))
}

// handleGetLeaderboard 查询排行榜
func (h *Handler) handleGetLeaderboard(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.GetLeaderboardPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if payload.Limit <= 0 || payload.Limit > 100 {
		payload.Limit = 10
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries, err := h.server.leaderboard.GetLeaderboard(ctx, payload.Type, payload.Offset, payload.Limit)
	if err != nil {
		sendGameError(client, err)
		return
	}

	infos := make([]protocol.LeaderboardEntryInfo, len(entries))
	for i, e := range entries {
		infos[i] = protocol.LeaderboardEntryInfo{
			Rank:       e.Rank,
			PlayerName: e.PlayerName,
			Score:      e.Score,
			Wins:       e.Wins,
			WinRate:    e.WinRate,
		}
	}
	client.SendMessage(protocol.MustNewMessage(protocol.MsgLeaderboardResult, protocol.LeaderboardResultPayload{
		Type:    payload.Type,
		Entries: infos,
	}))
}

// handleGetTransactions 查询最近的积分流水
func (h *Handler) handleGetTransactions(client *Client, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.GetTransactionsPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if payload.Limit <= 0 || payload.Limit > 100 {
		payload.Limit = 10
	}

	txs, err := h.server.credits.Transactions(client.UserID, payload.Limit)
	if err != nil {
		sendGameError(client, err)
		return
	}

	infos := make([]protocol.TransactionInfo, len(txs))
	for i, tx := range txs {
		infos[i] = protocol.TransactionInfo{
			Amount:    tx.Amount,
			Reason:    tx.Reason,
			CreatedAt: tx.CreatedAt.Unix(),
		}
	}
	client.SendMessage(protocol.MustNewMessage(protocol.MsgTransactionsResult, protocol.TransactionsResultPayload{
		Entries: infos,
	}))
}
