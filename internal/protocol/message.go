package protocol

import "encoding/json"

// Message 基础消息结构
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType 消息类型
type MessageType string

// 客户端 → 服务端 消息类型
const (
	MsgPing MessageType = "ping" // 心跳 ping

	MsgStartRound MessageType = "start_round" // 开始新一局（扣除入场积分）
	MsgPlayCards  MessageType = "play_cards"  // 出牌
	MsgPass       MessageType = "pass"        // 不出
	MsgHint       MessageType = "hint"        // 请求提示
	MsgLeaveRound MessageType = "leave_round" // 放弃本局返回大厅

	MsgGetStats        MessageType = "get_stats"        // 获取个人统计
	MsgGetLeaderboard  MessageType = "get_leaderboard"  // 获取排行榜
	MsgGetTransactions MessageType = "get_transactions" // 获取积分流水
)

// 服务端 → 客户端 消息类型
const (
	MsgConnected MessageType = "connected" // 连接成功
	MsgPong      MessageType = "pong"      // 心跳 pong

	MsgRoundStart  MessageType = "round_start"  // 发牌完成，进入叫分
	MsgLandlord    MessageType = "landlord"     // 地主确定
	MsgPlayTurn    MessageType = "play_turn"    // 轮到出牌
	MsgBotThinking MessageType = "bot_thinking" // 机器人思考中
	MsgCardPlayed  MessageType = "card_played"  // 有人出牌
	MsgPlayerPass  MessageType = "player_pass"  // 有人不出
	MsgRoundOver   MessageType = "round_over"   // 本局结束
	MsgHintResult  MessageType = "hint_result"  // 提示结果

	MsgCreditsUpdate      MessageType = "credits_update"      // 积分变动
	MsgStatsResult        MessageType = "stats_result"        // 个人统计结果
	MsgLeaderboardResult  MessageType = "leaderboard_result"  // 排行榜结果
	MsgTransactionsResult MessageType = "transactions_result" // 积分流水结果

	MsgError MessageType = "error" // 错误消息
)
