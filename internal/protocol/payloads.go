package protocol

// --- 客户端请求 Payloads ---

// PingPayload 心跳请求
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // 客户端时间戳（毫秒）
}

// StartRoundPayload 开始对局请求
type StartRoundPayload struct {
	PlayerName string `json:"player_name,omitempty"`
}

// PlayCardsPayload 出牌请求
type PlayCardsPayload struct {
	Cards []CardInfo `json:"cards"`
}

// GetLeaderboardPayload 获取排行榜请求
type GetLeaderboardPayload struct {
	Type   string `json:"type"`   // total/daily/weekly
	Offset int    `json:"offset"` // 偏移量
	Limit  int    `json:"limit"`  // 数量
}

// GetTransactionsPayload 获取积分流水请求
type GetTransactionsPayload struct {
	Limit int `json:"limit"` // 数量
}

// --- 服务端响应 Payloads ---

// ConnectedPayload 连接成功响应
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Credits    int64  `json:"credits"`
}

// PongPayload 心跳响应
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// SeatInfo 座位上的玩家信息
type SeatInfo struct {
	Seat      int    `json:"seat"`
	Name      string `json:"name"`
	IsHuman   bool   `json:"is_human"`
	CardCount int    `json:"card_count"`
	Role      string `json:"role,omitempty"` // landlord/peasant
}

// RoundStartPayload 发牌完成
type RoundStartPayload struct {
	Seats   []SeatInfo `json:"seats"`
	Hand    []CardInfo `json:"hand"` // 人类玩家（0号位）的手牌
	Credits int64      `json:"credits"`
}

// LandlordPayload 地主确定
type LandlordPayload struct {
	Seat  int        `json:"seat"`
	Kitty []CardInfo `json:"kitty"`
	Hand  []CardInfo `json:"hand"` // 合并底牌后的手牌（仅当人类是地主时非空）
}

// PlayTurnPayload 轮到出牌
type PlayTurnPayload struct {
	Seat      int        `json:"seat"`
	FreePlay  bool       `json:"free_play"`  // 桌面已清空，可任意出牌
	CanBeat   bool       `json:"can_beat"`   // 手里是否有牌能压过
	LastCards []CardInfo `json:"last_cards"` // 需要压过的牌
}

// BotThinkingPayload 机器人思考中
type BotThinkingPayload struct {
	Seat int `json:"seat"`
}

// CardPlayedPayload 有人出牌
type CardPlayedPayload struct {
	Seat      int        `json:"seat"`
	Cards     []CardInfo `json:"cards"`
	HandType  string     `json:"hand_type"`
	Remaining int        `json:"remaining"` // 该玩家剩余手牌数
}

// PlayerPassPayload 有人不出
type PlayerPassPayload struct {
	Seat         int  `json:"seat"`
	TableCleared bool `json:"table_cleared"` // 两家连续不出，桌面清空
}

// RoundOverPayload 本局结束
type RoundOverPayload struct {
	WinnerSeat int    `json:"winner_seat"`
	WinnerRole string `json:"winner_role"`
	Reward     int64  `json:"reward"`  // 人类获胜时的积分奖励
	Credits    int64  `json:"credits"` // 最新积分余额
}

// HintResultPayload 提示结果
type HintResultPayload struct {
	Cards []CardInfo `json:"cards"` // 为空表示没有能压过的牌
}

// CreditsUpdatePayload 积分变动
type CreditsUpdatePayload struct {
	Credits int64  `json:"credits"`
	Change  int64  `json:"change"`
	Reason  string `json:"reason"`
}

// StatsResultPayload 个人统计结果
type StatsResultPayload struct {
	TotalGames    int `json:"total_games"`
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	LandlordGames int `json:"landlord_games"`
	LandlordWins  int `json:"landlord_wins"`
	Score         int `json:"score"`
	CurrentStreak int `json:"current_streak"`
}

// LeaderboardEntryInfo 排行榜条目
type LeaderboardEntryInfo struct {
	Rank       int     `json:"rank"`
	PlayerName string  `json:"player_name"`
	Score      int     `json:"score"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// LeaderboardResultPayload 排行榜结果
type LeaderboardResultPayload struct {
	Type    string                 `json:"type"`
	Entries []LeaderboardEntryInfo `json:"entries"`
}

// TransactionInfo 一笔积分流水
type TransactionInfo struct {
	Amount    int64  `json:"amount"`
	Reason    string `json:"reason"`
	CreatedAt int64  `json:"created_at"` // Unix 秒
}

// TransactionsResultPayload 积分流水结果，最新的在前
type TransactionsResultPayload struct {
	Entries []TransactionInfo `json:"entries"`
}

// ErrorPayload 错误消息
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
