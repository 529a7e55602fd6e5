package protocol

// 错误码
const (
	ErrCodeUnknown    = 1000
	ErrCodeInvalidMsg = 1001

	ErrCodeRoundActive   = 2001 // 已有进行中的对局
	ErrCodeNoActiveRound = 2002 // 没有进行中的对局

	ErrCodeWrongPhase      = 3001
	ErrCodeNotYourTurn     = 3002
	ErrCodeInvalidCards    = 3003
	ErrCodeCannotBeat      = 3004
	ErrCodeMustPlay        = 3005
	ErrCodeCardsNotInHand  = 3006
	ErrCodeProposerFailure = 3007 // 外部出牌源失败

	ErrCodeInsufficientCredits = 4001
	ErrCodeUserNotFound        = 4002
)

// ErrorMessages 错误码对应的消息
var ErrorMessages = map[int]string{
	ErrCodeUnknown:             "未知错误",
	ErrCodeInvalidMsg:          "无效的消息格式",
	ErrCodeRoundActive:         "已有进行中的对局",
	ErrCodeNoActiveRound:       "没有进行中的对局",
	ErrCodeWrongPhase:          "当前阶段不能执行该操作",
	ErrCodeNotYourTurn:         "还没轮到您",
	ErrCodeInvalidCards:        "无效的牌型",
	ErrCodeCannotBeat:          "您的牌大不过上家",
	ErrCodeMustPlay:            "您必须出牌",
	ErrCodeCardsNotInHand:      "出的牌不在您的手牌中",
	ErrCodeProposerFailure:     "出牌源无响应",
	ErrCodeInsufficientCredits: "积分不足",
	ErrCodeUserNotFound:        "用户不存在",
}
