package apperrors

import (
	"github.com/jindou-games/doudizhu-arena/internal/protocol"
)

// GameError 规则引擎和对局服务共享的带码错误
type GameError struct {
	Code    int
	Message string
}

func (e *GameError) Error() string {
	return e.Message
}

// 预定义错误
var (
	ErrWrongPhase      = &GameError{Code: protocol.ErrCodeWrongPhase, Message: "当前阶段不能执行该操作"}
	ErrNotYourTurn     = &GameError{Code: protocol.ErrCodeNotYourTurn, Message: "还没轮到您"}
	ErrInvalidCards    = &GameError{Code: protocol.ErrCodeInvalidCards, Message: "无效的牌型"}
	ErrCannotBeat      = &GameError{Code: protocol.ErrCodeCannotBeat, Message: "您的牌大不过上家"}
	ErrMustPlay        = &GameError{Code: protocol.ErrCodeMustPlay, Message: "您必须出牌"}
	ErrCardsNotInHand  = &GameError{Code: protocol.ErrCodeCardsNotInHand, Message: "出的牌不在您的手牌中"}
	ErrProposerFailure = &GameError{Code: protocol.ErrCodeProposerFailure, Message: "出牌源无响应"}

	ErrRoundActive   = &GameError{Code: protocol.ErrCodeRoundActive, Message: "已有进行中的对局"}
	ErrNoActiveRound = &GameError{Code: protocol.ErrCodeNoActiveRound, Message: "没有进行中的对局"}

	ErrInsufficientCredits = &GameError{Code: protocol.ErrCodeInsufficientCredits, Message: "积分不足"}
	ErrUserNotFound        = &GameError{Code: protocol.ErrCodeUserNotFound, Message: "用户不存在"}
)
