package round

import (
	"context"
	"fmt"
	"slices"

	"github.com/jindou-games/doudizhu-arena/internal/apperrors"
	"github.com/jindou-games/doudizhu-arena/internal/game/card"
	"github.com/jindou-games/doudizhu-arena/internal/game/rule"
)

// Move 一次行动：PASS 或一组候选牌。候选牌在提交前一律视为不可信输入。
type Move struct {
	Pass  bool
	Cards []card.Card
}

// PassMove 构造一个 PASS
func PassMove() Move {
	return Move{Pass: true}
}

// PlayMove 构造一次出牌
func PlayMove(cards []card.Card) Move {
	return Move{Cards: cards}
}

// TurnView 提供给出牌源的回合视图：自己的手牌、桌面状态和角色。
// 切片都是副本，出牌源无法直接改动对局状态。
type TurnView struct {
	Seat     int
	Hand     []card.Card
	Role     Role
	Table    *rule.ParsedHand // nil 表示自由出牌
	FreePlay bool
}

// MoveProposer 出牌源。可能是人类输入，也可能是慢且会失败的外部 AI 调用。
// 返回的候选牌必须经过 Round.Submit 校验后才会生效。
type MoveProposer interface {
	ProposeMove(ctx context.Context, view TurnView) (Move, error)
}

// TurnView 构造当前回合玩家的视图
func (r *Round) TurnView() TurnView {
	player := r.players[r.currentTurn]
	view := TurnView{
		Seat:     r.currentTurn,
		Hand:     slices.Clone(player.Hand),
		Role:     player.Role,
		FreePlay: r.lastPlay == nil,
	}
	if r.lastPlay != nil {
		table := r.lastPlay.Hand
		view.Table = &table
	}
	return view
}

// PlayTurn 用给定的出牌源驱动一个回合。出牌源失败（出错、超时、
// 返回无法匹配手牌的内容）会以 ErrProposerFailure 上浮，
// 绝不会被悄悄当作 PASS——兜底策略是调用方的显式决定。
// ctx 取消时（比如玩家中途离开），迟到的提案会被丢弃而不是套用到过期状态上。
func (r *Round) PlayTurn(ctx context.Context, proposer MoveProposer) error {
	if r.phase != PhasePlaying {
		return apperrors.ErrWrongPhase
	}

	view := r.TurnView()
	move, err := proposer.ProposeMove(ctx, view)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrProposerFailure, err)
	}

	// 出牌源返回之后对局可能已被放弃，迟到的结果直接丢弃
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.Submit(view.Seat, move)
}
