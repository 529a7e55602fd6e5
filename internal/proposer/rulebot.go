package proposer

import (
	"context"
	"fmt"
	"time"

	"github.com/jindou-games/doudizhu-arena/internal/game/round"
	"github.com/jindou-games/doudizhu-arena/internal/game/rule"
)

// RuleBot 基于规则的本地出牌源：总是出能压过上家的最小牌组，
// 压不过就 PASS。既可以独立做机器人，也是 LLM 失败时宿主的显式兜底。
type RuleBot struct {
	// ThinkDelay 模拟思考时间，为 0 时立即返回
	ThinkDelay time.Duration
}

// NewRuleBot 创建规则机器人
func NewRuleBot(thinkDelay time.Duration) *RuleBot {
	return &RuleBot{ThinkDelay: thinkDelay}
}

// ProposeMove 实现 round.MoveProposer
func (b *RuleBot) ProposeMove(ctx context.Context, view round.TurnView) (round.Move, error) {
	if b.ThinkDelay > 0 {
		timer := time.NewTimer(b.ThinkDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return round.Move{}, ctx.Err()
		case <-timer.C:
		}
	}

	var table rule.ParsedHand
	if view.Table != nil {
		table = *view.Table
	}

	cards := rule.FindSmallestBeatingCards(view.Hand, table)
	if cards == nil {
		if view.FreePlay {
			// 自由出牌时 FindSmallestBeatingCards 只会在空手牌时返回 nil
			return round.Move{}, fmt.Errorf("没有可出的牌")
		}
		return round.PassMove(), nil
	}
	return round.PlayMove(cards), nil
}
