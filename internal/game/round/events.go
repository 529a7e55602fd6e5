package round

import (
	"github.com/jindou-games/doudizhu-arena/internal/game/card"
	"github.com/jindou-games/doudizhu-arena/internal/game/rule"
)

// Event 对局事件。核心只负责发出事件，
// 积分、排行榜、界面等协作方各自消费。
type Event interface {
	roundEvent()
}

// LandlordAssigned 地主确定
type LandlordAssigned struct {
	Seat  int
	Kitty []card.Card
}

// CardsPlayed 有人出牌
type CardsPlayed struct {
	Seat      int
	Hand      rule.ParsedHand
	Remaining int
}

// TurnPassed 有人不出
type TurnPassed struct {
	Seat         int
	TableCleared bool
}

// RoundWon 本局结束
type RoundWon struct {
	Seat int
	Role Role
}

func (LandlordAssigned) roundEvent() {}
func (CardsPlayed) roundEvent()      {}
func (TurnPassed) roundEvent()       {}
func (RoundWon) roundEvent()         {}

// Listener 事件监听器
type Listener func(Event)

// Subscribe 注册事件监听器，按注册顺序同步调用
func (r *Round) Subscribe(l Listener) {
	r.listeners = append(r.listeners, l)
}

func (r *Round) emit(e Event) {
	for _, l := range r.listeners {
		l(e)
	}
}
