// Package round 实现一局斗地主的权威状态机：
// 发牌 → 叫地主 → 出牌 → 结束。所有候选出牌（无论来自人类还是外部 AI）
// 都必须通过这里的校验才会被提交。
package round

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/jindou-games/doudizhu-arena/internal/apperrors"
	"github.com/jindou-games/doudizhu-arena/internal/game/card"
	"github.com/jindou-games/doudizhu-arena/internal/game/rule"
)

// Phase 对局阶段
type Phase int

const (
	PhaseLobby Phase = iota
	PhaseBidding
	PhasePlaying
	PhaseGameOver
)

// phaseNames 阶段名称映射表
var phaseNames = map[Phase]string{
	PhaseLobby:    "大厅",
	PhaseBidding:  "叫地主",
	PhasePlaying:  "出牌",
	PhaseGameOver: "结束",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Role 玩家角色
type Role int

const (
	RoleNone Role = iota
	RoleLandlord
	RolePeasant
)

func (r Role) String() string {
	switch r {
	case RoleLandlord:
		return "地主"
	case RolePeasant:
		return "农民"
	}
	return ""
}

// Player 对局中的一个座位
type Player struct {
	ID      string
	Name    string
	IsHuman bool
	Hand    []card.Card
	Role    Role
}

// TablePlay 桌面上需要被压过的一手牌
type TablePlay struct {
	Seat int
	Hand rule.ParsedHand
}

// Round 一局游戏的完整状态。由状态机独占持有，
// 只在校验通过的提交步骤中变更，没有任何全局单例。
type Round struct {
	phase             Phase
	players           [3]*Player
	kitty             []card.Card
	currentTurn       int
	landlord          int        // -1 表示尚未确定
	winner            int        // -1 表示尚未分出胜负
	lastPlay          *TablePlay // nil 表示桌面已清空，可自由出牌
	consecutivePasses int

	listeners []Listener
}

// New 创建一局新游戏，三个座位按传入顺序入座，阶段为大厅
func New(players [3]*Player) *Round {
	return &Round{
		phase:    PhaseLobby,
		players:  players,
		landlord: -1,
		winner:   -1,
	}
}

// --- 只读访问 ---

func (r *Round) Phase() Phase           { return r.phase }
func (r *Round) CurrentTurn() int       { return r.currentTurn }
func (r *Round) Landlord() int          { return r.landlord }
func (r *Round) Winner() int            { return r.winner }
func (r *Round) ConsecutivePasses() int { return r.consecutivePasses }

// Player 返回座位上的玩家
func (r *Round) Player(seat int) *Player {
	return r.players[seat]
}

// Kitty 返回底牌
func (r *Round) Kitty() []card.Card {
	return slices.Clone(r.kitty)
}

// TableReference 返回当前需要压过的牌，桌面清空时为 nil
func (r *Round) TableReference() *TablePlay {
	if r.lastPlay == nil {
		return nil
	}
	cp := *r.lastPlay
	return &cp
}

// --- 阶段转换 ---

// Start 大厅 → 叫地主：洗牌发牌，随机选出地主候选人
func (r *Round) Start() error {
	if r.phase != PhaseLobby {
		return apperrors.ErrWrongPhase
	}

	deck := card.NewDeck()
	deck.Shuffle()
	dealt, err := card.Deal(deck)
	if err != nil {
		return fmt.Errorf("发牌失败: %w", err)
	}

	for i, p := range r.players {
		p.Hand = card.SortHand(dealt.Hands[i])
		p.Role = RoleNone
	}
	r.kitty = dealt.Kitty
	r.lastPlay = nil
	r.consecutivePasses = 0
	r.winner = -1

	// 简化的叫地主：随机指定候选人（真正的叫分协议是扩展点）
	r.currentTurn = rand.IntN(3)
	r.phase = PhaseBidding
	return nil
}

// AssignLandlord 叫地主 → 出牌：指定座位成为地主，合并底牌并重新排序
func (r *Round) AssignLandlord(seat int) error {
	if r.phase != PhaseBidding {
		return apperrors.ErrWrongPhase
	}

	for i, p := range r.players {
		if i == seat {
			p.Role = RoleLandlord
			p.Hand = card.SortHand(append(p.Hand, r.kitty...))
		} else {
			p.Role = RolePeasant
		}
	}
	r.landlord = seat
	r.currentTurn = seat
	r.phase = PhasePlaying

	r.emit(LandlordAssigned{Seat: seat, Kitty: slices.Clone(r.kitty)})
	return nil
}

// Submit 校验并提交一个座位的行动。被拒绝时状态不变，
// 由调用方决定重试、兜底还是强制 PASS——引擎绝不把非法提交
// 悄悄当作 PASS 处理。
func (r *Round) Submit(seat int, move Move) error {
	if r.phase != PhasePlaying {
		return apperrors.ErrWrongPhase
	}
	if seat != r.currentTurn {
		return apperrors.ErrNotYourTurn
	}

	if move.Pass {
		return r.commitPass(seat)
	}
	return r.commitPlay(seat, move.Cards)
}

// commitPass 处理 PASS：桌面清空时不允许，必须有人领出
func (r *Round) commitPass(seat int) error {
	if r.lastPlay == nil {
		return apperrors.ErrMustPlay
	}

	r.consecutivePasses++
	tableCleared := r.consecutivePasses >= 2
	if tableCleared {
		// 两家连续不出，桌面清空。计数器不在这里归零，
		// 由下一次非 PASS 出牌归零——最后出牌的玩家永远不需要回应沉默。
		r.lastPlay = nil
	}
	r.advanceTurn()

	r.emit(TurnPassed{Seat: seat, TableCleared: tableCleared})
	return nil
}

// commitPlay 校验并提交一次出牌
func (r *Round) commitPlay(seat int, cards []card.Card) error {
	player := r.players[seat]

	if len(cards) == 0 {
		return apperrors.ErrInvalidCards
	}
	if !card.IsSubset(cards, player.Hand) {
		return apperrors.ErrCardsNotInHand
	}

	parsed, err := rule.ParseHand(cards)
	if err != nil {
		return apperrors.ErrInvalidCards
	}

	if r.lastPlay != nil && !rule.CanBeat(parsed, r.lastPlay.Hand) {
		return apperrors.ErrCannotBeat
	}

	// 提交
	player.Hand = card.RemoveCards(player.Hand, cards)
	r.lastPlay = &TablePlay{Seat: seat, Hand: parsed}
	r.consecutivePasses = 0

	r.emit(CardsPlayed{Seat: seat, Hand: parsed, Remaining: len(player.Hand)})

	if len(player.Hand) == 0 {
		r.phase = PhaseGameOver
		r.winner = seat
		r.emit(RoundWon{Seat: seat, Role: player.Role})
		return nil
	}

	r.advanceTurn()
	return nil
}

// Reset 结束或中途放弃后回到大厅
func (r *Round) Reset() {
	r.phase = PhaseLobby
	r.kitty = nil
	r.lastPlay = nil
	r.consecutivePasses = 0
	r.landlord = -1
	r.winner = -1
	r.currentTurn = 0
	for _, p := range r.players {
		p.Hand = nil
		p.Role = RoleNone
	}
}

func (r *Round) advanceTurn() {
	r.currentTurn = (r.currentTurn + 1) % 3
}
