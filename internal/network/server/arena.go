package server

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jindou-games/doudizhu-arena/internal/apperrors"
	"github.com/jindou-games/doudizhu-arena/internal/credits"
	"github.com/jindou-games/doudizhu-arena/internal/game/card"
	"github.com/jindou-games/doudizhu-arena/internal/game/round"
	"github.com/jindou-games/doudizhu-arena/internal/game/rule"
	"github.com/jindou-games/doudizhu-arena/internal/proposer"
	"github.com/jindou-games/doudizhu-arena/internal/protocol"
)

// humanSeat 人类玩家固定坐 0 号位
const humanSeat = 0

// 机器人昵称
var botNames = []string{"铁牛", "二娃", "三炮", "老K", "顺子王", "王炸侠"}

// Arena 一个人类玩家对两个机器人的对局宿主。
// 机器人提案可能来自外部大模型，失败时兜底到本地规则机器人——
// 这是宿主的显式决策，规则引擎本身从不把失败当作 PASS。
type Arena struct {
	server *Server
	client *Client

	mu       sync.Mutex
	round    *round.Round
	bots     [3]round.MoveProposer // 0 号位为 nil
	fallback *proposer.RuleBot

	ctx    context.Context
	cancel context.CancelFunc

	settled bool // 已结算或已放弃
}

// NewArena 创建对局宿主
func NewArena(s *Server, c *Client) *Arena {
	ctx, cancel := context.WithCancel(context.Background())
	a := &Arena{
		server:   s,
		client:   c,
		fallback: proposer.NewRuleBot(0),
		ctx:      ctx,
		cancel:   cancel,
	}

	minDelay, maxDelay := s.config.Game.BotThinkRange()
	for seat := 1; seat < 3; seat++ {
		if s.config.AI.Enabled {
			a.bots[seat] = proposer.NewLLMProposer(proposer.LLMConfig{
				Endpoint: s.config.AI.Endpoint,
				Model:    s.config.AI.Model,
				APIKey:   s.config.AI.APIKey,
				Timeout:  s.config.AI.TimeoutDuration(),
			})
		} else {
			delay := minDelay + rand.N(maxDelay-minDelay+1)
			a.bots[seat] = proposer.NewRuleBot(delay)
		}
	}
	return a
}

// Start 扣除入场积分、发牌并确定地主，之后驱动机器人直到轮到人类
func (a *Arena) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	balance, err := a.server.credits.Apply(a.client.UserID, -credits.GameCost, credits.ReasonGameFee)
	if err != nil {
		return err
	}
	a.client.SendMessage(protocol.MustNewMessage(protocol.MsgCreditsUpdate, protocol.CreditsUpdatePayload{
		Credits: balance,
		Change:  -credits.GameCost,
		Reason:  credits.ReasonGameFee,
	}))

	names := rand.Perm(len(botNames))
	players := [3]*round.Player{
		{ID: a.client.ID, Name: a.client.Name, IsHuman: true},
		{ID: uuid.New().String(), Name: botNames[names[0]]},
		{ID: uuid.New().String(), Name: botNames[names[1]]},
	}

	r := round.New(players)
	r.Subscribe(a.onEvent)
	a.round = r

	if err := r.Start(); err != nil {
		return err
	}

	seats := make([]protocol.SeatInfo, 3)
	for i := range 3 {
		p := r.Player(i)
		seats[i] = protocol.SeatInfo{
			Seat:      i,
			Name:      p.Name,
			IsHuman:   p.IsHuman,
			CardCount: len(p.Hand),
		}
	}
	a.client.SendMessage(protocol.MustNewMessage(protocol.MsgRoundStart, protocol.RoundStartPayload{
		Seats:   seats,
		Hand:    protocol.CardsToInfos(r.Player(humanSeat).Hand),
		Credits: balance,
	}))

	// 简化的叫地主：随机候选人直接成为地主
	if err := r.AssignLandlord(r.CurrentTurn()); err != nil {
		return err
	}

	go a.drive()
	return nil
}

// HumanPlay 人类出牌
func (a *Arena) HumanPlay(cards []card.Card) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.round == nil || a.settled {
		return apperrors.ErrNoActiveRound
	}
	if err := a.round.Submit(humanSeat, round.PlayMove(cards)); err != nil {
		return err
	}

	go a.drive()
	return nil
}

// HumanPass 人类不出
func (a *Arena) HumanPass() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.round == nil || a.settled {
		return apperrors.ErrNoActiveRound
	}
	if err := a.round.Submit(humanSeat, round.PassMove()); err != nil {
		return err
	}

	go a.drive()
	return nil
}

// Hint 为人类玩家计算一组能压过桌面的最小牌，没有则返回 nil
func (a *Arena) Hint() []card.Card {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.round == nil || a.settled || a.round.Phase() != round.PhasePlaying {
		return nil
	}

	var table rule.ParsedHand
	if ref := a.round.TableReference(); ref != nil {
		table = ref.Hand
	}
	return rule.FindSmallestBeatingCards(a.round.Player(humanSeat).Hand, table)
}

// Abandon 放弃对局：取消机器人回合，进行中的局按人类失败记入战绩
func (a *Arena) Abandon() {
	// 先打断进行中的机器人回合，再抢锁收尾
	a.cancel()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.settled {
		return
	}
	a.settled = true

	if a.round != nil && a.round.Phase() == round.PhasePlaying {
		isLandlord := a.round.Landlord() == humanSeat
		a.recordResult(isLandlord, false)
	}
	log.Printf("🏳️ 玩家 %s 放弃对局", a.client.Name)
}

// drive 驱动机器人回合，直到轮到人类、对局结束或出错
func (a *Arena) drive() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for !a.settled && a.round.Phase() == round.PhasePlaying {
		seat := a.round.CurrentTurn()
		if seat == humanSeat {
			a.sendPlayTurn()
			return
		}

		a.client.SendMessage(protocol.MustNewMessage(protocol.MsgBotThinking, protocol.BotThinkingPayload{
			Seat: seat,
		}))

		if !a.playBotTurn(seat) {
			return
		}
	}

	if !a.settled && a.round.Phase() == round.PhaseGameOver {
		a.settle()
	}
}

// playBotTurn 在出牌时限内驱动一个机器人回合。
// 出牌源超时或失败时显式兜底到本地规则机器人；返回 false 表示对局不再继续。
func (a *Arena) playBotTurn(seat int) bool {
	turnCtx, cancel := context.WithTimeout(a.ctx, a.server.config.Game.TurnTimeoutDuration())
	defer cancel()

	err := a.round.PlayTurn(turnCtx, a.bots[seat])
	if err == nil {
		return true
	}
	if a.ctx.Err() != nil {
		return false // 对局已放弃，丢弃迟到的提案
	}

	// 外部出牌源失败、超时或给出非法提案：显式兜底到本地规则机器人
	log.Printf("⚠️ %d 号位出牌源失败，启用兜底: %v", seat, err)
	if err = a.round.PlayTurn(a.ctx, a.fallback); err != nil {
		log.Printf("兜底出牌失败: %v", err)
		a.settled = true
		a.cancel()
		a.client.SetArena(nil)
		a.client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeProposerFailure))
		return false
	}
	return true
}

// sendPlayTurn 通知人类出牌，附带桌面状态和是否有牌能压过
func (a *Arena) sendPlayTurn() {
	payload := protocol.PlayTurnPayload{
		Seat:     humanSeat,
		FreePlay: true,
		CanBeat:  true,
	}
	if ref := a.round.TableReference(); ref != nil {
		payload.FreePlay = false
		payload.CanBeat = rule.CanBeatWithHand(a.round.Player(humanSeat).Hand, ref.Hand)
		payload.LastCards = protocol.CardsToInfos(ref.Hand.Cards)
	}
	a.client.SendMessage(protocol.MustNewMessage(protocol.MsgPlayTurn, payload))
}

// settle 对局结束结算：发放奖励、记录战绩、通知客户端
func (a *Arena) settle() {
	a.settled = true
	a.cancel()

	winner := a.round.Winner()
	winnerRole := a.round.Player(winner).Role
	humanRole := a.round.Player(humanSeat).Role

	// 人类阵营获胜即算赢：自己走完，或同为农民的机器人走完
	humanWon := winner == humanSeat ||
		(humanRole == round.RolePeasant && winnerRole == round.RolePeasant)

	var reward int64
	balance, err := a.server.credits.Balance(a.client.UserID)
	if err != nil {
		log.Printf("查询积分失败: %v", err)
	}
	if humanWon {
		reward = credits.WinReward
		if balance, err = a.server.credits.Apply(a.client.UserID, reward, credits.ReasonWinReward); err != nil {
			log.Printf("发放奖励失败: %v", err)
		}
	}

	a.recordResult(humanRole == round.RoleLandlord, humanWon)

	// 先解绑对局再通知结束，客户端收到 round_over 后立刻就能开下一局
	a.client.SetArena(nil)

	a.client.SendMessage(protocol.MustNewMessage(protocol.MsgRoundOver, protocol.RoundOverPayload{
		WinnerSeat: winner,
		WinnerRole: roleName(winnerRole),
		Reward:     reward,
		Credits:    balance,
	}))
}

// recordResult 将人类玩家的胜负写入排行榜，失败只记日志
func (a *Arena) recordResult(isLandlord, isWinner bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := a.server.leaderboard.RecordGameResult(ctx, a.client.UserID, a.client.Name, isLandlord, isWinner)
	if err != nil {
		log.Printf("记录战绩失败: %v", err)
	}
}

// onEvent 把对局事件翻译成推送消息
func (a *Arena) onEvent(e round.Event) {
	switch ev := e.(type) {
	case round.LandlordAssigned:
		payload := protocol.LandlordPayload{
			Seat:  ev.Seat,
			Kitty: protocol.CardsToInfos(ev.Kitty),
		}
		if ev.Seat == humanSeat {
			payload.Hand = protocol.CardsToInfos(a.round.Player(humanSeat).Hand)
		}
		a.client.SendMessage(protocol.MustNewMessage(protocol.MsgLandlord, payload))

	case round.CardsPlayed:
		a.client.SendMessage(protocol.MustNewMessage(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
			Seat:      ev.Seat,
			Cards:     protocol.CardsToInfos(ev.Hand.Cards),
			HandType:  ev.Hand.Type.String(),
			Remaining: ev.Remaining,
		}))

	case round.TurnPassed:
		a.client.SendMessage(protocol.MustNewMessage(protocol.MsgPlayerPass, protocol.PlayerPassPayload{
			Seat:         ev.Seat,
			TableCleared: ev.TableCleared,
		}))
	}
}

// roleName 角色的协议字符串
func roleName(r round.Role) string {
	if r == round.RoleLandlord {
		return "landlord"
	}
	return "peasant"
}

// sendGameError 把带码错误翻译成协议错误消息
func sendGameError(c *Client, err error) {
	var ge *apperrors.GameError
	if errors.As(err, &ge) {
		c.SendMessage(protocol.NewErrorMessageWithText(ge.Code, ge.Message))
		return
	}
	c.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
}
