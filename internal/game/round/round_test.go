package round

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jindou-games/doudizhu-arena/internal/apperrors"
	"github.com/jindou-games/doudizhu-arena/internal/game/card"
	"github.com/jindou-games/doudizhu-arena/internal/game/rule"
)

func newTestPlayers() [3]*Player {
	var players [3]*Player
	for i := range players {
		players[i] = &Player{
			ID:      fmt.Sprintf("p%d", i),
			Name:    fmt.Sprintf("玩家%d", i),
			IsHuman: i == 0,
		}
	}
	return players
}

// playingRound 直接构造一个出牌阶段的对局，手牌和先手座位可控
func playingRound(t *testing.T, hands [3]string, landlord int) *Round {
	t.Helper()
	r := New(newTestPlayers())
	deck := card.NewDeck()
	for i, h := range hands {
		cards, err := card.FindCardsInHand(deck, h)
		require.NoError(t, err)
		r.players[i].Hand = card.SortHand(cards)
		r.players[i].Role = RolePeasant
	}
	r.players[landlord].Role = RoleLandlord
	r.landlord = landlord
	r.currentTurn = landlord
	r.phase = PhasePlaying
	return r
}

// handCards 从某个座位的手牌里取出指定的牌
func handCards(t *testing.T, r *Round, seat int, input string) []card.Card {
	t.Helper()
	cards, err := card.FindCardsInHand(r.players[seat].Hand, input)
	require.NoError(t, err)
	return cards
}

func TestStart(t *testing.T) {
	t.Parallel()

	r := New(newTestPlayers())
	require.NoError(t, r.Start())

	assert.Equal(t, PhaseBidding, r.Phase())
	assert.Equal(t, -1, r.Landlord())
	assert.Equal(t, -1, r.Winner())
	assert.Len(t, r.Kitty(), 3)
	for i := range 3 {
		assert.Len(t, r.Player(i).Hand, 17, "座位 %d", i)
		assert.Equal(t, RoleNone, r.Player(i).Role)
	}
	assert.Nil(t, r.TableReference())

	// 叫地主阶段不能再次开始
	assert.ErrorIs(t, r.Start(), apperrors.ErrWrongPhase)
}

func TestAssignLandlord(t *testing.T) {
	t.Parallel()

	r := New(newTestPlayers())

	// 大厅阶段不能指定地主
	require.ErrorIs(t, r.AssignLandlord(0), apperrors.ErrWrongPhase)

	require.NoError(t, r.Start())

	var got []Event
	r.Subscribe(func(e Event) { got = append(got, e) })

	require.NoError(t, r.AssignLandlord(1))

	assert.Equal(t, PhasePlaying, r.Phase())
	assert.Equal(t, 1, r.Landlord())
	assert.Equal(t, 1, r.CurrentTurn(), "地主先出")
	assert.Len(t, r.Player(1).Hand, 20, "地主合并三张底牌")
	assert.Equal(t, RoleLandlord, r.Player(1).Role)
	assert.Equal(t, RolePeasant, r.Player(0).Role)
	assert.Equal(t, RolePeasant, r.Player(2).Role)

	require.Len(t, got, 1)
	assigned, ok := got[0].(LandlordAssigned)
	require.True(t, ok)
	assert.Equal(t, 1, assigned.Seat)
	assert.Len(t, assigned.Kitty, 3)
}

func TestSubmit_Rejections(t *testing.T) {
	t.Parallel()

	t.Run("非出牌阶段", func(t *testing.T) {
		t.Parallel()
		r := New(newTestPlayers())
		err := r.Submit(0, PassMove())
		assert.ErrorIs(t, err, apperrors.ErrWrongPhase)
	})

	t.Run("没轮到的座位", func(t *testing.T) {
		t.Parallel()
		r := playingRound(t, [3]string{"34", "56", "78"}, 0)
		err := r.Submit(1, PlayMove(handCards(t, r, 1, "5")))
		assert.ErrorIs(t, err, apperrors.ErrNotYourTurn)
		assert.Equal(t, 0, r.CurrentTurn(), "被拒绝的提交不改变状态")
	})

	t.Run("空牌组", func(t *testing.T) {
		t.Parallel()
		r := playingRound(t, [3]string{"34", "56", "78"}, 0)
		assert.ErrorIs(t, r.Submit(0, PlayMove(nil)), apperrors.ErrInvalidCards)
	})

	t.Run("牌不在手牌中", func(t *testing.T) {
		t.Parallel()
		r := playingRound(t, [3]string{"34", "56", "78"}, 0)
		outside, err := card.FindCardsInHand(card.NewDeck(), "K")
		require.NoError(t, err)
		assert.ErrorIs(t, r.Submit(0, PlayMove(outside)), apperrors.ErrCardsNotInHand)
		assert.Len(t, r.Player(0).Hand, 2)
	})

	t.Run("无效牌型", func(t *testing.T) {
		t.Parallel()
		r := playingRound(t, [3]string{"34", "56", "78"}, 0)
		assert.ErrorIs(t, r.Submit(0, PlayMove(handCards(t, r, 0, "34"))), apperrors.ErrInvalidCards)
	})

	t.Run("压不过上家", func(t *testing.T) {
		t.Parallel()
		r := playingRound(t, [3]string{"K3", "45", "67"}, 0)
		require.NoError(t, r.Submit(0, PlayMove(handCards(t, r, 0, "K"))))
		err := r.Submit(1, PlayMove(handCards(t, r, 1, "4")))
		assert.ErrorIs(t, err, apperrors.ErrCannotBeat)
		assert.Equal(t, 1, r.CurrentTurn())
		assert.Len(t, r.Player(1).Hand, 2, "被拒绝的牌留在手里")
	})
}

func TestPassHandshake(t *testing.T) {
	t.Parallel()

	r := playingRound(t, [3]string{"K3", "45", "67"}, 0)

	var events []Event
	r.Subscribe(func(e Event) { events = append(events, e) })

	// 桌面清空时不允许 PASS
	require.ErrorIs(t, r.Submit(0, PassMove()), apperrors.ErrMustPlay)

	require.NoError(t, r.Submit(0, PlayMove(handCards(t, r, 0, "K"))))
	require.NotNil(t, r.TableReference())

	// 第一家 PASS：桌面还在
	require.NoError(t, r.Submit(1, PassMove()))
	assert.Equal(t, 1, r.ConsecutivePasses())
	assert.NotNil(t, r.TableReference())

	// 第二家 PASS：桌面清空，但计数器不在这里归零
	require.NoError(t, r.Submit(2, PassMove()))
	assert.Equal(t, 2, r.ConsecutivePasses())
	assert.Nil(t, r.TableReference())
	assert.Equal(t, 0, r.CurrentTurn(), "出牌者重新领出")

	// 领出的玩家不能 PASS
	require.ErrorIs(t, r.Submit(0, PassMove()), apperrors.ErrMustPlay)

	// 下一次真正出牌才把计数器归零
	require.NoError(t, r.Submit(0, PlayMove(handCards(t, r, 0, "3"))))
	assert.Equal(t, 0, r.ConsecutivePasses())

	// 事件顺序：出牌、PASS、清空桌面的 PASS、再出牌
	require.Len(t, events, 4)
	pass1 := events[1].(TurnPassed)
	pass2 := events[2].(TurnPassed)
	assert.False(t, pass1.TableCleared)
	assert.True(t, pass2.TableCleared)
}

func TestWinEndsRound(t *testing.T) {
	t.Parallel()

	r := playingRound(t, [3]string{"3", "45", "67"}, 0)

	var won *RoundWon
	r.Subscribe(func(e Event) {
		if w, ok := e.(RoundWon); ok {
			won = &w
		}
	})

	require.NoError(t, r.Submit(0, PlayMove(handCards(t, r, 0, "3"))))

	assert.Equal(t, PhaseGameOver, r.Phase())
	assert.Equal(t, 0, r.Winner())
	assert.Empty(t, r.Player(0).Hand)
	require.NotNil(t, won)
	assert.Equal(t, 0, won.Seat)
	assert.Equal(t, RoleLandlord, won.Role)

	// 结束之后不再接受提交
	assert.ErrorIs(t, r.Submit(1, PassMove()), apperrors.ErrWrongPhase)
}

func TestCardsPlayedEvent(t *testing.T) {
	t.Parallel()

	r := playingRound(t, [3]string{"KK3", "45", "67"}, 0)

	var played *CardsPlayed
	r.Subscribe(func(e Event) {
		if p, ok := e.(CardsPlayed); ok {
			played = &p
		}
	})

	require.NoError(t, r.Submit(0, PlayMove(handCards(t, r, 0, "KK"))))

	require.NotNil(t, played)
	assert.Equal(t, 0, played.Seat)
	assert.Equal(t, rule.Pair, played.Hand.Type)
	assert.Equal(t, card.RankK, played.Hand.KeyRank)
	assert.Equal(t, 1, played.Remaining)
}

func TestTurnView(t *testing.T) {
	t.Parallel()

	r := playingRound(t, [3]string{"K3", "45", "67"}, 0)

	view := r.TurnView()
	assert.Equal(t, 0, view.Seat)
	assert.True(t, view.FreePlay)
	assert.Nil(t, view.Table)

	// 视图是副本，改动不影响对局
	view.Hand[0] = card.Card{Rank: card.Rank3, Suit: card.Spade}
	assert.NotEqual(t, view.Hand[0], r.Player(0).Hand[0])

	require.NoError(t, r.Submit(0, PlayMove(handCards(t, r, 0, "K"))))
	view = r.TurnView()
	assert.Equal(t, 1, view.Seat)
	assert.False(t, view.FreePlay)
	require.NotNil(t, view.Table)
	assert.Equal(t, rule.Single, view.Table.Type)
}

func TestReset(t *testing.T) {
	t.Parallel()

	r := New(newTestPlayers())
	require.NoError(t, r.Start())
	require.NoError(t, r.AssignLandlord(2))

	r.Reset()

	assert.Equal(t, PhaseLobby, r.Phase())
	assert.Equal(t, -1, r.Landlord())
	assert.Equal(t, -1, r.Winner())
	assert.Empty(t, r.Kitty())
	for i := range 3 {
		assert.Empty(t, r.Player(i).Hand)
		assert.Equal(t, RoleNone, r.Player(i).Role)
	}

	// 可以直接再开一局
	require.NoError(t, r.Start())
	assert.Equal(t, PhaseBidding, r.Phase())
}
