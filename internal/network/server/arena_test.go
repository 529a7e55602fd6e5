package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jindou-games/doudizhu-arena/internal/config"
	"github.com/jindou-games/doudizhu-arena/internal/credits"
	"github.com/jindou-games/doudizhu-arena/internal/game/round"
	"github.com/jindou-games/doudizhu-arena/internal/protocol"
	"github.com/jindou-games/doudizhu-arena/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	store, err := credits.NewSQLiteStore(filepath.Join(t.TempDir(), "credits.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })

	cfg := config.Default()
	cfg.Game.BotThinkMin = 1
	cfg.Game.BotThinkMax = 2

	s := &Server{
		config:      cfg,
		redis:       rdb,
		leaderboard: storage.NewLeaderboardManager(rdb),
		credits:     store,
		clients:     make(map[string]*Client),
	}
	s.handler = NewHandler(s)
	return s
}

// newTestClient 构造一个不挂真实连接的客户端，消息都落在 send 通道里
func newTestClient(t *testing.T, s *Server) *Client {
	t.Helper()

	c := &Client{
		ID:     uuid.New().String(),
		Name:   "测试玩家",
		server: s,
		send:   make(chan []byte, 256),
	}
	user, err := s.credits.GetOrCreateUser(c.Name)
	require.NoError(t, err)
	c.UserID = user.ID
	s.registerClient(c)
	return c
}

// nextMessage 等待下一条指定类型的消息，跳过其余推送；
// 等到预期之外的错误消息直接判失败
func nextMessage(t *testing.T, c *Client, want ...protocol.MessageType) *protocol.Message {
	t.Helper()

	wanted := make(map[protocol.MessageType]bool, len(want))
	for _, w := range want {
		wanted[w] = true
	}
	deadline := time.After(10 * time.Second)

	for {
		select {
		case data := <-c.send:
			msg, err := protocol.Decode(data)
			require.NoError(t, err)
			if msg.Type == protocol.MsgError && !wanted[protocol.MsgError] {
				payload, _ := protocol.ParsePayload[protocol.ErrorPayload](msg)
				t.Fatalf("收到错误消息 code=%d msg=%s", payload.Code, payload.Message)
			}
			if wanted[msg.Type] {
				return msg
			}
		case <-deadline:
			t.Fatalf("等待消息超时: %v", want)
		}
	}
}

// playToGameOver 以"有牌就出、要不起就过"把一局打到结束
func playToGameOver(t *testing.T, s *Server, c *Client) {
	t.Helper()

	for {
		msg := nextMessage(t, c, protocol.MsgPlayTurn, protocol.MsgRoundOver)
		if msg.Type == protocol.MsgRoundOver {
			return
		}

		arena := c.GetArena()
		require.NotNil(t, arena, "轮到人类时对局应该还在")
		if cards := arena.Hint(); cards != nil {
			s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgPlayCards, protocol.PlayCardsPayload{
				Cards: protocol.CardsToInfos(cards),
			}))
		} else {
			s.handler.Handle(c, protocol.MustNewMessage(protocol.MsgPass, nil))
		}
	}
}

func TestArena_RoundOverFreesConnection(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	c := newTestClient(t, srv)

	srv.handler.Handle(c, protocol.MustNewMessage(protocol.MsgStartRound, protocol.StartRoundPayload{}))
	nextMessage(t, c, protocol.MsgRoundStart)
	playToGameOver(t, srv, c)

	// 结算后连接回到空闲状态
	assert.Nil(t, c.GetArena())

	// 同一个连接可以直接开下一局
	srv.handler.Handle(c, protocol.MustNewMessage(protocol.MsgStartRound, protocol.StartRoundPayload{}))
	msg := nextMessage(t, c, protocol.MsgRoundStart)
	assert.Equal(t, protocol.MsgRoundStart, msg.Type)
}

func TestArena_StartDebitsGameFee(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	c := newTestClient(t, srv)

	srv.handler.Handle(c, protocol.MustNewMessage(protocol.MsgStartRound, protocol.StartRoundPayload{}))

	// 入场费扣除会先推送积分变动
	msg := nextMessage(t, c, protocol.MsgCreditsUpdate)
	payload, err := protocol.ParsePayload[protocol.CreditsUpdatePayload](msg)
	require.NoError(t, err)
	assert.Equal(t, int64(-credits.GameCost), payload.Change)
	assert.Equal(t, credits.ReasonGameFee, payload.Reason)
	assert.Equal(t, int64(credits.InitialCredits-credits.GameCost), payload.Credits)
}

// stuckProposer 模拟一直不响应的外部出牌源
type stuckProposer struct{}

func (stuckProposer) ProposeMove(ctx context.Context, _ round.TurnView) (round.Move, error) {
	<-ctx.Done()
	return round.Move{}, ctx.Err()
}

func newPlayingArena(t *testing.T, srv *Server, c *Client) *Arena {
	t.Helper()

	a := NewArena(srv, c)
	r := round.New([3]*round.Player{
		{ID: "h", Name: "人类", IsHuman: true},
		{ID: "b1", Name: "一号"},
		{ID: "b2", Name: "二号"},
	})
	require.NoError(t, r.Start())
	require.NoError(t, r.AssignLandlord(1))
	a.round = r
	return a
}

func TestArena_BotTurnTimeoutFallsBack(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	srv.config.Game.TurnTimeout = 1
	c := newTestClient(t, srv)

	a := newPlayingArena(t, srv, c)
	a.bots[1] = stuckProposer{}

	before := len(a.round.Player(1).Hand)
	start := time.Now()

	// 卡住的出牌源被出牌时限打断，本地规则机器人兜底完成回合
	require.True(t, a.playBotTurn(1))
	assert.Less(t, len(a.round.Player(1).Hand), before)
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestArena_AbandonedBotTurnDiscarded(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	srv.config.Game.TurnTimeout = 1
	c := newTestClient(t, srv)

	a := newPlayingArena(t, srv, c)
	a.bots[1] = stuckProposer{}
	a.cancel()

	before := len(a.round.Player(1).Hand)
	assert.False(t, a.playBotTurn(1), "放弃后的回合不再继续")
	assert.Len(t, a.round.Player(1).Hand, before)
}
