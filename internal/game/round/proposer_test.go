package round

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jindou-games/doudizhu-arena/internal/apperrors"
	"github.com/jindou-games/doudizhu-arena/internal/game/card"
)

// stubProposer 固定返回预设结果的出牌源
type stubProposer struct {
	move Move
	err  error
	// onPropose 在返回前调用，用来模拟出牌期间发生的事
	onPropose func()
}

func (s *stubProposer) ProposeMove(_ context.Context, _ TurnView) (Move, error) {
	if s.onPropose != nil {
		s.onPropose()
	}
	return s.move, s.err
}

func TestPlayTurn_SubmitsProposal(t *testing.T) {
	t.Parallel()

	r := playingRound(t, [3]string{"K3", "45", "67"}, 0)
	proposal := &stubProposer{move: PlayMove(handCards(t, r, 0, "K"))}

	require.NoError(t, r.PlayTurn(context.Background(), proposal))
	assert.Equal(t, 1, r.CurrentTurn())
	assert.Len(t, r.Player(0).Hand, 1)
}

func TestPlayTurn_WrongPhase(t *testing.T) {
	t.Parallel()

	r := New(newTestPlayers())
	err := r.PlayTurn(context.Background(), &stubProposer{})
	assert.ErrorIs(t, err, apperrors.ErrWrongPhase)
}

func TestPlayTurn_ProposerErrorWrapped(t *testing.T) {
	t.Parallel()

	r := playingRound(t, [3]string{"K3", "45", "67"}, 0)
	cause := errors.New("模型超时")

	err := r.PlayTurn(context.Background(), &stubProposer{err: cause})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProposerFailure)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, r.CurrentTurn(), "失败不改变对局状态")
}

func TestPlayTurn_InvalidProposalNotSilentPass(t *testing.T) {
	t.Parallel()

	// 出牌源返回手牌之外的牌：校验失败上浮，回合不前进
	r := playingRound(t, [3]string{"K3", "45", "67"}, 0)
	outside, err := card.FindCardsInHand(card.NewDeck(), "2")
	require.NoError(t, err)

	err = r.PlayTurn(context.Background(), &stubProposer{move: PlayMove(outside)})
	assert.ErrorIs(t, err, apperrors.ErrCardsNotInHand)
	assert.Equal(t, 0, r.CurrentTurn())
	assert.Len(t, r.Player(0).Hand, 2)
}

func TestPlayTurn_LateProposalDiscarded(t *testing.T) {
	t.Parallel()

	r := playingRound(t, [3]string{"K3", "45", "67"}, 0)
	ctx, cancel := context.WithCancel(context.Background())

	// 出牌源返回时对局已被放弃：提案丢弃，手牌原封不动
	proposal := &stubProposer{
		move:      PlayMove(handCards(t, r, 0, "K")),
		onPropose: cancel,
	}

	err := r.PlayTurn(ctx, proposal)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, r.Player(0).Hand, 2)
	assert.Equal(t, 0, r.CurrentTurn())
}
