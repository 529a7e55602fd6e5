package proposer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jindou-games/doudizhu-arena/internal/game/card"
	"github.com/jindou-games/doudizhu-arena/internal/game/round"
)

// llmStub 启动一个固定返回 move 的假补全服务
func llmStub(t *testing.T, status int, move []string) (*httptest.Server, *http.Request) {
	t.Helper()
	var captured http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r.Clone(context.Background())
		w.WriteHeader(status)
		if status == http.StatusOK {
			_ = json.NewEncoder(w).Encode(llmResponse{Move: move, Reasoning: "测试"})
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestLLMProposer_MapsTokensToHand(t *testing.T) {
	t.Parallel()

	hand := cardsOf(t, "3344K")
	srv, _ := llmStub(t, http.StatusOK, []string{hand[1].ID(), hand[2].ID()})

	p := NewLLMProposer(LLMConfig{Endpoint: srv.URL, Model: "test"})
	move, err := p.ProposeMove(context.Background(), round.TurnView{Hand: hand, FreePlay: true})
	require.NoError(t, err)

	assert.False(t, move.Pass)
	require.Len(t, move.Cards, 2)
	assert.True(t, card.IsSubset(move.Cards, hand))
}

func TestLLMProposer_EmptyMoveIsPass(t *testing.T) {
	t.Parallel()

	srv, _ := llmStub(t, http.StatusOK, []string{})
	p := NewLLMProposer(LLMConfig{Endpoint: srv.URL})

	move, err := p.ProposeMove(context.Background(), round.TurnView{Hand: cardsOf(t, "345")})
	require.NoError(t, err)
	assert.True(t, move.Pass)
}

func TestLLMProposer_UnknownTokenIsError(t *testing.T) {
	t.Parallel()

	// 模型幻觉出手牌里没有的牌：必须上浮为错误，而不是当作 PASS
	srv, _ := llmStub(t, http.StatusOK, []string{"R"})
	p := NewLLMProposer(LLMConfig{Endpoint: srv.URL})

	move, err := p.ProposeMove(context.Background(), round.TurnView{Hand: cardsOf(t, "345")})
	require.Error(t, err)
	assert.False(t, move.Pass)
	assert.Contains(t, err.Error(), "R")
}

func TestLLMProposer_DuplicateTokenIsError(t *testing.T) {
	t.Parallel()

	// 同一张牌只能匹配一次
	hand := cardsOf(t, "3K")
	token := hand[1].ID()
	srv, _ := llmStub(t, http.StatusOK, []string{token, token})
	p := NewLLMProposer(LLMConfig{Endpoint: srv.URL})

	_, err := p.ProposeMove(context.Background(), round.TurnView{Hand: hand, FreePlay: true})
	assert.Error(t, err)
}

func TestLLMProposer_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv, _ := llmStub(t, http.StatusInternalServerError, nil)
	p := NewLLMProposer(LLMConfig{Endpoint: srv.URL})

	_, err := p.ProposeMove(context.Background(), round.TurnView{Hand: cardsOf(t, "3")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestLLMProposer_SendsAuthHeader(t *testing.T) {
	t.Parallel()

	srv, captured := llmStub(t, http.StatusOK, []string{})
	p := NewLLMProposer(LLMConfig{Endpoint: srv.URL, APIKey: "sk-test"})

	_, err := p.ProposeMove(context.Background(), round.TurnView{Hand: cardsOf(t, "3")})
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-test", captured.Header.Get("Authorization"))
	assert.Equal(t, "application/json", captured.Header.Get("Content-Type"))
}
