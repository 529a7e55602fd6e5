// Package proposer 提供 round.MoveProposer 的几种实现。
// 所有实现都只是"提案来源"，合法性永远由规则引擎裁决。
package proposer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jindou-games/doudizhu-arena/internal/game/card"
	"github.com/jindou-games/doudizhu-arena/internal/game/round"
)

// LLMConfig LLM 出牌源配置
type LLMConfig struct {
	Endpoint string        // 补全接口地址
	Model    string        // 模型名
	APIKey   string        // 可选的鉴权密钥
	Timeout  time.Duration // 单次调用超时
}

// LLMProposer 调用外部大模型生成出牌提案。
// 模型返回的是字符串形式的牌面，必须逐一映射回真实手牌；
// 任何无法匹配的内容都作为失败上浮，而不是静默当作 PASS。
type LLMProposer struct {
	cfg    LLMConfig
	client *http.Client
}

// NewLLMProposer 创建 LLM 出牌源
func NewLLMProposer(cfg LLMConfig) *LLMProposer {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &LLMProposer{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// llmRequest 补全请求体
type llmRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// llmResponse 模型返回：要出的牌面字符串数组（空数组表示 PASS）和思路
type llmResponse struct {
	Move      []string `json:"move"`
	Reasoning string   `json:"reasoning"`
}

// ProposeMove 实现 round.MoveProposer
func (p *LLMProposer) ProposeMove(ctx context.Context, view round.TurnView) (round.Move, error) {
	body, err := json.Marshal(llmRequest{
		Model:  p.cfg.Model,
		Prompt: buildPrompt(view),
	})
	if err != nil {
		return round.Move{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return round.Move{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return round.Move{}, fmt.Errorf("调用出牌模型失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return round.Move{}, fmt.Errorf("出牌模型返回 %d: %s", resp.StatusCode, data)
	}

	var result llmResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return round.Move{}, fmt.Errorf("解析模型输出失败: %w", err)
	}

	if len(result.Move) == 0 {
		// 模型明确表示不出
		return round.PassMove(), nil
	}

	cards, err := mapTokensToHand(result.Move, view.Hand)
	if err != nil {
		return round.Move{}, err
	}
	return round.PlayMove(cards), nil
}

// mapTokensToHand 把模型返回的牌面字符串映射回手牌中的具体牌。
// 每张手牌只能匹配一次；映射不上的字符串是模型的错误，不是 PASS。
func mapTokensToHand(tokens []string, hand []card.Card) ([]card.Card, error) {
	used := make([]bool, len(hand))
	result := make([]card.Card, 0, len(tokens))

	for _, token := range tokens {
		token = strings.TrimSpace(token)
		matched := false
		for i, c := range hand {
			if used[i] || c.ID() != token {
				continue
			}
			used[i] = true
			result = append(result, c)
			matched = true
			break
		}
		if !matched {
			return nil, fmt.Errorf("模型返回了手牌中不存在的牌: %q", token)
		}
	}
	return result, nil
}

// buildPrompt 构造出牌提示词
func buildPrompt(view round.TurnView) string {
	var sb strings.Builder

	sb.WriteString("你是一位精通斗地主的专家玩家，目标是尽快出完手中的牌。\n\n")
	sb.WriteString("规则摘要：\n")
	sb.WriteString("- 你出的牌必须在牌型和大小上都大过上家。\n")
	sb.WriteString("- 自由出牌时可以出任何合法牌型（单张、对子、顺子、炸弹等）。\n")
	sb.WriteString("- 要不起或不想出时，返回空数组表示 PASS。\n")
	sb.WriteString("- 牌力从小到大: 3,4,5,6,7,8,9,10,J,Q,K,A,2,B(小王),R(大王)。花色不影响大小。\n\n")

	fmt.Fprintf(&sb, "你的身份: %s\n", view.Role)
	fmt.Fprintf(&sb, "你的手牌: %s\n", formatHand(view.Hand))

	if view.Table != nil {
		fmt.Fprintf(&sb, "上家出牌: %s（%s）\n", formatHand(view.Table.Cards), view.Table.Type)
	} else {
		sb.WriteString("当前是自由出牌。\n")
	}

	sb.WriteString("\n返回 JSON 对象: 'move' 是要出的牌面字符串数组，")
	sb.WriteString("必须严格匹配你手牌中的写法（例如 [\"3♥\",\"4♠\"] 或 [\"B\",\"R\"]），不出则为 []；")
	sb.WriteString("'reasoning' 用简短中文解释思路。")

	return sb.String()
}

// formatHand 把手牌序列化为提示词中的写法
func formatHand(cards []card.Card) string {
	tokens := make([]string, len(cards))
	for i, c := range cards {
		tokens[i] = c.ID()
	}
	return strings.Join(tokens, ", ")
}
