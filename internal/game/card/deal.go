package card

import (
	"fmt"
	"slices"
)

const (
	DeckSize  = 54 // 一副完整的牌
	HandSize  = 17 // 每位玩家的起手牌数
	KittySize = 3  // 底牌数
)

// DealResult 一次发牌的结果：三份手牌加三张底牌
type DealResult struct {
	Hands [3][]Card
	Kitty []Card
}

// Deal 把一副已洗好的牌切成 17/17/17 + 3 张底牌。
// 输入必须恰好是 54 张互不重复的牌，否则视为违反发牌不变量。
func Deal(deck Deck) (DealResult, error) {
	if len(deck) != DeckSize {
		return DealResult{}, fmt.Errorf("发牌需要 %d 张牌，实际 %d 张", DeckSize, len(deck))
	}
	seen := make(map[Card]struct{}, DeckSize)
	for _, c := range deck {
		if _, dup := seen[c]; dup {
			return DealResult{}, fmt.Errorf("牌堆中出现重复的牌: %s", c)
		}
		seen[c] = struct{}{}
	}

	var result DealResult
	for i := range result.Hands {
		start := i * HandSize
		result.Hands[i] = slices.Clone(deck[start : start+HandSize])
	}
	result.Kitty = slices.Clone(deck[3*HandSize:])
	return result, nil
}

// SortHand 返回按牌力从大到小排序的新手牌，不修改原切片。
// 同点数的牌按花色保持确定顺序，保证展示可复现。
func SortHand(hand []Card) []Card {
	sorted := slices.Clone(hand)
	slices.SortStableFunc(sorted, func(a, b Card) int {
		if a.Rank != b.Rank {
			return int(b.Rank) - int(a.Rank)
		}
		return int(a.Suit) - int(b.Suit)
	})
	return sorted
}

// IsSubset 判断 subset 中的每张牌是否都在 superset 中（按张数计）
func IsSubset(subset, superset []Card) bool {
	remaining := make(map[Card]int, len(superset))
	for _, c := range superset {
		remaining[c]++
	}
	for _, c := range subset {
		if remaining[c] == 0 {
			return false
		}
		remaining[c]--
	}
	return true
}
