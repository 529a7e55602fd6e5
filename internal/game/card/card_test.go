package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	require.Len(t, deck, DeckSize)

	// 54 张互不重复
	seen := make(map[Card]struct{})
	for _, c := range deck {
		_, dup := seen[c]
		assert.False(t, dup, "deck contains duplicate card %s", c)
		seen[c] = struct{}{}
	}

	// 每种点数 4 张，王各 1 张
	counts := CountRanks(deck)
	for r := Rank3; r <= Rank2; r++ {
		assert.Equal(t, 4, counts[r], "rank %s", r)
	}
	assert.Equal(t, 1, counts[RankBlackJoker])
	assert.Equal(t, 1, counts[RankRedJoker])
}

func TestShuffle_PreservesCards(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	shuffled := NewDeck()
	shuffled.Shuffle()

	require.Len(t, shuffled, DeckSize)
	assert.True(t, IsSubset(deck, shuffled))
	assert.True(t, IsSubset(shuffled, deck))
}

func TestShuffle_AlwaysKeepsDeckIntact(t *testing.T) {
	t.Parallel()

	// 反复洗牌都不会出现重复或丢牌
	for range 1000 {
		deck := NewDeck()
		deck.Shuffle()

		seen := make(map[Card]struct{}, DeckSize)
		for _, c := range deck {
			seen[c] = struct{}{}
		}
		require.Len(t, seen, DeckSize)
	}
}

func TestDeal(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	deck.Shuffle()

	result, err := Deal(deck)
	require.NoError(t, err)

	var all []Card
	for _, hand := range result.Hands {
		assert.Len(t, hand, HandSize)
		all = append(all, hand...)
	}
	assert.Len(t, result.Kitty, KittySize)
	all = append(all, result.Kitty...)

	// 三份手牌加底牌正好还原整副牌，没有重叠
	require.Len(t, all, DeckSize)
	assert.True(t, IsSubset(all, deck))
	assert.True(t, IsSubset(deck, all))
}

func TestDeal_InvalidDeck(t *testing.T) {
	t.Parallel()

	t.Run("牌数不足", func(t *testing.T) {
		t.Parallel()
		_, err := Deal(NewDeck()[:53])
		assert.Error(t, err)
	})

	t.Run("重复的牌", func(t *testing.T) {
		t.Parallel()
		deck := NewDeck()
		deck[0] = deck[1]
		_, err := Deal(deck)
		assert.Error(t, err)
	})
}

func TestSortHand(t *testing.T) {
	t.Parallel()

	hand := []Card{
		{Suit: Spade, Rank: Rank3},
		{Suit: Joker, Rank: RankRedJoker},
		{Suit: Heart, Rank: RankK},
		{Suit: Spade, Rank: Rank2},
	}
	original := make([]Card, len(hand))
	copy(original, hand)

	sorted := SortHand(hand)

	// 从大到小
	for i := 1; i < len(sorted); i++ {
		assert.GreaterOrEqual(t, sorted[i-1].Rank, sorted[i].Rank)
	}
	assert.Equal(t, RankRedJoker, sorted[0].Rank)
	assert.Equal(t, Rank3, sorted[len(sorted)-1].Rank)

	// 原切片不被修改
	assert.Equal(t, original, hand)

	// 幂等：排好序的手牌再排一次结果相同
	assert.Equal(t, sorted, SortHand(sorted))
}

func TestSortHand_Deterministic(t *testing.T) {
	t.Parallel()

	hand := []Card{
		{Suit: Diamond, Rank: Rank7},
		{Suit: Spade, Rank: Rank7},
		{Suit: Heart, Rank: Rank7},
	}
	// 同点数按花色排，结果可复现
	sorted := SortHand(hand)
	assert.Equal(t, Spade, sorted[0].Suit)
	assert.Equal(t, Heart, sorted[1].Suit)
	assert.Equal(t, Diamond, sorted[2].Suit)
}

func TestIsSubset(t *testing.T) {
	t.Parallel()

	hand := []Card{
		{Suit: Spade, Rank: Rank3},
		{Suit: Heart, Rank: Rank3},
		{Suit: Spade, Rank: RankA},
	}

	tests := []struct {
		name   string
		subset []Card
		want   bool
	}{
		{"空集", nil, true},
		{"单张存在", []Card{{Suit: Spade, Rank: RankA}}, true},
		{"一对存在", []Card{{Suit: Spade, Rank: Rank3}, {Suit: Heart, Rank: Rank3}}, true},
		{"不在手牌中", []Card{{Suit: Club, Rank: Rank3}}, false},
		{"同一张牌用两次", []Card{{Suit: Spade, Rank: RankA}, {Suit: Spade, Rank: RankA}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsSubset(tt.subset, hand))
		})
	}
}

func TestCardID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "3♠", Card{Suit: Spade, Rank: Rank3}.ID())
	assert.Equal(t, "10♥", Card{Suit: Heart, Rank: Rank10, Color: Red}.ID())
	assert.Equal(t, "B", Card{Suit: Joker, Rank: RankBlackJoker}.ID())
	assert.Equal(t, "R", Card{Suit: Joker, Rank: RankRedJoker, Color: Red}.ID())
}
