package rule

import (
	"fmt"
	"slices"

	"github.com/jindou-games/doudizhu-arena/internal/game/card"
)

// HandType 定义牌型
type HandType int

const (
	Invalid        HandType = iota
	Single                  // 单张
	Pair                    // 对子
	Trio                    // 三张不带
	TrioWithSingle          // 三带一
	TrioWithPair            // 三带二

	Straight         // 顺子（5张或以上连续单张）
	PairStraight     // 连对（3对或以上）
	Plane            // 飞机不带翅膀（2个或以上连续三张）
	PlaneWithSingles // 飞机带单
	PlaneWithPairs   // 飞机带对

	Bomb             // 炸弹（四张相同）
	FourWithTwo      // 四带二（带两张单牌）
	FourWithTwoPairs // 四带两对

	Rocket // 王炸（双王）
)

// handTypeNames 牌型名称映射表
var handTypeNames = map[HandType]string{
	Single:           "单张",
	Pair:             "对子",
	Trio:             "三张",
	TrioWithSingle:   "三带一",
	TrioWithPair:     "三带二",
	Straight:         "顺子",
	PairStraight:     "连对",
	Plane:            "飞机",
	PlaneWithSingles: "飞机带单",
	PlaneWithPairs:   "飞机带对",
	Bomb:             "炸弹",
	FourWithTwo:      "四带二",
	FourWithTwoPairs: "四带两对",
	Rocket:           "王炸",
}

func (h HandType) String() string {
	if name, ok := handTypeNames[h]; ok {
		return name
	}
	return "无效"
}

// ParsedHand 解析后的一手牌，携带用于比较的强度信息
type ParsedHand struct {
	Type    HandType
	KeyRank card.Rank   // 决定大小的关键牌点数 (例如 3334 中的 3, 或 34567 中的 3)
	Length  int         // 牌型的长度，主要用于顺子、连对、飞机
	Cards   []card.Card // 这手牌包含的卡牌
}

func (p ParsedHand) IsEmpty() bool {
	return p.Type == Invalid
}

// HandAnalysis 对一手牌进行预分析，统计不同点数的牌出现了几次
type HandAnalysis struct {
	counts map[card.Rank]int // 每种点数牌的数量
	// 为了方便，提前将不同数量的牌分组
	fours []card.Rank
	trios []card.Rank
	pairs []card.Rank
	ones  []card.Rank
}

// analyzeCards 分析手牌，返回一个包含所有统计信息的结构
func analyzeCards(cards []card.Card) HandAnalysis {
	analysis := HandAnalysis{
		counts: make(map[card.Rank]int),
	}
	for _, c := range cards {
		analysis.counts[c.Rank]++
	}

	for r, count := range analysis.counts {
		switch count {
		case 4:
			analysis.fours = append(analysis.fours, r)
		case 3:
			analysis.trios = append(analysis.trios, r)
		case 2:
			analysis.pairs = append(analysis.pairs, r)
		case 1:
			analysis.ones = append(analysis.ones, r)
		}
	}

	// 对结果进行排序，方便后续判断连续性
	slices.Sort(analysis.fours)
	slices.Sort(analysis.trios)
	slices.Sort(analysis.pairs)
	slices.Sort(analysis.ones)

	return analysis
}

// isContinuous 检查给定的点数切片是否连续，并且不能包含 2 和大小王
func isContinuous(ranks []card.Rank) bool {
	if len(ranks) == 0 {
		return false
	}
	for i, r := range ranks {
		if r >= card.Rank2 { // 顺子、连对、飞机不能包含2和王
			return false
		}
		if i > 0 && ranks[i-1]+1 != r {
			return false
		}
	}
	return true
}

// ParseHand 解析牌型。无法归入任何牌型的组合返回错误，绝不猜测意图。
func ParseHand(cards []card.Card) (ParsedHand, error) {
	if len(cards) == 0 {
		return ParsedHand{}, fmt.Errorf("不能出空牌")
	}

	analysis := analyzeCards(cards)

	// 按优先级检查各种牌型
	checks := []func(HandAnalysis, []card.Card) (ParsedHand, bool){
		isRocket,          // 王炸
		isBomb,            // 炸弹
		isFourWithKickers, // 四带二
		isTrioWithKickers, // 三带X
		isPlane,           // 飞机
		isStraight,        // 顺子
		isPairStraight,    // 连对
		isSimpleType,      // 简单牌型（单、对、三）
	}

	for _, check := range checks {
		if hand, ok := check(analysis, cards); ok {
			return hand, nil
		}
	}

	return ParsedHand{}, fmt.Errorf("不支持的牌型: %v", cards)
}

// isRocket 双王
func isRocket(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	if len(cards) != 2 {
		return ParsedHand{}, false
	}
	if a.counts[card.RankBlackJoker] == 1 && a.counts[card.RankRedJoker] == 1 {
		return ParsedHand{Type: Rocket, KeyRank: card.RankRedJoker, Cards: cards}, true
	}
	return ParsedHand{}, false
}

// isBomb 四张相同
func isBomb(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	if len(cards) != 4 || len(a.fours) != 1 {
		return ParsedHand{}, false
	}
	return ParsedHand{Type: Bomb, KeyRank: a.fours[0], Cards: cards}, true
}

// isFourWithKickers 四带二 / 四带两对
func isFourWithKickers(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	if len(a.fours) != 1 {
		return ParsedHand{}, false
	}
	key := a.fours[0]

	switch len(cards) {
	case 6:
		// 四带两张单牌（也允许拆一个对子当两张单牌带出）
		return ParsedHand{Type: FourWithTwo, KeyRank: key, Cards: cards}, true
	case 8:
		// 四带两对
		if len(a.pairs) == 2 {
			return ParsedHand{Type: FourWithTwoPairs, KeyRank: key, Cards: cards}, true
		}
	}
	return ParsedHand{}, false
}

// isTrioWithKickers 三带一 / 三带二
func isTrioWithKickers(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	if len(a.trios) != 1 || len(a.fours) != 0 {
		return ParsedHand{}, false
	}
	key := a.trios[0]

	switch len(cards) {
	case 4:
		return ParsedHand{Type: TrioWithSingle, KeyRank: key, Cards: cards}, true
	case 5:
		if len(a.pairs) == 1 {
			return ParsedHand{Type: TrioWithPair, KeyRank: key, Cards: cards}, true
		}
	}
	return ParsedHand{}, false
}

// isPlane 飞机（带或不带翅膀）。机身是两个或以上连续的三张，不能含 2。
func isPlane(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	body := a.trios
	if len(body) < 2 || !isContinuous(body) {
		return ParsedHand{}, false
	}
	n := len(body)
	key := body[0]

	switch len(cards) {
	case n * 3:
		return ParsedHand{Type: Plane, KeyRank: key, Length: n, Cards: cards}, true
	case n * 4:
		// 翅膀是 n 张单牌（允许拆对）
		return ParsedHand{Type: PlaneWithSingles, KeyRank: key, Length: n, Cards: cards}, true
	case n * 5:
		// 翅膀必须是 n 个对子
		if len(a.pairs) == n {
			return ParsedHand{Type: PlaneWithPairs, KeyRank: key, Length: n, Cards: cards}, true
		}
	}
	return ParsedHand{}, false
}

// isStraight 顺子：5 张或以上连续单张
func isStraight(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	if len(cards) < 5 || len(a.ones) != len(cards) {
		return ParsedHand{}, false
	}
	if !isContinuous(a.ones) {
		return ParsedHand{}, false
	}
	return ParsedHand{Type: Straight, KeyRank: a.ones[0], Length: len(cards), Cards: cards}, true
}

// isPairStraight 连对：3 对或以上连续对子
func isPairStraight(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	if len(a.pairs) < 3 || len(cards) != len(a.pairs)*2 {
		return ParsedHand{}, false
	}
	if !isContinuous(a.pairs) {
		return ParsedHand{}, false
	}
	return ParsedHand{Type: PairStraight, KeyRank: a.pairs[0], Length: len(a.pairs), Cards: cards}, true
}

// isSimpleType 单张、对子、三张
func isSimpleType(a HandAnalysis, cards []card.Card) (ParsedHand, bool) {
	switch len(cards) {
	case 1:
		return ParsedHand{Type: Single, KeyRank: cards[0].Rank, Cards: cards}, true
	case 2:
		if len(a.pairs) == 1 {
			return ParsedHand{Type: Pair, KeyRank: a.pairs[0], Cards: cards}, true
		}
	case 3:
		if len(a.trios) == 1 {
			return ParsedHand{Type: Trio, KeyRank: a.trios[0], Cards: cards}, true
		}
	}
	return ParsedHand{}, false
}
