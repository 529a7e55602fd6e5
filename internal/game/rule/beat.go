package rule

import (
	"slices"

	"github.com/jindou-games/doudizhu-arena/internal/game/card"
)

// sequenceTypes 需要比较长度的牌型
var sequenceTypes = map[HandType]bool{
	Straight:         true,
	PairStraight:     true,
	Plane:            true,
	PlaneWithSingles: true,
	PlaneWithPairs:   true,
}

// CanBeat 判断 newHand 是否能大过 lastHand
func CanBeat(newHand, lastHand ParsedHand) bool {
	// 王炸最大
	if newHand.Type == Rocket {
		return true
	}
	if lastHand.Type == Rocket {
		return false
	}

	// 炸弹可以大过任何非炸弹牌型
	if newHand.Type == Bomb && lastHand.Type != Bomb {
		return true
	}

	// 牌型不同（且我不是炸弹）不能出
	if newHand.Type != lastHand.Type {
		return false
	}

	// 顺子、连对、飞机要求长度一致
	if sequenceTypes[newHand.Type] && newHand.Length != lastHand.Length {
		return false
	}

	// 牌型相同（或炸弹盖炸弹）比关键点数
	return newHand.KeyRank > lastHand.KeyRank
}

// handChecker 牌型检查函数类型
type handChecker func(HandAnalysis, ParsedHand) bool

// handCheckers 牌型检查函数映射表
var handCheckers = map[HandType]handChecker{
	Single:           func(a HandAnalysis, h ParsedHand) bool { return findWinningSingle(a, h) },
	Pair:             func(a HandAnalysis, h ParsedHand) bool { return findWinningPair(a, h) },
	Trio:             func(a HandAnalysis, h ParsedHand) bool { return findWinningTrio(a, h, 0) },
	TrioWithSingle:   func(a HandAnalysis, h ParsedHand) bool { return findWinningTrio(a, h, 1) },
	TrioWithPair:     func(a HandAnalysis, h ParsedHand) bool { return findWinningTrio(a, h, 2) },
	Straight:         func(a HandAnalysis, h ParsedHand) bool { return findWinningRun(a.singleRuns(), h) },
	PairStraight:     func(a HandAnalysis, h ParsedHand) bool { return findWinningRun(a.pairRuns(), h) },
	Plane:            func(a HandAnalysis, h ParsedHand) bool { return findWinningPlane(a, h, 0) },
	PlaneWithSingles: func(a HandAnalysis, h ParsedHand) bool { return findWinningPlane(a, h, 1) },
	PlaneWithPairs:   func(a HandAnalysis, h ParsedHand) bool { return findWinningPlane(a, h, 2) },
}

// CanBeatWithHand 检查一个玩家的整手牌中是否存在任何可以打过 target 的组合
func CanBeatWithHand(playerHand []card.Card, target ParsedHand) bool {
	// 新一轮总是有牌可出
	if target.IsEmpty() {
		return true
	}

	analysis := analyzeCards(playerHand)

	// 炸弹和王炸几乎可以打任何牌
	if hasWinningBombOrRocket(analysis, target) {
		return true
	}

	if target.Type == Bomb || target.Type == Rocket {
		return false
	}

	// 同类型更大的牌
	if checker, ok := handCheckers[target.Type]; ok {
		return checker(analysis, target)
	}
	return false
}

// hasWinningBombOrRocket 是否有能打过 target 的炸弹或王炸
func hasWinningBombOrRocket(analysis HandAnalysis, target ParsedHand) bool {
	if hasRocket(analysis) {
		return true
	}
	for _, r := range analysis.fours {
		myBomb := ParsedHand{Type: Bomb, KeyRank: r}
		if CanBeat(myBomb, target) {
			return true
		}
	}
	return false
}

// findWinningSingle 是否有更大的单张
func findWinningSingle(analysis HandAnalysis, target ParsedHand) bool {
	for r := range analysis.counts {
		if r > target.KeyRank {
			return true
		}
	}
	return false
}

// findWinningPair 是否有更大的对子
func findWinningPair(analysis HandAnalysis, target ParsedHand) bool {
	for r, count := range analysis.counts {
		if count >= 2 && r > target.KeyRank {
			return true
		}
	}
	return false
}

// findWinningTrio 是否有更大的三张（带或不带）
// kickerType: 0=不带, 1=带单, 2=带对
func findWinningTrio(analysis HandAnalysis, target ParsedHand, kickerType int) bool {
	for r, count := range analysis.counts {
		if count < 3 || r <= target.KeyRank {
			continue
		}
		remainingCards := handCardTotal(analysis) - 3
		switch kickerType {
		case 0:
			return true
		case 1:
			if remainingCards >= 1 {
				return true
			}
		case 2:
			if remainingCards < 2 {
				continue
			}
			// 剩余牌里要有一个对子：其他对子/三张/四张，或当前三张来自四张
			if len(analysis.pairs) > 0 || len(analysis.trios) > 1 || len(analysis.fours) > 1 || count == 4 {
				return true
			}
		}
	}
	return false
}

// singleRuns 返回可以参与顺子的点数（任何有牌的点数，2 和王除外）
func (a HandAnalysis) singleRuns() []card.Rank {
	var ranks []card.Rank
	for r := range a.counts {
		if r < card.Rank2 {
			ranks = append(ranks, r)
		}
	}
	slices.Sort(ranks)
	return ranks
}

// pairRuns 返回可以参与连对的点数
func (a HandAnalysis) pairRuns() []card.Rank {
	var ranks []card.Rank
	for r, count := range a.counts {
		if count >= 2 && r < card.Rank2 {
			ranks = append(ranks, r)
		}
	}
	slices.Sort(ranks)
	return ranks
}

// findWinningRun 在候选点数中用滑动窗口找一段更大的等长连续序列
func findWinningRun(available []card.Rank, target ParsedHand) bool {
	length := target.Length
	if len(available) < length {
		return false
	}
	for i := 0; i <= len(available)-length; i++ {
		if available[i] <= target.KeyRank {
			continue
		}
		if isContinuousSequence(available, i, length) {
			return true
		}
	}
	return false
}

// findWinningPlane 是否有更大的飞机（带或不带翅膀）
func findWinningPlane(analysis HandAnalysis, target ParsedHand, kickerType int) bool {
	length := target.Length

	var trioRanks []card.Rank
	for r, count := range analysis.counts {
		if count >= 3 && r < card.Rank2 {
			trioRanks = append(trioRanks, r)
		}
	}
	slices.Sort(trioRanks)

	if len(trioRanks) < length {
		return false
	}

	for i := 0; i <= len(trioRanks)-length; i++ {
		if !isContinuousSequence(trioRanks, i, length) {
			continue
		}
		if trioRanks[i] <= target.KeyRank {
			continue
		}
		if checkPlaneKickers(analysis, trioRanks, i, length, kickerType) {
			return true
		}
	}
	return false
}

// isContinuousSequence 检查 ranks[startIndex:startIndex+length] 是否连续
func isContinuousSequence(ranks []card.Rank, startIndex, length int) bool {
	for j := 1; j < length; j++ {
		if ranks[startIndex+j-1]+1 != ranks[startIndex+j] {
			return false
		}
	}
	return true
}

// handCardTotal 统计分析结果覆盖的总牌数
func handCardTotal(analysis HandAnalysis) int {
	total := 0
	for _, c := range analysis.counts {
		total += c
	}
	return total
}

// checkPlaneKickers 检查翅膀是否够
func checkPlaneKickers(analysis HandAnalysis, trioRanks []card.Rank, startIndex, length, kickerType int) bool {
	if kickerType == 0 {
		return true
	}

	remainingCardCount := handCardTotal(analysis) - length*3

	switch kickerType {
	case 1: // 带 N 张单牌
		return remainingCardCount >= length
	case 2: // 带 N 个对子
		if remainingCardCount < length*2 {
			return false
		}

		startRank := trioRanks[startIndex]
		endRank := trioRanks[startIndex+length-1]

		kickerPairs := 0
		for r, count := range analysis.counts {
			// 机身占用的点数不能再做翅膀
			if r >= startRank && r <= endRank {
				continue
			}
			kickerPairs += count / 2
		}
		return kickerPairs >= length
	}
	return false
}
