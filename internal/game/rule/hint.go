package rule

import "github.com/jindou-games/doudizhu-arena/internal/game/card"

// FindSmallestBeatingCards 找到能打过 target 的最小牌组。
// 找不到返回 nil。本地机器人兜底和提示功能共用这个入口。
func FindSmallestBeatingCards(playerHand []card.Card, target ParsedHand) []card.Card {
	// 新一轮自由出牌：出最小的单牌
	if target.IsEmpty() {
		if len(playerHand) > 0 {
			return []card.Card{playerHand[len(playerHand)-1]}
		}
		return nil
	}

	analysis := analyzeCards(playerHand)

	// 优先找同类型的最小牌
	var result []card.Card

	switch target.Type {
	case Single:
		result = findSmallestBeatingSingle(playerHand, analysis, target)
	case Pair:
		result = findSmallestBeatingPair(playerHand, analysis, target)
	case Trio:
		result = findSmallestBeatingTrio(playerHand, analysis, target, 0)
	case TrioWithSingle:
		result = findSmallestBeatingTrio(playerHand, analysis, target, 1)
	case TrioWithPair:
		result = findSmallestBeatingTrio(playerHand, analysis, target, 2)
	}

	if result != nil {
		return result
	}

	// 同类型压不过，试最小的炸弹
	result = findSmallestBomb(playerHand, analysis, target)
	if result != nil {
		return result
	}

	// 最后才动用王炸
	if hasRocket(analysis) && target.Type != Rocket {
		return findRocket(playerHand)
	}

	return nil
}

// findSmallestBeatingSingle 能打过的最小单牌，优先不拆对子和三张
func findSmallestBeatingSingle(playerHand []card.Card, analysis HandAnalysis, target ParsedHand) []card.Card {
	for _, group := range [][]card.Rank{analysis.ones, analysis.pairs, analysis.trios, analysis.fours} {
		for _, r := range group {
			if r > target.KeyRank {
				return findCardsWithRank(playerHand, r, 1)
			}
		}
	}
	return nil
}

// findSmallestBeatingPair 能打过的最小对子
func findSmallestBeatingPair(playerHand []card.Card, analysis HandAnalysis, target ParsedHand) []card.Card {
	for _, group := range [][]card.Rank{analysis.pairs, analysis.trios, analysis.fours} {
		for _, r := range group {
			if r > target.KeyRank {
				return findCardsWithRank(playerHand, r, 2)
			}
		}
	}
	return nil
}

// findSmallestBeatingTrio 能打过的最小三张（带或不带）
func findSmallestBeatingTrio(playerHand []card.Card, analysis HandAnalysis, target ParsedHand, kickerType int) []card.Card {
	for _, group := range [][]card.Rank{analysis.trios, analysis.fours} {
		for _, r := range group {
			if r <= target.KeyRank {
				continue
			}
			result := findCardsWithRank(playerHand, r, 3)
			if kickerType == 0 {
				return result
			}
			kickers := findSmallestKickers(playerHand, analysis, r, kickerType)
			if kickers != nil {
				return append(result, kickers...)
			}
		}
	}
	return nil
}

// findSmallestBomb 最小的能打过 target 的炸弹
func findSmallestBomb(playerHand []card.Card, analysis HandAnalysis, target ParsedHand) []card.Card {
	// 王炸谁也压不过
	if target.Type == Rocket {
		return nil
	}
	for _, r := range analysis.fours {
		if target.Type != Bomb || r > target.KeyRank {
			return findCardsWithRank(playerHand, r, 4)
		}
	}
	return nil
}

// findSmallestKickers 找到最小的带牌
// kickerType: 1=带单张, 2=带对子
func findSmallestKickers(playerHand []card.Card, analysis HandAnalysis, excludeRank card.Rank, kickerType int) []card.Card {
	var kickers []card.Card
	neededCards := kickerType // 1张单牌或1对

	collectFromRanks := func(ranks []card.Rank, countPerRank int) bool {
		for _, r := range ranks {
			if r != excludeRank {
				kickers = append(kickers, findCardsWithRank(playerHand, r, countPerRank)...)
				if len(kickers) >= neededCards {
					kickers = kickers[:neededCards]
					return true
				}
			}
		}
		return false
	}

	if kickerType == 1 {
		// 带单张：优先从单牌、对子中取
		if collectFromRanks(analysis.ones, 1) || collectFromRanks(analysis.pairs, 1) {
			return kickers
		}
	} else {
		// 带对子：从对子、三张、四张中取
		if collectFromRanks(analysis.pairs, 2) ||
			collectFromRanks(analysis.trios, 2) ||
			collectFromRanks(analysis.fours, 2) {
			return kickers
		}
	}
	return nil
}

// findCardsWithRank 从手牌中找到指定点数的牌
func findCardsWithRank(playerHand []card.Card, rank card.Rank, count int) []card.Card {
	var result []card.Card
	for _, c := range playerHand {
		if c.Rank == rank {
			result = append(result, c)
			if len(result) >= count {
				return result
			}
		}
	}
	return result
}

// hasRocket 检查是否有王炸
func hasRocket(analysis HandAnalysis) bool {
	return analysis.counts[card.RankBlackJoker] > 0 && analysis.counts[card.RankRedJoker] > 0
}

// findRocket 找到王炸
func findRocket(playerHand []card.Card) []card.Card {
	var result []card.Card
	for _, c := range playerHand {
		if c.Rank == card.RankBlackJoker || c.Rank == card.RankRedJoker {
			result = append(result, c)
		}
	}
	return result
}
