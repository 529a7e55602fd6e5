package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jindou-games/doudizhu-arena/internal/game/card"
	"github.com/jindou-games/doudizhu-arena/internal/protocol"
)

// handleServer 把服务器推送翻译成界面状态变更
func (m *Model) handleServer(msg *protocol.Message) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case protocol.MsgConnected:
		if payload, err := protocol.ParsePayload[protocol.ConnectedPayload](msg); err == nil {
			m.playerID = payload.PlayerID
			m.playerName = payload.PlayerName
			m.credits = payload.Credits
		}
		m.phase = PhaseLobby

	case protocol.MsgPong:
		m.latency = m.client.GetLatency()

	case protocol.MsgRoundStart:
		if payload, err := protocol.ParsePayload[protocol.RoundStartPayload](msg); err == nil {
			m.resetRoundState()
			m.seats = payload.Seats
			m.hand = card.SortHand(protocol.InfosToCards(payload.Hand))
			m.credits = payload.Credits
			m.phase = PhasePlaying
			m.soundManager.Play("deal")
		}

	case protocol.MsgLandlord:
		if payload, err := protocol.ParsePayload[protocol.LandlordPayload](msg); err == nil {
			m.landlordSeat = payload.Seat
			m.kitty = protocol.InfosToCards(payload.Kitty)
			if len(payload.Hand) > 0 {
				m.hand = card.SortHand(protocol.InfosToCards(payload.Hand))
			}
			for i := range m.seats {
				if m.seats[i].Seat == payload.Seat {
					m.seats[i].Role = "landlord"
					m.seats[i].CardCount += len(m.kitty)
				} else {
					m.seats[i].Role = "peasant"
				}
			}
		}

	case protocol.MsgPlayTurn:
		if payload, err := protocol.ParsePayload[protocol.PlayTurnPayload](msg); err == nil {
			m.myTurn = true
			m.freePlay = payload.FreePlay
			m.canBeat = payload.CanBeat
			m.thinkingSeat = -1
			m.hintText = ""
			m.soundManager.Play("your_turn")
		}

	case protocol.MsgBotThinking:
		if payload, err := protocol.ParsePayload[protocol.BotThinkingPayload](msg); err == nil {
			m.thinkingSeat = payload.Seat
		}

	case protocol.MsgCardPlayed:
		if payload, err := protocol.ParsePayload[protocol.CardPlayedPayload](msg); err == nil {
			played := protocol.InfosToCards(payload.Cards)
			m.lastPlayed = card.SortHand(played)
			m.lastSeat = payload.Seat
			m.lastHandType = payload.HandType
			m.thinkingSeat = -1
			for i := range m.seats {
				if m.seats[i].Seat == payload.Seat {
					m.seats[i].CardCount = payload.Remaining
				}
			}
			if payload.Seat == m.mySeat {
				m.hand = card.RemoveCards(m.hand, played)
				m.myTurn = false
				m.hintText = ""
			}
			m.soundManager.Play("play")
		}

	case protocol.MsgPlayerPass:
		if payload, err := protocol.ParsePayload[protocol.PlayerPassPayload](msg); err == nil {
			m.thinkingSeat = -1
			if payload.Seat == m.mySeat {
				m.myTurn = false
			}
			if payload.TableCleared {
				// 两家都要不起，桌面清空
				m.lastPlayed = nil
				m.lastSeat = -1
				m.lastHandType = ""
			}
			m.soundManager.Play("pass")
		}

	case protocol.MsgRoundOver:
		if payload, err := protocol.ParsePayload[protocol.RoundOverPayload](msg); err == nil {
			m.winnerSeat = payload.WinnerSeat
			m.winnerRole = payload.WinnerRole
			m.reward = payload.Reward
			m.credits = payload.Credits
			m.phase = PhaseGameOver
			if payload.WinnerSeat == m.mySeat {
				m.soundManager.Play("win")
			} else {
				m.soundManager.Play("lose")
			}
		}

	case protocol.MsgHintResult:
		if payload, err := protocol.ParsePayload[protocol.HintResultPayload](msg); err == nil {
			if len(payload.Cards) == 0 {
				m.hintText = "没有能压过的牌，建议不出"
			} else {
				cards := protocol.InfosToCards(payload.Cards)
				var names []string
				for _, c := range card.SortHand(cards) {
					names = append(names, c.Rank.String())
				}
				m.hintText = "提示: " + strings.Join(names, " ")
			}
		}

	case protocol.MsgCreditsUpdate:
		if payload, err := protocol.ParsePayload[protocol.CreditsUpdatePayload](msg); err == nil {
			m.credits = payload.Credits
		}

	case protocol.MsgStatsResult:
		if payload, err := protocol.ParsePayload[protocol.StatsResultPayload](msg); err == nil {
			m.myStats = payload
		}

	case protocol.MsgTransactionsResult:
		if payload, err := protocol.ParsePayload[protocol.TransactionsResultPayload](msg); err == nil {
			m.transactions = payload.Entries
		}

	case protocol.MsgLeaderboardResult:
		if payload, err := protocol.ParsePayload[protocol.LeaderboardResultPayload](msg); err == nil {
			m.leaderboard = payload.Entries
		}

	case protocol.MsgError:
		if payload, err := protocol.ParsePayload[protocol.ErrorPayload](msg); err == nil {
			m.error = payload.Message
			if payload.Code == protocol.ErrCodeInsufficientCredits {
				m.error = fmt.Sprintf("%s（当前: %d）", payload.Message, m.credits)
			}
		}
	}

	return m, m.waitForServer()
}
