package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jindou-games/doudizhu-arena/internal/game/card"
	"github.com/jindou-games/doudizhu-arena/internal/protocol"
)

// Update 实现 tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConnectionErrorMsg:
		m.error = fmt.Sprintf("连接失败: %v", msg.Err)
		return m, nil

	case ConnectionClosedMsg:
		m.error = "与服务器的连接已断开"
		m.phase = PhaseConnecting
		return m, nil

	case ServerMessage:
		return m.handleServer(msg.Msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey 处理键盘输入
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.client.Close()
		return m, tea.Quit

	case tea.KeyEsc:
		switch m.phase {
		case PhaseLeaderboard, PhaseStats:
			m.phase = PhaseLobby
			return m, nil
		case PhasePlaying:
			_ = m.client.LeaveRound()
			m.resetRoundState()
			m.phase = PhaseLobby
			return m, nil
		case PhaseGameOver:
			// 对局已结算，服务端不再持有它，直接回大厅
			m.resetRoundState()
			m.phase = PhaseLobby
			return m, nil
		}
		m.client.Close()
		return m, tea.Quit

	case tea.KeyEnter:
		return m.handleEnter()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleEnter 处理回车确认
func (m *Model) handleEnter() (tea.Model, tea.Cmd) {
	value := strings.ToUpper(strings.TrimSpace(m.input.Value()))
	m.input.SetValue("")
	m.error = ""

	switch m.phase {
	case PhaseLobby:
		switch value {
		case "1":
			_ = m.client.StartRound("")
		case "2":
			m.leaderboard = nil
			m.phase = PhaseLeaderboard
			_ = m.client.GetLeaderboard("total", 0, 10)
		case "3":
			m.myStats = nil
			m.transactions = nil
			m.phase = PhaseStats
			_ = m.client.GetStats()
			_ = m.client.GetTransactions(5)
		case "Q":
			m.client.Close()
			return m, tea.Quit
		}

	case PhasePlaying:
		if !m.myTurn {
			m.error = "还没轮到您"
			break
		}
		switch value {
		case "", "P", "PASS":
			_ = m.client.Pass()
		case "H", "?":
			_ = m.client.Hint()
		default:
			cards, err := card.FindCardsInHand(m.hand, value)
			if err != nil {
				m.error = err.Error()
				break
			}
			_ = m.client.PlayCards(protocol.CardsToInfos(cards))
		}

	case PhaseGameOver:
		m.resetRoundState()
		m.phase = PhaseLobby
	}

	return m, nil
}
