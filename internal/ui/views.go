package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jindou-games/doudizhu-arena/internal/game/card"
)

// View 实现 tea.Model
func (m *Model) View() string {
	switch m.phase {
	case PhaseConnecting:
		return m.connectingView()
	case PhaseLobby:
		return m.lobbyView()
	case PhasePlaying:
		return m.gameView()
	case PhaseGameOver:
		return m.gameOverView()
	case PhaseLeaderboard:
		return m.leaderboardView()
	case PhaseStats:
		return m.statsView()
	}
	return ""
}

func (m *Model) connectingView() string {
	content := "🔌 正在连接服务器..."
	if m.error != "" {
		content = errorStyle.Render(m.error)
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) lobbyView() string {
	var sb strings.Builder

	title := titleStyle("🎮 欢乐斗地主")
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	if m.playerName != "" {
		welcome := fmt.Sprintf("欢迎, %s!  💰 积分: %d", m.playerName, m.credits)
		sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, welcome))
		sb.WriteString("\n\n")
	}

	menu := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		"请选择:",
		"",
		"  1. 开始游戏 (两名机器人陪练)",
		"  2. 排行榜",
		"  3. 我的战绩",
		"  Q. 退出",
	))
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, menu))
	sb.WriteString("\n\n")

	m.input.Placeholder = "输入选项 (1-3)"
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.input.View()))

	if m.error != "" {
		sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, "\n"+errorStyle.Render(m.error)))
	}

	return sb.String()
}

func (m *Model) gameView() string {
	var sb strings.Builder

	// 顶部：底牌
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderKitty()))
	sb.WriteString("\n")

	// 中部：机器人信息和桌面上的牌
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderMiddleSection()))
	sb.WriteString("\n")

	// 底部：自己的手牌
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderMyHand()))
	sb.WriteString("\n")

	// 提示和输入
	sb.WriteString(m.renderPrompt())

	if m.error != "" {
		sb.WriteString("\n" + errorStyle.Render(m.error))
	}

	return sb.String()
}

// renderKitty 渲染底牌
func (m *Model) renderKitty() string {
	if len(m.kitty) == 0 {
		return boxStyle.Render("底牌: (待揭晓)")
	}

	var cardStrs []string
	for _, c := range m.kitty {
		style := blackStyle
		if c.Color == card.Red {
			style = redStyle
		}
		cardStrs = append(cardStrs, style.Render(fmt.Sprintf("%s%s", c.Suit.String(), c.Rank.String())))
	}
	return boxStyle.Render("底牌: " + strings.Join(cardStrs, " "))
}

// renderMiddleSection 渲染机器人信息和上一手牌
func (m *Model) renderMiddleSection() string {
	var parts []string

	for _, s := range m.seats {
		if s.Seat == m.mySeat {
			continue
		}

		icon := BotIcon
		switch s.Role {
		case "landlord":
			icon = LandlordIcon
		case "peasant":
			icon = PeasantIcon
		}

		name := s.Name
		if m.thinkingSeat == s.Seat {
			name = turnStyle.Render(name + " 💭")
		}

		info := fmt.Sprintf("%s %s\n🃏 %d张", icon, name, s.CardCount)
		parts = append(parts, boxStyle.Width(15).Render(info))
	}

	lastPlayView := "(等待出牌...)"
	if len(m.lastPlayed) > 0 {
		var cardStrs []string
		for _, c := range m.lastPlayed {
			style := blackStyle
			if c.Color == card.Red {
				style = redStyle
			}
			cardStrs = append(cardStrs, style.Render(c.Rank.String()))
		}
		who := "我"
		if m.lastSeat != m.mySeat {
			for _, s := range m.seats {
				if s.Seat == m.lastSeat {
					who = s.Name
				}
			}
		}
		lastPlayView = fmt.Sprintf("%s: %s\n%s", who, strings.Join(cardStrs, " "), m.lastHandType)
	}
	parts = append(parts, boxStyle.Width(25).Render(lastPlayView))

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderMyHand 渲染自己的手牌
func (m *Model) renderMyHand() string {
	if len(m.hand) == 0 {
		return boxStyle.Render("(无手牌)")
	}

	var rankStr, suitStr strings.Builder
	for _, c := range m.hand {
		style := blackStyle
		if c.Color == card.Red {
			style = redStyle
		}
		style = style.Align(lipgloss.Center).Margin(0, 1)
		rankStr.WriteString(style.Render(fmt.Sprintf("%-2s", c.Rank.String())))
		suitStr.WriteString(style.Render(fmt.Sprintf("%-2s", c.Suit.String())))
	}

	icon := PeasantIcon
	if m.landlordSeat == m.mySeat {
		icon = LandlordIcon
	}
	title := fmt.Sprintf("我的手牌 %s (%d张)", icon, len(m.hand))
	content := lipgloss.JoinVertical(lipgloss.Center, title, rankStr.String(), suitStr.String())
	return boxStyle.Render(content)
}

// renderPrompt 渲染底部提示和输入框
func (m *Model) renderPrompt() string {
	var sb strings.Builder

	if m.myTurn {
		if m.freePlay {
			sb.WriteString("轮到你出牌! 桌面已清空，可任意领出\n")
		} else if m.canBeat {
			sb.WriteString("轮到你出牌! 输入牌面 (如 334455)，P=不出，H=提示\n")
		} else {
			sb.WriteString("轮到你出牌! " + dimStyle.Render("手里没有能压过的牌") + " P=不出\n")
		}
	} else if m.thinkingSeat >= 0 {
		sb.WriteString("等待机器人出牌...\n")
	}

	if m.hintText != "" {
		sb.WriteString(m.hintText + "\n")
	}

	m.input.Placeholder = "出牌 / P / H"
	sb.WriteString(m.input.View())

	if m.latency > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  %dms", m.latency)))
	}

	return promptStyle.Render(sb.String())
}

func (m *Model) gameOverView() string {
	winnerName := "?"
	for _, s := range m.seats {
		if s.Seat == m.winnerSeat {
			winnerName = s.Name
		}
	}
	if m.winnerSeat == m.mySeat {
		winnerName = "你"
	}

	roleStr := "农民"
	if m.winnerRole == "landlord" {
		roleStr = "地主"
	}

	rewardStr := ""
	if m.reward > 0 {
		rewardStr = fmt.Sprintf("\n💰 +%d 积分 (余额: %d)", m.reward, m.credits)
	}

	msg := fmt.Sprintf("🎮 游戏结束!\n\n🏆 %s (%s) 获胜!%s\n\n按回车返回大厅", winnerName, roleStr, rewardStr)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

func (m *Model) leaderboardView() string {
	var sb strings.Builder

	title := titleStyle("🏆 排行榜")
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	if len(m.leaderboard) == 0 {
		sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, "正在加载排行榜..."))
	} else {
		var table strings.Builder
		table.WriteString(fmt.Sprintf("%-4s %-12s %8s %6s %8s\n", "排名", "玩家", "积分", "胜场", "胜率"))
		table.WriteString(strings.Repeat("─", 50) + "\n")
		for _, e := range m.leaderboard {
			rankIcon := fmt.Sprintf("%2d.", e.Rank)
			switch e.Rank {
			case 1:
				rankIcon = "🥇"
			case 2:
				rankIcon = "🥈"
			case 3:
				rankIcon = "🥉"
			}
			table.WriteString(fmt.Sprintf("%-4s %-12s %8d %6d %7.1f%%\n",
				rankIcon, truncateName(e.PlayerName, 10), e.Score, e.Wins, e.WinRate))
		}
		sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(table.String())))
	}

	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, "按 ESC 返回大厅"))

	return sb.String()
}

func (m *Model) statsView() string {
	var sb strings.Builder

	title := titleStyle("📊 我的战绩")
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	sb.WriteString("\n\n")

	if m.myStats == nil || m.myStats.TotalGames == 0 {
		sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, "暂无战绩数据"))
	} else {
		s := m.myStats
		var box strings.Builder
		box.WriteString(fmt.Sprintf("积分: %d\n", s.Score))
		box.WriteString(strings.Repeat("─", 40) + "\n")

		winRate := 0.0
		if s.TotalGames > 0 {
			winRate = float64(s.Wins) / float64(s.TotalGames) * 100
		}
		box.WriteString(fmt.Sprintf("总场次: %d  胜: %d  负: %d  胜率: %.1f%%\n",
			s.TotalGames, s.Wins, s.Losses, winRate))

		landlordRate := 0.0
		if s.LandlordGames > 0 {
			landlordRate = float64(s.LandlordWins) / float64(s.LandlordGames) * 100
		}
		box.WriteString(fmt.Sprintf("地主: %d胜/%d场 (%.1f%%)\n",
			s.LandlordWins, s.LandlordGames, landlordRate))

		if s.CurrentStreak > 0 {
			box.WriteString(fmt.Sprintf("🔥 %d 连胜!\n", s.CurrentStreak))
		} else if s.CurrentStreak < 0 {
			box.WriteString(fmt.Sprintf("💔 %d 连败\n", -s.CurrentStreak))
		}
		sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(box.String())))
	}

	if len(m.transactions) > 0 {
		var flow strings.Builder
		flow.WriteString("最近积分流水\n")
		flow.WriteString(strings.Repeat("─", 30) + "\n")
		for _, tx := range m.transactions {
			when := time.Unix(tx.CreatedAt, 0).Format("01-02 15:04")
			flow.WriteString(fmt.Sprintf("%s  %-6s %+d\n", when, reasonLabel(tx.Reason), tx.Amount))
		}
		sb.WriteString("\n")
		sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(flow.String())))
	}

	sb.WriteString("\n\n")
	sb.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, "按 ESC 返回大厅"))

	return sb.String()
}

// reasonLabel 积分流水原因的展示文本
func reasonLabel(reason string) string {
	switch reason {
	case "game_fee":
		return "入场费"
	case "win_reward":
		return "获胜奖励"
	}
	return reason
}

// truncateName 截断玩家名称
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}
