package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// 角色图标
const (
	LandlordIcon = "👑"
	PeasantIcon  = "🧑‍🌾"
	BotIcon      = "🤖"
)

// Lipgloss 样式
var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	blackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFFFFF")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	promptStyle = lipgloss.NewStyle().MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	turnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
)
