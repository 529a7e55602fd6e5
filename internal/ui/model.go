// Package ui 是基于 bubbletea 的终端客户端界面。
package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jindou-games/doudizhu-arena/internal/game/card"
	"github.com/jindou-games/doudizhu-arena/internal/network/client"
	"github.com/jindou-games/doudizhu-arena/internal/protocol"
	"github.com/jindou-games/doudizhu-arena/internal/sound"
)

// GamePhase 界面阶段
type GamePhase int

const (
	PhaseConnecting GamePhase = iota
	PhaseLobby
	PhasePlaying
	PhaseGameOver
	PhaseLeaderboard
	PhaseStats
)

// ServerMessage 服务器消息（用于 tea.Msg）
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectionErrorMsg 连接错误消息
type ConnectionErrorMsg struct {
	Err error
}

// ConnectionClosedMsg 连接断开消息
type ConnectionClosedMsg struct{}

// Model 客户端主模型
type Model struct {
	client *client.Client
	phase  GamePhase
	error  string

	// 玩家信息
	playerID   string
	playerName string
	credits    int64

	// 对局状态
	seats        []protocol.SeatInfo
	hand         []card.Card
	kitty        []card.Card
	landlordSeat int
	mySeat       int
	myTurn       bool
	freePlay     bool
	canBeat      bool
	thinkingSeat int // 正在思考的机器人座位，-1 表示没有
	lastPlayed   []card.Card
	lastSeat     int
	lastHandType string
	hintText     string

	// 结算信息
	winnerSeat int
	winnerRole string
	reward     int64

	// 排行榜与战绩
	leaderboard  []protocol.LeaderboardEntryInfo
	myStats      *protocol.StatsResultPayload
	transactions []protocol.TransactionInfo

	// 网络状态
	latency int64

	soundManager *sound.SoundManager

	// UI 组件
	input  textinput.Model
	width  int
	height int
}

// New 创建客户端模型并发起连接
func New(serverURL string) *Model {
	ti := textinput.New()
	ti.Placeholder = "1=开始游戏, 2=排行榜, 3=我的战绩"
	ti.CharLimit = 24
	ti.Width = 30
	ti.Focus()

	return &Model{
		client:       client.NewClient(serverURL),
		phase:        PhaseConnecting,
		thinkingSeat: -1,
		landlordSeat: -1,
		lastSeat:     -1,
		winnerSeat:   -1,
		input:        ti,
		soundManager: sound.NewSoundManager(),
	}
}

// Init 实现 tea.Model
func (m *Model) Init() tea.Cmd {
	_ = m.soundManager.Init()
	return m.connect()
}

// connect 建立连接并开始监听服务器消息
func (m *Model) connect() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		m.client.StartHeartbeat()
		return m.waitForServer()()
	}
}

// waitForServer 阻塞等待下一条服务器消息
func (m *Model) waitForServer() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return ConnectionClosedMsg{}
		}
		return ServerMessage{Msg: msg}
	}
}

// resetRoundState 清空上一局的桌面状态
func (m *Model) resetRoundState() {
	m.seats = nil
	m.hand = nil
	m.kitty = nil
	m.landlordSeat = -1
	m.myTurn = false
	m.freePlay = false
	m.canBeat = false
	m.thinkingSeat = -1
	m.lastPlayed = nil
	m.lastSeat = -1
	m.lastHandType = ""
	m.hintText = ""
	m.winnerSeat = -1
	m.winnerRole = ""
	m.reward = 0
}
