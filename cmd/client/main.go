package main

import (
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jindou-games/doudizhu-arena/internal/logger"
	"github.com/jindou-games/doudizhu-arena/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:1780", "服务器地址")
	logDir := flag.String("log-dir", "", "日志目录（默认 ~/.doudizhu-arena）")
	flag.Parse()

	if err := logger.Init(*logDir); err != nil {
		log.Printf("初始化日志失败: %v", err)
	}
	defer logger.Close()
	defer logger.Recover()

	serverURL := fmt.Sprintf("ws://%s/ws", *serverAddr)

	p := tea.NewProgram(ui.New(serverURL), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("启动客户端时出错: %v", err)
	}
}
