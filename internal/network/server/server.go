package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"github.com/jindou-games/doudizhu-arena/internal/config"
	"github.com/jindou-games/doudizhu-arena/internal/credits"
	"github.com/jindou-games/doudizhu-arena/internal/protocol"
	"github.com/jindou-games/doudizhu-arena/internal/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有来源，生产环境需要限制
	},
	// 消息都是小 JSON，压缩是负优化
	EnableCompression: false,
}

// Server WebSocket 服务器。每个连接独立开一局人机对战，
// 不存在多人房间，所以没有房间管理器和匹配器。
type Server struct {
	config      *config.Config
	redis       *redis.Client
	leaderboard *storage.LeaderboardManager
	credits     credits.Store
	handler     *Handler

	clients   map[string]*Client
	clientsMu sync.RWMutex
}

// NewServer 创建服务器实例
func NewServer(cfg *config.Config) (*Server, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 测试 Redis 连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis 连接失败: %w", err)
	}

	// 积分账本
	store, err := credits.NewSQLiteStore(cfg.Ledger.Path)
	if err != nil {
		return nil, fmt.Errorf("打开积分账本失败: %w", err)
	}
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("初始化积分账本失败: %w", err)
	}

	s := &Server{
		config:      cfg,
		redis:       rdb,
		leaderboard: storage.NewLeaderboardManager(rdb),
		credits:     store,
		clients:     make(map[string]*Client),
	}
	s.handler = NewHandler(s)

	return s, nil
}

// Start 启动服务器
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	http.HandleFunc("/ws", s.handleWebSocket)
	http.HandleFunc("/health", s.handleHealth)

	go s.monitorStats()

	log.Printf("🚀 服务器启动在 ws://%s/ws (CPU核心数: %d)", addr, runtime.NumCPU())
	server := &http.Server{
		Addr:              addr,
		Handler:           nil,
		ReadHeaderTimeout: 10 * time.Second, // 防止 Slowloris 攻击
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return server.ListenAndServe()
}

// handleWebSocket 处理 WebSocket 连接
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket 升级失败: %v", err)
		return
	}

	client := NewClient(s, conn)

	// 建立或恢复积分账户
	user, err := s.credits.GetOrCreateUser(client.Name)
	if err != nil {
		log.Printf("积分账户初始化失败: %v", err)
		_ = conn.Close()
		return
	}
	client.UserID = user.ID
	s.registerClient(client)

	client.SendMessage(protocol.MustNewMessage(protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID:   client.ID,
		PlayerName: client.Name,
		Credits:    user.Credits,
	}))

	log.Printf("✅ 玩家 %s (%s) 已连接", client.Name, client.ID)

	go client.ReadPump()
	go client.WritePump()
}

// handleHealth 健康检查接口
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// registerClient 注册客户端
func (s *Server) registerClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[client.ID] = client
}

// unregisterClient 注销客户端
func (s *Server) unregisterClient(client *Client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	if _, ok := s.clients[client.ID]; ok {
		delete(s.clients, client.ID)
		log.Printf("❌ 玩家 %s (%s) 已断开", client.Name, client.ID)
	}
}

// GetOnlineCount 获取在线人数（按需调用）
func (s *Server) GetOnlineCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// monitorStats 定期监控服务器状态
func (s *Server) monitorStats() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		log.Printf("📊 [监控] 在线: %d | Goroutines: %d | 内存: %.2f MB",
			s.GetOnlineCount(),
			runtime.NumGoroutine(),
			float64(m.Alloc)/1024/1024)
	}
}

// Shutdown 关闭服务器
func (s *Server) Shutdown() {
	s.clientsMu.Lock()
	for _, client := range s.clients {
		client.Close()
	}
	s.clientsMu.Unlock()

	_ = s.redis.Close()
	_ = s.credits.Close()

	log.Println("服务器已关闭")
}
