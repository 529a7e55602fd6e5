package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 服务端配置
type Config struct {
	Server ServerConfig `yaml:"server"`
	Redis  RedisConfig  `yaml:"redis"`
	Ledger LedgerConfig `yaml:"ledger"`
	Game   GameConfig   `yaml:"game"`
	AI     AIConfig     `yaml:"ai"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RedisConfig Redis 配置（统计与排行榜）
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LedgerConfig 积分账本配置
type LedgerConfig struct {
	Path string `yaml:"path"` // SQLite 数据库文件
}

// GameConfig 游戏配置
type GameConfig struct {
	TurnTimeout int `yaml:"turn_timeout"`  // 出牌超时（秒）
	BotThinkMin int `yaml:"bot_think_min"` // 机器人最短思考时间（毫秒）
	BotThinkMax int `yaml:"bot_think_max"` // 机器人最长思考时间（毫秒）
}

// AIConfig 外部出牌模型配置
type AIConfig struct {
	Enabled  bool   `yaml:"enabled"`  // 关闭时机器人只用本地规则
	Endpoint string `yaml:"endpoint"` // 补全接口地址
	Model    string `yaml:"model"`    // 模型名
	APIKey   string `yaml:"api_key"`  // 留空时读取 AI_API_KEY 环境变量
	Timeout  int    `yaml:"timeout"`  // 单次调用超时（秒）
}

// TurnTimeoutDuration 返回出牌超时时长
func (c *GameConfig) TurnTimeoutDuration() time.Duration {
	return time.Duration(c.TurnTimeout) * time.Second
}

// BotThinkRange 返回机器人思考时间区间
func (c *GameConfig) BotThinkRange() (time.Duration, time.Duration) {
	return time.Duration(c.BotThinkMin) * time.Millisecond,
		time.Duration(c.BotThinkMax) * time.Millisecond
}

// TimeoutDuration 返回模型调用超时时长
func (c *AIConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Load 加载配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults 填充默认值
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 1780
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = "credits.db"
	}
	if cfg.Game.TurnTimeout == 0 {
		cfg.Game.TurnTimeout = 30
	}
	if cfg.Game.BotThinkMin == 0 {
		cfg.Game.BotThinkMin = 1000
	}
	if cfg.Game.BotThinkMax == 0 {
		cfg.Game.BotThinkMax = 2000
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 15
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("AI_API_KEY")
	}
}

// Default 返回默认配置
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
