package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9000
redis:
  addr: redis.internal:6379
  db: 2
ledger:
  path: /var/lib/arena/credits.db
game:
  turn_timeout: 60
  bot_think_min: 500
  bot_think_max: 800
ai:
  enabled: true
  endpoint: http://llm.internal/v1/completions
  model: doudizhu-coach
  api_key: sk-test
  timeout: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "/var/lib/arena/credits.db", cfg.Ledger.Path)
	assert.Equal(t, 60*time.Second, cfg.Game.TurnTimeoutDuration())
	assert.True(t, cfg.AI.Enabled)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, 30*time.Second, cfg.AI.TimeoutDuration())

	minThink, maxThink := cfg.Game.BotThinkRange()
	assert.Equal(t, 500*time.Millisecond, minThink)
	assert.Equal(t, 800*time.Millisecond, maxThink)
}

func TestLoad_DefaultsFillGaps(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8888
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8888, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "credits.db", cfg.Ledger.Path)
	assert.Equal(t, 30*time.Second, cfg.Game.TurnTimeoutDuration())
	assert.False(t, cfg.AI.Enabled)
	assert.Equal(t, 15*time.Second, cfg.AI.TimeoutDuration())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_APIKeyFromEnv(t *testing.T) {
	t.Setenv("AI_API_KEY", "sk-from-env")

	cfg, err := Load(writeConfig(t, "ai:\n  enabled: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.AI.APIKey)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1780, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)

	minThink, maxThink := cfg.Game.BotThinkRange()
	assert.Equal(t, time.Second, minThink)
	assert.Equal(t, 2*time.Second, maxThink)
}
