package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "sqlite", cfg.Directory.Driver)
	assert.Equal(t, "memory", cfg.Conversation.Backend)
	assert.Equal(t, 10*time.Second, cfg.Orchestrator.ToolTimeout)
	assert.True(t, cfg.Orchestrator.GuardrailFailOpen)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  http_port: 9000
  rate_limit_rps: 50
directory:
  driver: postgres
  host: db.internal
  port: 5432
  user: concierge
  name: conference
conversation:
  backend: redis
  ttl: 1h
orchestrator:
  tool_timeout: 5s
  guardrail_fail_open: false
log:
  level: debug
  format: console
`)

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, float64(50), cfg.Server.RateLimitRPS)
	assert.Equal(t, "postgres", cfg.Directory.Driver)
	assert.Equal(t, "db.internal", cfg.Directory.Host)
	assert.Equal(t, "redis", cfg.Conversation.Backend)
	assert.Equal(t, time.Hour, cfg.Conversation.TTL)
	assert.Equal(t, 5*time.Second, cfg.Orchestrator.ToolTimeout)
	assert.False(t, cfg.Orchestrator.GuardrailFailOpen)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep defaults.
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := NewLoader().WithConfigPath("/nonexistent/config.yaml").Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not a mapping")
	_, err := NewLoader().WithConfigPath(path).Load()
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONCIERGE_SERVER_HTTP_PORT", "7070")
	t.Setenv("CONCIERGE_DIRECTORY_DRIVER", "postgres")
	t.Setenv("CONCIERGE_CONVERSATION_BACKEND", "redis")
	t.Setenv("CONCIERGE_ORCHESTRATOR_TOOL_TIMEOUT", "2s")
	t.Setenv("CONCIERGE_ORCHESTRATOR_GUARDRAIL_FAIL_OPEN", "false")
	t.Setenv("CONCIERGE_LOG_OUTPUT_PATHS", "stdout, /var/log/concierge.log")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, "postgres", cfg.Directory.Driver)
	assert.Equal(t, "redis", cfg.Conversation.Backend)
	assert.Equal(t, 2*time.Second, cfg.Orchestrator.ToolTimeout)
	assert.False(t, cfg.Orchestrator.GuardrailFailOpen)
	assert.Equal(t, []string{"stdout", "/var/log/concierge.log"}, cfg.Log.OutputPaths)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  http_port: 9000\n")
	t.Setenv("CONCIERGE_SERVER_HTTP_PORT", "7070")

	cfg, err := NewLoader().WithConfigPath(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.HTTPPort)
}

func TestLoad_CustomEnvPrefix(t *testing.T) {
	t.Setenv("APP_SERVER_HTTP_PORT", "6060")

	cfg, err := NewLoader().WithEnvPrefix("APP").Load()
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.HTTPPort)
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Setenv("CONCIERGE_SERVER_HTTP_PORT", "not-a-number")

	_, err := NewLoader().Load()
	assert.Error(t, err)
}

func TestLoad_ValidatorRuns(t *testing.T) {
	_, err := NewLoader().
		WithValidator(func(c *Config) error { return assert.AnError }).
		Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero http port", func(c *Config) { c.Server.HTTPPort = 0 }, true},
		{"bad driver", func(c *Config) { c.Directory.Driver = "oracle" }, true},
		{"bad backend", func(c *Config) { c.Conversation.Backend = "dynamo" }, true},
		{"zero tool timeout", func(c *Config) { c.Orchestrator.ToolTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	pg := DatabaseConfig{
		Driver: "postgres", Host: "localhost", Port: 5432,
		User: "concierge", Password: "secret", Name: "conference", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=concierge password=secret dbname=conference sslmode=disable",
		pg.DSN())

	lite := DatabaseConfig{Driver: "sqlite", Name: "concierge.db"}
	assert.Equal(t, "concierge.db", lite.DSN())

	unknown := DatabaseConfig{Driver: "oracle"}
	assert.Equal(t, "", unknown.DSN())
}

func TestMustLoad_PanicsOnBadFile(t *testing.T) {
	path := writeConfigFile(t, "server: [broken")
	assert.Panics(t, func() { MustLoad(path) })
}
