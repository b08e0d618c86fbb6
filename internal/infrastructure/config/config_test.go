package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufoaiorg/ufoai-sub009/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_FileValuesAndDefaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
production:
  max_queue_length: 64
  per_workshop_limit: 4
  cost_factor: 3
  cost_divisor: 2
daemon:
  tick_interval: 250ms
  max_hours: 48
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Production.MaxQueueLength)
	assert.Equal(t, 4, cfg.Production.PerWorkshopLimit)
	assert.Equal(t, 250*time.Millisecond, cfg.Daemon.TickInterval)
	assert.Equal(t, int64(48), cfg.Daemon.MaxHours)
	assert.True(t, cfg.Production.RearmBlockNotices, "unset rearm flag defaults on")
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "ufoprod.db", cfg.Database.Path)
	assert.Equal(t, "localhost:50061", cfg.Daemon.Address)
	assert.Equal(t, time.Minute, cfg.Metrics.BalancePollInterval)

	settings := cfg.Production.Settings()
	assert.Equal(t, 64, settings.Limits.MaxQueueLength)
	assert.Equal(t, 3, settings.CostFactor)
	assert.Equal(t, 2, settings.CostDivisor)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: info\n")
	t.Setenv("UFOPROD_LOGGING_LEVEL", "debug")
	t.Setenv("UFOPROD_PRODUCTION_REARM_BLOCK_NOTICES", "false")
	t.Setenv("UFOPROD_DAEMON_CAMPAIGN_ID", "ironman")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Production.RearmBlockNotices)
	assert.Equal(t, "ironman", cfg.Daemon.CampaignID)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown database", "database:\n  type: oracle\n"},
		{"unknown log level", "logging:\n  level: loud\n"},
		{"log file without path", "logging:\n  output: file\n"},
		{"workshop limit above queue length", "production:\n  max_queue_length: 3\n  per_workshop_limit: 5\n"},
		{"negative cost factor", "production:\n  cost_factor: -1\n"},
		{"daemon address without port", "daemon:\n  address: localhost\n"},
		{"idle pool larger than open pool", "database:\n  pool:\n    max_open: 2\n    max_idle: 5\n"},
		{"metrics path without slash", "metrics:\n  path: metrics\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := config.DefaultConfig()

	assert.NoError(t, config.ValidateConfig(cfg))
	assert.True(t, cfg.Production.RearmBlockNotices)
	assert.Equal(t, "configs/catalog.yaml", cfg.Production.CatalogPath)
}

func TestValidateConfig_PostgresNeedsConnection(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Database.Type = "postgres"
	cfg.Database.URL = ""
	cfg.Database.Host = ""

	assert.Error(t, config.ValidateConfig(cfg))

	cfg.Database.URL = "postgresql://ufoprod@localhost:5432/ufoprod"
	assert.NoError(t, config.ValidateConfig(cfg))
}
