package config

import (
	"time"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "ufoprod.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "ufoprod"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "ufoprod"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Production defaults
	limits := production.DefaultLimits()
	if cfg.Production.MaxQueueLength == 0 {
		cfg.Production.MaxQueueLength = limits.MaxQueueLength
	}
	if cfg.Production.PerWorkshopLimit == 0 {
		cfg.Production.PerWorkshopLimit = limits.PerWorkshopLimit
	}
	if cfg.Production.MaxOrderAmount == 0 {
		cfg.Production.MaxOrderAmount = limits.MaxOrderAmount
	}
	if cfg.Production.ReferenceWorkers == 0 {
		cfg.Production.ReferenceWorkers = production.DefaultReferenceWorkers
	}
	if cfg.Production.CostFactor == 0 {
		cfg.Production.CostFactor = 1
	}
	if cfg.Production.CostDivisor == 0 {
		cfg.Production.CostDivisor = 1
	}
	if cfg.Production.CatalogPath == "" {
		cfg.Production.CatalogPath = "configs/catalog.yaml"
	}
	if cfg.Production.ScenarioPath == "" {
		cfg.Production.ScenarioPath = "configs/scenario.yaml"
	}

	// Daemon defaults
	if cfg.Daemon.Address == "" {
		cfg.Daemon.Address = "localhost:50061"
	}
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/production-daemon.pid"
	}
	if cfg.Daemon.CampaignID == "" {
		cfg.Daemon.CampaignID = "default"
	}
	if cfg.Daemon.TickInterval == 0 {
		cfg.Daemon.TickInterval = time.Second
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.BalancePollInterval == 0 {
		cfg.Metrics.BalancePollInterval = time.Minute
	}
}
