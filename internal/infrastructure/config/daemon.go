package config

import "time"

// DaemonConfig holds production daemon configuration
type DaemonConfig struct {
	// gRPC health server address (host:port)
	Address string `mapstructure:"address" validate:"required,hostname_port"`

	// PID file location
	PIDFile string `mapstructure:"pid_file"`

	// Campaign the daemon advances
	CampaignID string `mapstructure:"campaign_id"`

	// Wall-clock time per campaign hour
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"required"`

	// Stop after this many hours; zero runs until signalled
	MaxHours int64 `mapstructure:"max_hours" validate:"min=0"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
