package config

import "time"

// MetricsConfig controls the Prometheus endpoint of the production daemon
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Bind address of the HTTP endpoint; localhost unless scraped remotely
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`

	// How often campaign balances are re-read for the credits gauge
	BalancePollInterval time.Duration `mapstructure:"balance_poll_interval"`
}
