package config

import "time"

// DatabaseConfig selects where campaigns and the credit ledger are stored.
// SQLite is the default; postgres is used for shared or long-running campaigns.
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// SQLite file; ":memory:" keeps the campaign for the life of the process
	Path string `mapstructure:"path"`

	// Postgres DSN. When empty the discrete fields below are used.
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// Log every SQL statement
	Debug bool `mapstructure:"debug"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig sizes the postgres connection pool. SQLite always uses one connection.
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1,ltefield=MaxOpen"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}
