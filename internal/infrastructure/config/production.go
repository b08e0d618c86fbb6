package config

import (
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// ProductionConfig tunes the production rules
type ProductionConfig struct {
	// Hard ceiling on orders per base
	MaxQueueLength int `mapstructure:"max_queue_length" validate:"min=1"`

	// Orders allowed per workshop building
	PerWorkshopLimit int `mapstructure:"per_workshop_limit" validate:"min=1"`

	// Workforce at which an order runs at its nominal speed
	ReferenceWorkers int `mapstructure:"reference_workers" validate:"min=1"`

	// Largest amount a single order may carry
	MaxOrderAmount int `mapstructure:"max_order_amount" validate:"min=1"`

	// Unit cost = price * cost_factor / cost_divisor
	CostFactor  int `mapstructure:"cost_factor" validate:"min=0"`
	CostDivisor int `mapstructure:"cost_divisor" validate:"min=1"`

	RearmBlockNotices bool `mapstructure:"rearm_block_notices"`

	// Panic on broken queue invariants instead of logging them
	StrictInvariants bool `mapstructure:"strict_invariants"`

	CatalogPath  string `mapstructure:"catalog_path"`
	ScenarioPath string `mapstructure:"scenario_path"`
}

// Settings converts the section into the tick and queue service settings
func (c ProductionConfig) Settings() services.Settings {
	return services.Settings{
		Limits: production.Limits{
			MaxQueueLength:   c.MaxQueueLength,
			PerWorkshopLimit: c.PerWorkshopLimit,
			MaxOrderAmount:   c.MaxOrderAmount,
		},
		ReferenceWorkers:  c.ReferenceWorkers,
		CostFactor:        c.CostFactor,
		CostDivisor:       c.CostDivisor,
		RearmBlockNotices: c.RearmBlockNotices,
		StrictInvariants:  c.StrictInvariants,
	}
}
