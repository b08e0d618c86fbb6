package services

import (
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// World is everything a queue operation or a tick reads and writes.
// Credits is the single pool shared by every base.
type World struct {
	Catalog *production.Catalog
	Bases   production.BaseDirectory
	Queues  *production.Book
	Credits production.CreditLedger
}

// WorldOf exposes a campaign to the production services
func WorldOf(c *campaign.Campaign) World {
	return World{
		Catalog: c.Catalog(),
		Bases:   c.Bases(),
		Queues:  c.Queues(),
		Credits: c.Credits(),
	}
}

// Settings tunes the production rules
type Settings struct {
	Limits            production.Limits
	ReferenceWorkers  int
	CostFactor        int
	CostDivisor       int
	RearmBlockNotices bool
	StrictInvariants  bool
}

// DefaultSettings returns the campaign defaults
func DefaultSettings() Settings {
	return Settings{
		Limits:            production.DefaultLimits(),
		ReferenceWorkers:  production.DefaultReferenceWorkers,
		CostFactor:        1,
		CostDivisor:       1,
		RearmBlockNotices: true,
	}
}

// UnitCost returns the credits charged for one unit of an order.
// Disassembly is free.
func (s Settings) UnitCost(o *production.Order) int {
	if o.IsDisassembly() {
		return 0
	}
	price := 0
	switch t := o.Target().(type) {
	case production.ItemTarget:
		price = t.Item.Price
	case production.AircraftTarget:
		price = t.Aircraft.Price
	}
	divisor := s.CostDivisor
	if divisor <= 0 {
		divisor = 1
	}
	return price * s.CostFactor / divisor
}

func (s Settings) referenceWorkers() int {
	if s.ReferenceWorkers <= 0 {
		return production.DefaultReferenceWorkers
	}
	return s.ReferenceWorkers
}
