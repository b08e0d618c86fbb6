package campaign

import (
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/domain/base"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/ledger"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/shared"
)

// Campaign is the aggregate root tying together the bases, their production
// queues, the shared credit pool and the campaign clock
type Campaign struct {
	id      string
	name    string
	catalog *production.Catalog
	hours   *shared.CampaignClock
	bases   *base.Registry
	queues  *production.Book
	credits *ledger.CreditPool
}

// New creates a campaign with no bases
func New(id, name string, catalog *production.Catalog, startHour int64, credits int, wallClock shared.Clock) (*Campaign, error) {
	if id == "" {
		return nil, fmt.Errorf("campaign id cannot be empty")
	}
	if catalog == nil {
		return nil, fmt.Errorf("campaign %s: catalog is required", id)
	}
	hours := shared.NewCampaignClock(startHour)
	return &Campaign{
		id:      id,
		name:    name,
		catalog: catalog,
		hours:   hours,
		bases:   base.NewRegistry(),
		queues:  production.NewBook(),
		credits: ledger.NewCreditPool(id, credits, hours, wallClock),
	}, nil
}

func (c *Campaign) ID() string                   { return c.id }
func (c *Campaign) Name() string                 { return c.name }
func (c *Campaign) Catalog() *production.Catalog { return c.catalog }
func (c *Campaign) Clock() *shared.CampaignClock { return c.hours }
func (c *Campaign) Bases() *base.Registry        { return c.bases }
func (c *Campaign) Queues() *production.Book     { return c.queues }
func (c *Campaign) Credits() *ledger.CreditPool  { return c.credits }

// FoundBase adds a base and gives it an empty queue
func (c *Campaign) FoundBase(b *base.Base) error {
	if err := c.bases.Found(b); err != nil {
		return err
	}
	c.queues.Queue(b.ID())
	return nil
}

// Snapshot is the plain-data form of a campaign
type Snapshot struct {
	ID      string
	Name    string
	Hour    int64
	Credits int
	Bases   []base.State
	Queues  []production.BaseQueueRecord
}

// Snapshot captures the campaign for persistence
func (c *Campaign) Snapshot() Snapshot {
	s := Snapshot{
		ID:      c.id,
		Name:    c.name,
		Hour:    c.hours.Hour(),
		Credits: c.credits.Balance(),
	}
	for _, b := range c.bases.All() {
		s.Bases = append(s.Bases, b.State())
		s.Queues = append(s.Queues, production.Snapshot(c.queues.Queue(b.ID())))
	}
	return s
}

// UnresolvedOrder is a persisted order whose target is missing from the catalog
type UnresolvedOrder struct {
	BaseID string
	Record production.QueueRecord
}

// Restore rebuilds a campaign from a snapshot. Orders whose target cannot be
// resolved are kept and reported.
func Restore(s Snapshot, catalog *production.Catalog, wallClock shared.Clock) (*Campaign, []UnresolvedOrder, error) {
	c, err := New(s.ID, s.Name, catalog, s.Hour, s.Credits, wallClock)
	if err != nil {
		return nil, nil, err
	}

	for _, st := range s.Bases {
		b, err := base.FromState(st, catalog)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to restore base %s: %w", st.ID, err)
		}
		if err := c.FoundBase(b); err != nil {
			return nil, nil, err
		}
	}

	var unresolved []UnresolvedOrder
	for _, rec := range s.Queues {
		if _, err := c.bases.Get(rec.BaseID); err != nil {
			return nil, nil, fmt.Errorf("queue for unknown base: %w", err)
		}
		res := production.Restore(rec, catalog)
		c.queues.Replace(res.Queue)
		for _, r := range res.Unresolved {
			unresolved = append(unresolved, UnresolvedOrder{BaseID: rec.BaseID, Record: r})
		}
	}
	return c, unresolved, nil
}
