package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/common"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/ledger"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/shared"
)

// CampaignSession loads a campaign, lets a caller mutate it and writes it back
// together with the credit movements it produced. Calls for the same process
// are serialized.
type CampaignSession struct {
	mu           sync.Mutex
	campaigns    campaign.Repository
	transactions ledger.TransactionRepository
	catalog      *production.Catalog
	clock        shared.Clock
}

// NewCampaignSession creates a session over the given stores
func NewCampaignSession(
	campaigns campaign.Repository,
	transactions ledger.TransactionRepository,
	catalog *production.Catalog,
	clock shared.Clock,
) *CampaignSession {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CampaignSession{
		campaigns:    campaigns,
		transactions: transactions,
		catalog:      catalog,
		clock:        clock,
	}
}

// Catalog returns the catalog campaigns are restored against
func (s *CampaignSession) Catalog() *production.Catalog {
	return s.catalog
}

// Campaigns exposes the snapshot store
func (s *CampaignSession) Campaigns() campaign.Repository {
	return s.campaigns
}

// Transactions exposes the transaction store
func (s *CampaignSession) Transactions() ledger.TransactionRepository {
	return s.transactions
}

// Open restores a stored campaign. Orders whose target is no longer in the
// catalog are logged and kept in their queue.
func (s *CampaignSession) Open(ctx context.Context, campaignID string) (*campaign.Campaign, error) {
	snapshot, err := s.campaigns.Load(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	c, unresolved, err := campaign.Restore(*snapshot, s.catalog, s.clock)
	if err != nil {
		return nil, fmt.Errorf("failed to restore campaign %s: %w", campaignID, err)
	}

	logger := common.LoggerFromContext(ctx)
	for _, u := range unresolved {
		logger.Log(common.LevelWarn, "queued order references unknown target", map[string]interface{}{
			"campaign": campaignID,
			"base":     u.BaseID,
			"order_id": u.Record.OrderID,
			"item":     u.Record.ItemID,
			"aircraft": u.Record.AircraftID,
		})
	}
	return c, nil
}

// Commit stores the campaign snapshot and the credit movements journaled
// since the last commit
func (s *CampaignSession) Commit(ctx context.Context, c *campaign.Campaign) error {
	if err := s.campaigns.Save(ctx, c.Snapshot()); err != nil {
		return fmt.Errorf("failed to save campaign: %w", err)
	}
	pending := c.Credits().Drain()
	if len(pending) == 0 || s.transactions == nil {
		return nil
	}
	if err := s.transactions.Create(ctx, pending...); err != nil {
		return fmt.Errorf("failed to persist %d transactions: %w", len(pending), err)
	}
	return nil
}

// Update opens a campaign, applies fn and commits it when fn succeeds
func (s *CampaignSession) Update(ctx context.Context, campaignID string, fn func(c *campaign.Campaign) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.Open(ctx, campaignID)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return s.Commit(ctx, c)
}

// View opens a campaign for reading only
func (s *CampaignSession) View(ctx context.Context, campaignID string, fn func(c *campaign.Campaign) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.Open(ctx, campaignID)
	if err != nil {
		return err
	}
	return fn(c)
}

// Create stores a new campaign. An existing campaign with the same id is an error.
func (s *CampaignSession) Create(ctx context.Context, c *campaign.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.campaigns.Load(ctx, c.ID())
	if err == nil {
		return fmt.Errorf("campaign %s already exists", c.ID())
	}
	var notFound *campaign.ErrCampaignNotFound
	if !errors.As(err, &notFound) {
		return err
	}
	return s.Commit(ctx, c)
}
