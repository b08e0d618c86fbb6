package commands

import (
	"context"
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/common"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/shared"
)

// InitCampaignCommand creates a campaign from a scenario snapshot.
// Scenario.Credits becomes the initial funding transaction.
type InitCampaignCommand struct {
	CampaignID string
	Name       string
	Scenario   campaign.Snapshot
}

// InitCampaignResponse summarises the new campaign
type InitCampaignResponse struct {
	CampaignID string
	Bases      int
	Orders     int
	Credits    int
}

// InitCampaignHandler handles InitCampaignCommand
type InitCampaignHandler struct {
	session *services.CampaignSession
	clock   shared.Clock
}

// NewInitCampaignHandler creates a new InitCampaignHandler
func NewInitCampaignHandler(session *services.CampaignSession, clock shared.Clock) *InitCampaignHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &InitCampaignHandler{session: session, clock: clock}
}

// Handle executes the command
func (h *InitCampaignHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*InitCampaignCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *InitCampaignCommand")
	}

	scenario := cmd.Scenario
	if cmd.CampaignID != "" {
		scenario.ID = cmd.CampaignID
	}
	if cmd.Name != "" {
		scenario.Name = cmd.Name
	}
	if scenario.ID == "" {
		return nil, fmt.Errorf("campaign id is required")
	}
	funding := scenario.Credits
	scenario.Credits = 0

	c, unresolved, err := campaign.Restore(scenario, h.session.Catalog(), h.clock)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if len(unresolved) > 0 {
		return nil, fmt.Errorf("scenario queues %d orders with unknown targets", len(unresolved))
	}
	if err := c.Credits().Fund(funding); err != nil {
		return nil, err
	}
	if err := h.session.Create(ctx, c); err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "campaign created", map[string]interface{}{
		"campaign": c.ID(),
		"bases":    c.Bases().Len(),
		"credits":  funding,
	})
	return &InitCampaignResponse{
		CampaignID: c.ID(),
		Bases:      c.Bases().Len(),
		Orders:     c.Queues().TotalOrders(),
		Credits:    c.Credits().Balance(),
	}, nil
}
