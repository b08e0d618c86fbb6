package commands

import (
	"context"
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/common"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
)

// AdjustCreditsCommand represents a manual correction of the shared credit pool
type AdjustCreditsCommand struct {
	CampaignID  string
	Amount      int // Positive to grant credits, negative to withdraw
	Description string
}

// AdjustCreditsResponse represents the result of an adjustment
type AdjustCreditsResponse struct {
	BalanceBefore int
	BalanceAfter  int
}

// AdjustCreditsHandler handles the AdjustCredits command
type AdjustCreditsHandler struct {
	session *services.CampaignSession
}

// NewAdjustCreditsHandler creates a new AdjustCreditsHandler
func NewAdjustCreditsHandler(session *services.CampaignSession) *AdjustCreditsHandler {
	return &AdjustCreditsHandler{session: session}
}

// Handle executes the AdjustCredits command
func (h *AdjustCreditsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AdjustCreditsCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AdjustCreditsCommand")
	}
	if cmd.Amount == 0 {
		return nil, fmt.Errorf("adjustment amount cannot be zero")
	}

	resp := &AdjustCreditsResponse{}
	err := h.session.Update(ctx, cmd.CampaignID, func(c *campaign.Campaign) error {
		resp.BalanceBefore = c.Credits().Balance()
		if err := c.Credits().Adjust(cmd.Amount, cmd.Description); err != nil {
			return err
		}
		resp.BalanceAfter = c.Credits().Balance()
		return nil
	})
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "credits adjusted", map[string]interface{}{
		"campaign": cmd.CampaignID,
		"amount":   cmd.Amount,
		"balance":  resp.BalanceAfter,
	})
	return resp, nil
}
