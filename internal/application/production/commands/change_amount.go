package commands

import (
	"context"
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// ChangeAmountCommand grows (positive Delta) or shrinks (negative Delta)
// the order at Index
type ChangeAmountCommand struct {
	CampaignID string
	BaseID     string
	Index      int
	Delta      int
}

// ChangeAmountResponse reports the order amount before and after
type ChangeAmountResponse struct {
	OrderID string
	Before  int
	After   int
	Removed bool
}

// ChangeAmountHandler handles ChangeAmountCommand
type ChangeAmountHandler struct {
	session *services.CampaignSession
	queues  *services.QueueService
}

// NewChangeAmountHandler creates a new ChangeAmountHandler
func NewChangeAmountHandler(session *services.CampaignSession, queues *services.QueueService) *ChangeAmountHandler {
	return &ChangeAmountHandler{session: session, queues: queues}
}

// Handle executes the command
func (h *ChangeAmountHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ChangeAmountCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ChangeAmountCommand")
	}
	if cmd.Delta == 0 {
		return nil, &production.ValidationError{Reason: production.ReasonInvalidOrder, Detail: "amount change must not be zero"}
	}

	var resp *ChangeAmountResponse
	err := h.session.Update(ctx, cmd.CampaignID, func(c *campaign.Campaign) error {
		w := services.WorldOf(c)
		var (
			change *services.AmountChange
			err    error
		)
		if cmd.Delta > 0 {
			change, err = h.queues.IncreaseAmount(ctx, w, cmd.BaseID, cmd.Index, cmd.Delta)
		} else {
			change, err = h.queues.DecreaseAmount(ctx, w, cmd.BaseID, cmd.Index, -cmd.Delta)
		}
		if err != nil {
			return err
		}
		resp = &ChangeAmountResponse{
			OrderID: change.Order.ID(),
			Before:  change.Before,
			After:   change.After,
			Removed: change.Removed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
