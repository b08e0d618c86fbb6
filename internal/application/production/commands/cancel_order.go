package commands

import (
	"context"
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
)

// CancelOrderCommand removes the order at Index from a base queue
type CancelOrderCommand struct {
	CampaignID string
	BaseID     string
	Index      int
}

// CancelOrderResponse names the cancelled order
type CancelOrderResponse struct {
	OrderID  string
	TargetID string
	Amount   int
}

// CancelOrderHandler handles CancelOrderCommand
type CancelOrderHandler struct {
	session *services.CampaignSession
	queues  *services.QueueService
}

// NewCancelOrderHandler creates a new CancelOrderHandler
func NewCancelOrderHandler(session *services.CampaignSession, queues *services.QueueService) *CancelOrderHandler {
	return &CancelOrderHandler{session: session, queues: queues}
}

// Handle executes the command
func (h *CancelOrderHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CancelOrderCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CancelOrderCommand")
	}

	var resp *CancelOrderResponse
	err := h.session.Update(ctx, cmd.CampaignID, func(c *campaign.Campaign) error {
		e, err := h.queues.Cancel(ctx, services.WorldOf(c), cmd.BaseID, cmd.Index)
		if err != nil {
			return err
		}
		resp = &CancelOrderResponse{OrderID: e.OrderID, TargetID: e.TargetID, Amount: e.Amount}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
