package commands

import (
	"context"
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// EnqueueOrderCommand queues a manufacture or disassembly order at a base.
// Exactly one of ItemID and AircraftID is set.
type EnqueueOrderCommand struct {
	CampaignID string
	BaseID     string
	Kind       production.OrderKind
	ItemID     string
	AircraftID string
	Amount     int
}

// EnqueueOrderResponse reports the created order
type EnqueueOrderResponse struct {
	OrderID   string
	Index     int
	Requested int
	Granted   int
}

// EnqueueOrderHandler handles EnqueueOrderCommand
type EnqueueOrderHandler struct {
	session *services.CampaignSession
	queues  *services.QueueService
}

// NewEnqueueOrderHandler creates a new EnqueueOrderHandler
func NewEnqueueOrderHandler(session *services.CampaignSession, queues *services.QueueService) *EnqueueOrderHandler {
	return &EnqueueOrderHandler{session: session, queues: queues}
}

// Handle executes the command
func (h *EnqueueOrderHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*EnqueueOrderCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *EnqueueOrderCommand")
	}
	kind := cmd.Kind
	if kind == "" {
		kind = production.OrderKindManufacture
	}

	var resp *EnqueueOrderResponse
	err := h.session.Update(ctx, cmd.CampaignID, func(c *campaign.Campaign) error {
		res, err := h.queues.Enqueue(ctx, services.WorldOf(c), services.EnqueueRequest{
			BaseID:     cmd.BaseID,
			Kind:       kind,
			ItemID:     cmd.ItemID,
			AircraftID: cmd.AircraftID,
			Amount:     cmd.Amount,
		})
		if err != nil {
			return err
		}
		resp = &EnqueueOrderResponse{
			OrderID:   res.Order.ID(),
			Index:     res.Index,
			Requested: res.Requested,
			Granted:   res.Granted,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
