package commands

import (
	"context"
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
)

// MoveOrderCommand shifts the order at Index by Delta positions.
// Negative deltas move towards the head.
type MoveOrderCommand struct {
	CampaignID string
	BaseID     string
	Index      int
	Delta      int
}

// RollQueueCommand sends the head order of a base to the tail
type RollQueueCommand struct {
	CampaignID string
	BaseID     string
}

// ReorderResponse reports where the affected order ended up
type ReorderResponse struct {
	Index   int
	Changed bool
}

// ReorderQueueHandler handles MoveOrderCommand and RollQueueCommand
type ReorderQueueHandler struct {
	session *services.CampaignSession
	queues  *services.QueueService
}

// NewReorderQueueHandler creates a new ReorderQueueHandler
func NewReorderQueueHandler(session *services.CampaignSession, queues *services.QueueService) *ReorderQueueHandler {
	return &ReorderQueueHandler{session: session, queues: queues}
}

// Handle executes either command
func (h *ReorderQueueHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	var (
		campaignID string
		apply      func(w services.World) (*ReorderResponse, error)
	)

	switch cmd := request.(type) {
	case *MoveOrderCommand:
		campaignID = cmd.CampaignID
		apply = func(w services.World) (*ReorderResponse, error) {
			idx, err := h.queues.Move(ctx, w, cmd.BaseID, cmd.Index, cmd.Delta)
			if err != nil {
				return nil, err
			}
			return &ReorderResponse{Index: idx, Changed: idx != cmd.Index}, nil
		}
	case *RollQueueCommand:
		campaignID = cmd.CampaignID
		apply = func(w services.World) (*ReorderResponse, error) {
			rolled, err := h.queues.RollToBottom(ctx, w, cmd.BaseID)
			if err != nil {
				return nil, err
			}
			return &ReorderResponse{Index: w.Queues.Queue(cmd.BaseID).Len() - 1, Changed: rolled}, nil
		}
	default:
		return nil, fmt.Errorf("invalid request type: expected *MoveOrderCommand or *RollQueueCommand")
	}

	var resp *ReorderResponse
	err := h.session.Update(ctx, campaignID, func(c *campaign.Campaign) error {
		var err error
		resp, err = apply(services.WorldOf(c))
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
