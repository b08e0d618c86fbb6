package commands

import (
	"context"
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// EmptyQueueCommand cancels every order of a base
type EmptyQueueCommand struct {
	CampaignID string
	BaseID     string
}

// UpdateWorkshopCapacityCommand recomputes a base's workspace after its
// staff or buildings changed
type UpdateWorkshopCapacityCommand struct {
	CampaignID string
	BaseID     string
}

// QueueEventsResponse lists the notifications a queue command raised
type QueueEventsResponse struct {
	Events []production.Event
}

// QueueMaintenanceHandler handles EmptyQueueCommand and UpdateWorkshopCapacityCommand
type QueueMaintenanceHandler struct {
	session *services.CampaignSession
	queues  *services.QueueService
}

// NewQueueMaintenanceHandler creates a new QueueMaintenanceHandler
func NewQueueMaintenanceHandler(session *services.CampaignSession, queues *services.QueueService) *QueueMaintenanceHandler {
	return &QueueMaintenanceHandler{session: session, queues: queues}
}

// Handle executes either command
func (h *QueueMaintenanceHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	var (
		campaignID string
		apply      func(w services.World) ([]production.Event, error)
	)

	switch cmd := request.(type) {
	case *EmptyQueueCommand:
		campaignID = cmd.CampaignID
		apply = func(w services.World) ([]production.Event, error) {
			return h.queues.EmptyQueue(ctx, w, cmd.BaseID)
		}
	case *UpdateWorkshopCapacityCommand:
		campaignID = cmd.CampaignID
		apply = func(w services.World) ([]production.Event, error) {
			return h.queues.UpdateWorkshopCapacity(ctx, w, cmd.BaseID)
		}
	default:
		return nil, fmt.Errorf("invalid request type: expected *EmptyQueueCommand or *UpdateWorkshopCapacityCommand")
	}

	resp := &QueueEventsResponse{}
	err := h.session.Update(ctx, campaignID, func(c *campaign.Campaign) error {
		events, err := apply(services.WorldOf(c))
		resp.Events = events
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
