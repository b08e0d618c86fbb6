package queries

import (
	"context"
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// ListQueueQuery lists the production queue of one base
type ListQueueQuery struct {
	CampaignID string
	BaseID     string
}

// OrderDTO is a read model of a queued order
type OrderDTO struct {
	Index         int
	OrderID       string
	Kind          string
	TargetID      string
	TargetName    string
	Amount        int
	PercentDone   float64
	HoursPerUnit  int
	UnitCost      int
	Resolved      bool
	CreditBlocked bool
	SpaceBlocked  bool
}

// ListQueueResponse holds the queue and how much room is left
type ListQueueResponse struct {
	BaseID    string
	BaseName  string
	Hour      int64
	Credits   int
	FreeSlots int
	Orders    []OrderDTO
}

// ListQueueHandler handles ListQueueQuery
type ListQueueHandler struct {
	session *services.CampaignSession
	queues  *services.QueueService
}

// NewListQueueHandler creates a new ListQueueHandler
func NewListQueueHandler(session *services.CampaignSession, queues *services.QueueService) *ListQueueHandler {
	return &ListQueueHandler{session: session, queues: queues}
}

// Handle executes the query
func (h *ListQueueHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListQueueQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListQueueQuery")
	}

	var resp *ListQueueResponse
	err := h.session.View(ctx, query.CampaignID, func(c *campaign.Campaign) error {
		w := services.WorldOf(c)
		site, err := w.Bases.Site(query.BaseID)
		if err != nil {
			return err
		}
		free, err := h.queues.FreeSlots(w, query.BaseID)
		if err != nil {
			return err
		}

		resp = &ListQueueResponse{
			BaseID:    site.ID(),
			BaseName:  site.Name(),
			Hour:      c.Clock().Hour(),
			Credits:   c.Credits().Balance(),
			FreeSlots: free,
		}
		settings := h.queues.Settings()
		for i, o := range w.Queues.Queue(query.BaseID).Orders() {
			resp.Orders = append(resp.Orders, toOrderDTO(i, o, settings))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func toOrderDTO(index int, o *production.Order, settings services.Settings) OrderDTO {
	dto := OrderDTO{
		Index:         index,
		OrderID:       o.ID(),
		Kind:          string(o.Kind()),
		TargetID:      o.TargetRef(),
		TargetName:    o.TargetRef(),
		Amount:        o.Amount(),
		PercentDone:   o.PercentDone(),
		Resolved:      o.IsResolved(),
		CreditBlocked: o.CreditBlocked(),
		SpaceBlocked:  o.SpaceBlocked(),
	}
	if o.IsResolved() {
		dto.TargetName = o.Target().DisplayName()
		dto.HoursPerUnit = o.Hours()
		dto.UnitCost = settings.UnitCost(o)
	}
	return dto
}
