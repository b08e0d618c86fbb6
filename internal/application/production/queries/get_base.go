package queries

import (
	"context"
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/base"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// GetBaseQuery reads the production-relevant state of a base
type GetBaseQuery struct {
	CampaignID string
	BaseID     string
}

// CapacityDTO is one capacity counter
type CapacityDTO struct {
	Kind    string
	Max     int
	Current int
}

// StockDTO is one stored item
type StockDTO struct {
	ItemID string
	Name   string
	Count  int
}

// GetBaseResponse describes a base
type GetBaseResponse struct {
	Index             int
	ID                string
	Name              string
	CommandCentre     bool
	Workshops         int
	UnderAttack       bool
	Workers           int
	EffectiveWorkers  int
	ProductionAllowed bool
	QueueLength       int
	Capacities        []CapacityDTO
	Stock             []StockDTO
	Aircraft          []base.Aircraft
}

var reportedCapacities = []production.CapacityKind{
	production.CapacityWorkspace,
	production.CapacityItems,
	production.CapacityAntimatter,
	production.CapacityAircraftSmall,
	production.CapacityAircraftLarge,
	production.CapacityUFOSmall,
	production.CapacityUFOLarge,
}

// GetBaseHandler handles GetBaseQuery
type GetBaseHandler struct {
	session *services.CampaignSession
}

// NewGetBaseHandler creates a new GetBaseHandler
func NewGetBaseHandler(session *services.CampaignSession) *GetBaseHandler {
	return &GetBaseHandler{session: session}
}

// Handle executes the query
func (h *GetBaseHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetBaseQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetBaseQuery")
	}

	var resp *GetBaseResponse
	err := h.session.View(ctx, query.CampaignID, func(c *campaign.Campaign) error {
		b, err := c.Bases().Get(query.BaseID)
		if err != nil {
			return err
		}

		workers := b.HiredCount(production.EmployeeWorker)
		resp = &GetBaseResponse{
			Index:             b.Index(),
			ID:                b.ID(),
			Name:              b.Name(),
			CommandCentre:     b.HasCommandCentre(),
			Workshops:         b.WorkshopCount(),
			UnderAttack:       b.IsUnderAttack(),
			Workers:           workers,
			EffectiveWorkers:  production.EffectiveWorkers(workers, b.Capacity(production.CapacityWorkspace).Max),
			ProductionAllowed: b.ProductionAllowed(),
			QueueLength:       c.Queues().Queue(b.ID()).Len(),
			Aircraft:          b.Aircraft(),
		}
		for _, kind := range reportedCapacities {
			counter := b.Capacity(kind)
			resp.Capacities = append(resp.Capacities, CapacityDTO{Kind: string(kind), Max: counter.Max, Current: counter.Current})
		}
		for _, id := range b.StockIDs() {
			name := id
			if def, ok := c.Catalog().Item(id); ok {
				name = def.Name
			}
			resp.Stock = append(resp.Stock, StockDTO{ItemID: id, Name: name, Count: b.Count(id)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
