package queries

import (
	"context"
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
)

// ListCampaignsQuery lists stored campaigns
type ListCampaignsQuery struct{}

// ListCampaignsResponse holds campaign summaries
type ListCampaignsResponse struct {
	Campaigns []campaign.Summary
}

// ListCampaignsHandler handles ListCampaignsQuery
type ListCampaignsHandler struct {
	campaigns campaign.Repository
}

// NewListCampaignsHandler creates a new ListCampaignsHandler
func NewListCampaignsHandler(campaigns campaign.Repository) *ListCampaignsHandler {
	return &ListCampaignsHandler{campaigns: campaigns}
}

// Handle executes the query
func (h *ListCampaignsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ListCampaignsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListCampaignsQuery")
	}
	summaries, err := h.campaigns.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return &ListCampaignsResponse{Campaigns: summaries}, nil
}
