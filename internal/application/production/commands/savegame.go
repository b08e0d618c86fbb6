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

// ExportSavegameCommand encodes a stored campaign as a savegame blob
type ExportSavegameCommand struct {
	CampaignID string
}

// ExportSavegameResponse carries the encoded savegame
type ExportSavegameResponse struct {
	Data   []byte
	Orders int
}

// ImportSavegameCommand stores the campaign held in a savegame blob,
// replacing any campaign with the same id
type ImportSavegameCommand struct {
	Data []byte
}

// ImportSavegameResponse reports what was loaded
type ImportSavegameResponse struct {
	CampaignID string
	Orders     int
	Unresolved int
}

// SavegameHandler handles ExportSavegameCommand and ImportSavegameCommand
type SavegameHandler struct {
	session *services.CampaignSession
	codec   campaign.SavegameCodec
	clock   shared.Clock
}

// NewSavegameHandler creates a new SavegameHandler
func NewSavegameHandler(session *services.CampaignSession, codec campaign.SavegameCodec, clock shared.Clock) *SavegameHandler {
	return &SavegameHandler{session: session, codec: codec, clock: clock}
}

// Handle executes either command
func (h *SavegameHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	switch cmd := request.(type) {
	case *ExportSavegameCommand:
		return h.export(ctx, cmd)
	case *ImportSavegameCommand:
		return h.load(ctx, cmd)
	default:
		return nil, fmt.Errorf("invalid request type: expected *ExportSavegameCommand or *ImportSavegameCommand")
	}
}

func (h *SavegameHandler) export(ctx context.Context, cmd *ExportSavegameCommand) (*ExportSavegameResponse, error) {
	var resp *ExportSavegameResponse
	err := h.session.View(ctx, cmd.CampaignID, func(c *campaign.Campaign) error {
		data, err := h.codec.Encode(c.Snapshot())
		if err != nil {
			return fmt.Errorf("failed to encode savegame: %w", err)
		}
		resp = &ExportSavegameResponse{Data: data, Orders: c.Queues().TotalOrders()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (h *SavegameHandler) load(ctx context.Context, cmd *ImportSavegameCommand) (*ImportSavegameResponse, error) {
	snapshot, err := h.codec.Decode(cmd.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode savegame: %w", err)
	}

	c, unresolved, err := campaign.Restore(*snapshot, h.session.Catalog(), h.clock)
	if err != nil {
		return nil, fmt.Errorf("failed to restore savegame: %w", err)
	}
	for _, u := range unresolved {
		common.LoggerFromContext(ctx).Log(common.LevelWarn, "savegame order references unknown target", map[string]interface{}{
			"campaign": c.ID(),
			"base":     u.BaseID,
			"item":     u.Record.ItemID,
			"aircraft": u.Record.AircraftID,
		})
	}

	if err := h.session.Campaigns().Save(ctx, c.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to store imported campaign: %w", err)
	}
	return &ImportSavegameResponse{
		CampaignID: c.ID(),
		Orders:     c.Queues().TotalOrders(),
		Unresolved: len(unresolved),
	}, nil
}
