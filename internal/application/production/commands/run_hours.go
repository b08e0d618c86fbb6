package commands

import (
	"context"
	"fmt"

	"github.com/ufoaiorg/ufoai-sub009/internal/application/common"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
)

// RunHoursCommand advances a campaign by Hours production ticks
type RunHoursCommand struct {
	CampaignID string
	Hours      int
}

// RunHoursResponse aggregates the tick reports of the run
type RunHoursResponse struct {
	FromHour       int64
	ToHour         int64
	Events         []production.Event
	Errors         []string
	UnitsCompleted int
	OrdersFinished int
	CreditsSpent   int
	Balance        int
}

// RunHoursHandler handles RunHoursCommand
type RunHoursHandler struct {
	session *services.CampaignSession
	runner  *services.TickRunner
}

// NewRunHoursHandler creates a new RunHoursHandler
func NewRunHoursHandler(session *services.CampaignSession, runner *services.TickRunner) *RunHoursHandler {
	return &RunHoursHandler{session: session, runner: runner}
}

// Handle executes the command. The campaign is saved once after the last hour.
func (h *RunHoursHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RunHoursCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunHoursCommand")
	}
	if cmd.Hours <= 0 {
		return nil, fmt.Errorf("hours must be positive, got %d", cmd.Hours)
	}

	resp := &RunHoursResponse{}
	err := h.session.Update(ctx, cmd.CampaignID, func(c *campaign.Campaign) error {
		w := services.WorldOf(c)
		resp.FromHour = c.Clock().Hour()

		for i := 0; i < cmd.Hours; i++ {
			if err := ctx.Err(); err != nil {
				break
			}
			report := h.runner.RunTick(ctx, w, c.Clock().Advance())
			resp.Events = append(resp.Events, report.Events...)
			for _, e := range report.Errors {
				resp.Errors = append(resp.Errors, e.Error())
			}
			resp.UnitsCompleted += report.UnitsCompleted
			resp.OrdersFinished += report.OrdersFinished
			resp.CreditsSpent += report.CreditsSpent
		}

		resp.ToHour = c.Clock().Hour()
		resp.Balance = c.Credits().Balance()
		return nil
	})
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "campaign advanced", map[string]interface{}{
		"campaign":  cmd.CampaignID,
		"from_hour": resp.FromHour,
		"to_hour":   resp.ToHour,
		"completed": resp.UnitsCompleted,
		"spent":     resp.CreditsSpent,
	})
	return resp, nil
}
