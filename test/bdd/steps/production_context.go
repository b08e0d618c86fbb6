package steps

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ufoaiorg/ufoai-sub009/internal/adapters/notify"
	"github.com/ufoaiorg/ufoai-sub009/internal/adapters/persistence"
	"github.com/ufoaiorg/ufoai-sub009/internal/adapters/savegame"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/commands"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/setup"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/base"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/infrastructure/database"
	"github.com/ufoaiorg/ufoai-sub009/test/helpers"
)

const campaignID = "bdd"

// productionContext runs every step through the mediator against an
// in-memory database, the same wiring the CLI and daemon use
type productionContext struct {
	db       *gorm.DB
	mediator mediator.Mediator
	recorder *notify.Recorder

	// pending holds the Given state until the first action creates the campaign
	pending *campaign.Snapshot
	created bool

	lastResponse mediator.Response
	lastErr      error
	savegame     []byte
}

func (pc *productionContext) reset() error {
	pc.close()

	db, err := database.NewTestConnection()
	if err != nil {
		return fmt.Errorf("failed to open test database: %w", err)
	}

	clock := helpers.NewTestClock()
	pc.recorder = &notify.Recorder{}
	session := services.NewCampaignSession(
		persistence.NewGormCampaignRepository(db, clock),
		persistence.NewGormTransactionRepository(db),
		helpers.NewTestCatalog(),
		clock,
	)
	registry := setup.NewHandlerRegistry(session, services.DefaultSettings(), pc.recorder, savegame.NewCodec(), clock)
	med, err := registry.CreateConfiguredMediator()
	if err != nil {
		return err
	}

	pc.db = db
	pc.mediator = med
	pc.pending = nil
	pc.created = false
	pc.lastResponse = nil
	pc.lastErr = nil
	pc.savegame = nil
	return nil
}

func (pc *productionContext) close() {
	if pc.db != nil {
		_ = database.Close(pc.db)
		pc.db = nil
	}
}

// ensureCampaign turns the pending Given state into a stored campaign
func (pc *productionContext) ensureCampaign() error {
	if pc.created {
		return nil
	}
	if pc.pending == nil {
		return fmt.Errorf("no campaign was set up")
	}
	if _, err := pc.mediator.Send(context.Background(), &commands.InitCampaignCommand{
		CampaignID: campaignID,
		Scenario:   *pc.pending,
	}); err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	pc.created = true
	return nil
}

// send dispatches an action; its error is kept for Then steps instead of failing the step
func (pc *productionContext) send(request mediator.Request) error {
	if err := pc.ensureCampaign(); err != nil {
		return err
	}
	pc.lastResponse, pc.lastErr = pc.mediator.Send(context.Background(), request)
	return nil
}

// query dispatches a read and fails the step on error
func (pc *productionContext) query(request mediator.Request) (mediator.Response, error) {
	if err := pc.ensureCampaign(); err != nil {
		return nil, err
	}
	return pc.mediator.Send(context.Background(), request)
}

func (pc *productionContext) pendingBase(id string) (*base.State, error) {
	if pc.pending == nil {
		return nil, fmt.Errorf("no campaign was set up")
	}
	for i := range pc.pending.Bases {
		if pc.pending.Bases[i].ID == id {
			return &pc.pending.Bases[i], nil
		}
	}
	return nil, fmt.Errorf("base %q was not set up", id)
}
