package setup

import (
	"reflect"

	ledgerCommands "github.com/ufoaiorg/ufoai-sub009/internal/application/ledger/commands"
	ledgerQueries "github.com/ufoaiorg/ufoai-sub009/internal/application/ledger/queries"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	productionCommands "github.com/ufoaiorg/ufoai-sub009/internal/application/production/commands"
	productionQueries "github.com/ufoaiorg/ufoai-sub009/internal/application/production/queries"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	session  *services.CampaignSession
	queues   *services.QueueService
	runner   *services.TickRunner
	codec    campaign.SavegameCodec
	clock    shared.Clock
	settings services.Settings
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// sink receives every production notification and may be nil.
func NewHandlerRegistry(
	session *services.CampaignSession,
	settings services.Settings,
	sink production.NotificationSink,
	codec campaign.SavegameCodec,
	clock shared.Clock,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		session:  session,
		queues:   services.NewQueueService(settings, sink),
		runner:   services.NewTickRunner(settings, sink),
		codec:    codec,
		clock:    clock,
		settings: settings,
	}
}

// RegisterProductionHandlers registers the queue commands, the clock command
// and the production read models
func (r *HandlerRegistry) RegisterProductionHandlers(m mediator.Mediator) error {
	enqueue := productionCommands.NewEnqueueOrderHandler(r.session, r.queues)
	cancel := productionCommands.NewCancelOrderHandler(r.session, r.queues)
	reorder := productionCommands.NewReorderQueueHandler(r.session, r.queues)
	amount := productionCommands.NewChangeAmountHandler(r.session, r.queues)
	maintenance := productionCommands.NewQueueMaintenanceHandler(r.session, r.queues)

	registrations := []struct {
		request mediator.Request
		handler mediator.RequestHandler
	}{
		{&productionCommands.InitCampaignCommand{}, productionCommands.NewInitCampaignHandler(r.session, r.clock)},
		{&productionCommands.EnqueueOrderCommand{}, enqueue},
		{&productionCommands.CancelOrderCommand{}, cancel},
		{&productionCommands.MoveOrderCommand{}, reorder},
		{&productionCommands.RollQueueCommand{}, reorder},
		{&productionCommands.ChangeAmountCommand{}, amount},
		{&productionCommands.EmptyQueueCommand{}, maintenance},
		{&productionCommands.UpdateWorkshopCapacityCommand{}, maintenance},
		{&productionCommands.RunHoursCommand{}, productionCommands.NewRunHoursHandler(r.session, r.runner)},
		{&productionQueries.ListQueueQuery{}, productionQueries.NewListQueueHandler(r.session, r.queues)},
		{&productionQueries.GetBaseQuery{}, productionQueries.NewGetBaseHandler(r.session)},
		{&productionQueries.ListCampaignsQuery{}, productionQueries.NewListCampaignsHandler(r.session.Campaigns())},
	}
	for _, reg := range registrations {
		if err := m.Register(reflect.TypeOf(reg.request), reg.handler); err != nil {
			return err
		}
	}

	// Savegame handlers need a codec
	if r.codec != nil {
		savegame := productionCommands.NewSavegameHandler(r.session, r.codec, r.clock)
		if err := m.Register(reflect.TypeOf(&productionCommands.ExportSavegameCommand{}), savegame); err != nil {
			return err
		}
		if err := m.Register(reflect.TypeOf(&productionCommands.ImportSavegameCommand{}), savegame); err != nil {
			return err
		}
	}
	return nil
}

// RegisterLedgerHandlers registers all ledger command and query handlers with the mediator
//
// This method registers:
//   - AdjustCreditsCommand → AdjustCreditsHandler (manual credit corrections)
//   - GetTransactionsQuery → GetTransactionsHandler (for transaction queries)
//   - GetProductionSpendQuery → GetProductionSpendHandler (spend per base and target)
func (r *HandlerRegistry) RegisterLedgerHandlers(m mediator.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&ledgerCommands.AdjustCreditsCommand{}),
		ledgerCommands.NewAdjustCreditsHandler(r.session),
	); err != nil {
		return err
	}

	if err := m.Register(
		reflect.TypeOf(&ledgerQueries.GetTransactionsQuery{}),
		ledgerQueries.NewGetTransactionsHandler(r.session.Transactions()),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&ledgerQueries.GetProductionSpendQuery{}),
		ledgerQueries.NewGetProductionSpendHandler(r.session.Transactions()),
	)
}

// CreateConfiguredMediator creates a new mediator with every handler registered.
// Middlewares are applied in the order given, the first one outermost.
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range middlewares {
		m.Use(mw)
	}

	if err := r.RegisterProductionHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterLedgerHandlers(m); err != nil {
		return nil, err
	}
	return m, nil
}
