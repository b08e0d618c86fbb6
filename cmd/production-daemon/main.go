package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/ufoaiorg/ufoai-sub009/internal/adapters/cli"
	daemongrpc "github.com/ufoaiorg/ufoai-sub009/internal/adapters/grpc"
	"github.com/ufoaiorg/ufoai-sub009/internal/adapters/metrics"
	"github.com/ufoaiorg/ufoai-sub009/internal/adapters/notify"
	"github.com/ufoaiorg/ufoai-sub009/internal/adapters/persistence"
	"github.com/ufoaiorg/ufoai-sub009/internal/adapters/savegame"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/common"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/commands"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/queries"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/setup"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/campaign"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/ledger"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/shared"
	"github.com/ufoaiorg/ufoai-sub009/internal/infrastructure/catalog"
	"github.com/ufoaiorg/ufoai-sub009/internal/infrastructure/config"
	"github.com/ufoaiorg/ufoai-sub009/internal/infrastructure/database"
	"github.com/ufoaiorg/ufoai-sub009/internal/infrastructure/pidfile"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (defaults to search paths)")
	maxHours := flag.Int64("hours", -1, "Stop after this many campaign hours (overrides daemon.max_hours)")
	flag.Parse()

	fmt.Println("UFO Production Daemon v0.1.0")
	fmt.Println("============================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configPath)
	if *maxHours >= 0 {
		cfg.Daemon.MaxHours = *maxHours
	}

	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()

	if err := run(cfg); err != nil {
		log.Printf("Fatal error: %v", err)
		_ = pf.Release()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// 1. Logging
	out, closer, err := cli.OpenLogOutput(cfg.Logging)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	logger := common.NewStdLogger(out, cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = common.WithLogger(ctx, logger)

	// 2. Catalog and database
	cat, err := catalog.LoadCatalog(cfg.Production.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	fmt.Printf("Catalog loaded: %d items, %d aircraft\n", len(cat.Items()), len(cat.AircraftTemplates()))

	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	db, err := database.Open(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)
	fmt.Println("Database connected")

	clock := shared.NewRealClock()
	campaigns := persistence.NewGormCampaignRepository(db, clock)
	var transactions ledger.TransactionRepository = persistence.NewGormTransactionRepository(db)

	// 3. Metrics
	var (
		sinks       = notify.FanOut{notify.NewLogSink()}
		middlewares = []mediator.Middleware{common.LoggingMiddleware()}
		prodMetrics *metrics.ProductionMetricsCollector
		financial   *metrics.FinancialMetricsCollector
		metricsSrv  *metrics.Server
	)
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		commandCollector := metrics.NewCommandMetricsCollector()
		prodMetrics = metrics.NewProductionMetricsCollector()
		financial = metrics.NewFinancialMetricsCollector(campaigns, cfg.Metrics.BalancePollInterval)
		for _, register := range []func() error{commandCollector.Register, prodMetrics.Register, financial.Register} {
			if err := register(); err != nil {
				return fmt.Errorf("failed to register metrics: %w", err)
			}
		}
		metrics.SetGlobalFinancialCollector(financial)
		transactions = metrics.InstrumentTransactions(transactions)
		sinks = append(sinks, prodMetrics)
		middlewares = append(middlewares, metrics.PrometheusMiddleware(commandCollector))

		metricsSrv, err = metrics.NewServer(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
		if err != nil {
			return err
		}
	}

	// 4. Application
	session := services.NewCampaignSession(campaigns, transactions, cat, clock)
	registry := setup.NewHandlerRegistry(session, cfg.Production.Settings(), sinks, savegame.NewCodec(), clock)
	med, err := registry.CreateConfiguredMediator(middlewares...)
	if err != nil {
		return fmt.Errorf("failed to configure mediator: %w", err)
	}

	campaignID := cfg.Daemon.CampaignID
	if err := ensureCampaign(ctx, med, cfg, cat, campaignID); err != nil {
		return err
	}

	// 5. Servers
	server, err := daemongrpc.NewDaemonServer(cfg.Daemon.Address)
	if err != nil {
		return fmt.Errorf("failed to create daemon server: %w", err)
	}

	hour := func(ctx context.Context) error {
		if _, err := med.Send(ctx, &commands.RunHoursCommand{CampaignID: campaignID, Hours: 1}); err != nil {
			return err
		}
		if prodMetrics != nil {
			return session.View(ctx, campaignID, func(c *campaign.Campaign) error {
				prodMetrics.ObserveQueues(c.Queues())
				return nil
			})
		}
		return nil
	}
	loop := services.NewClockLoop(cfg.Daemon.TickInterval, hour, clock)

	fmt.Println("\n✓ Daemon is ready")
	fmt.Println("Press Ctrl+C to stop")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx, cfg.Daemon.ShutdownTimeout)
	})
	if metricsSrv != nil {
		financial.Start(gctx)
		defer financial.Stop()
		g.Go(func() error {
			return metricsSrv.ListenAndServe(gctx, cfg.Daemon.ShutdownTimeout)
		})
	}
	g.Go(func() error {
		server.SetServing(true)
		err := loop.Run(gctx, cfg.Daemon.MaxHours)
		server.SetServing(false)
		logger.Log(common.LevelInfo, "Campaign clock stopped", map[string]interface{}{
			"hours_run": loop.HoursRun(),
			"status":    string(loop.Status()),
		})
		if err != nil {
			return err
		}
		if cfg.Daemon.MaxHours > 0 {
			// Hour budget spent: shut the servers down too
			stop()
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("daemon error: %w", err)
	}

	fmt.Println("\nDaemon stopped")
	return nil
}

// ensureCampaign creates the configured campaign from the scenario file when
// the database does not hold it yet
func ensureCampaign(ctx context.Context, med mediator.Mediator, cfg *config.Config, cat *production.Catalog, campaignID string) error {
	resp, err := med.Send(ctx, &queries.ListCampaignsQuery{})
	if err != nil {
		return fmt.Errorf("failed to list campaigns: %w", err)
	}
	list, ok := resp.(*queries.ListCampaignsResponse)
	if !ok {
		return fmt.Errorf("unexpected response type %T", resp)
	}
	for _, c := range list.Campaigns {
		if c.ID == campaignID {
			return nil
		}
	}

	scenario, err := catalog.LoadScenario(cfg.Production.ScenarioPath)
	if err != nil {
		return fmt.Errorf("campaign %s not found and scenario unavailable: %w", campaignID, err)
	}
	snapshot, err := scenario.Snapshot(cat)
	if err != nil {
		return err
	}
	if _, err := med.Send(ctx, &commands.InitCampaignCommand{CampaignID: campaignID, Scenario: snapshot}); err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	fmt.Printf("Campaign %s created from %s\n", campaignID, cfg.Production.ScenarioPath)
	return nil
}
