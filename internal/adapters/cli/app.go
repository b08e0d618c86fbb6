package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm"

	"github.com/ufoaiorg/ufoai-sub009/internal/adapters/notify"
	"github.com/ufoaiorg/ufoai-sub009/internal/adapters/persistence"
	"github.com/ufoaiorg/ufoai-sub009/internal/adapters/savegame"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/common"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/mediator"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/production/services"
	"github.com/ufoaiorg/ufoai-sub009/internal/application/setup"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/production"
	"github.com/ufoaiorg/ufoai-sub009/internal/domain/shared"
	"github.com/ufoaiorg/ufoai-sub009/internal/infrastructure/catalog"
	"github.com/ufoaiorg/ufoai-sub009/internal/infrastructure/config"
	"github.com/ufoaiorg/ufoai-sub009/internal/infrastructure/database"
)

// app is everything a command needs: configuration, an open database and a
// mediator with every handler registered
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	catalog  *production.Catalog
	mediator mediator.Mediator
	logOut   io.Closer
}

// withApp opens the application, runs fn and closes everything again
func withApp(fn func(ctx context.Context, a *app) error) error {
	a, ctx, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()
	return fn(ctx, a)
}

func openApp() (*app, context.Context, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	out, closer, err := OpenLogOutput(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	ctx := common.WithLogger(context.Background(), common.NewStdLogger(out, level, cfg.Logging.Format))

	cat, err := catalog.LoadCatalog(cfg.Production.CatalogPath)
	if err != nil {
		closeQuietly(closer)
		return nil, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		closeQuietly(closer)
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	clock := shared.NewRealClock()
	session := services.NewCampaignSession(
		persistence.NewGormCampaignRepository(db, clock),
		persistence.NewGormTransactionRepository(db),
		cat,
		clock,
	)

	// Notices are printed from command responses; log them only when asked
	var sink production.NotificationSink
	if verbose {
		sink = notify.NewLogSink()
	}

	registry := setup.NewHandlerRegistry(session, cfg.Production.Settings(), sink, savegame.NewCodec(), clock)
	var middlewares []mediator.Middleware
	if verbose {
		middlewares = append(middlewares, common.LoggingMiddleware())
	}
	med, err := registry.CreateConfiguredMediator(middlewares...)
	if err != nil {
		_ = database.Close(db)
		closeQuietly(closer)
		return nil, nil, fmt.Errorf("failed to configure mediator: %w", err)
	}

	return &app{cfg: cfg, db: db, catalog: cat, mediator: med, logOut: closer}, ctx, nil
}

// campaign returns the campaign selected by --campaign or the configured default
func (a *app) campaign() string {
	if campaignID != "" {
		return campaignID
	}
	return a.cfg.Daemon.CampaignID
}

func (a *app) close() {
	_ = database.Close(a.db)
	closeQuietly(a.logOut)
}

// OpenLogOutput returns the writer selected by the logging section.
// The closer is nil unless a file was opened.
func OpenLogOutput(cfg config.LoggingConfig) (io.Writer, io.Closer, error) {
	switch cfg.Output {
	case "stdout":
		return os.Stdout, nil, nil
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, f, nil
	default:
		return os.Stderr, nil, nil
	}
}

func closeQuietly(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}

// send dispatches a request and asserts the response type
func send[T any](ctx context.Context, a *app, request mediator.Request) (T, error) {
	var zero T
	resp, err := a.mediator.Send(ctx, request)
	if err != nil {
		return zero, err
	}
	out, ok := resp.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected response type %T", resp)
	}
	return out, nil
}
