package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/savespree/savespree/internal"
	"github.com/savespree/savespree/internal/budget"
	"github.com/savespree/savespree/internal/category"
	"github.com/savespree/savespree/internal/chart"
	"github.com/savespree/savespree/internal/core/events"
	"github.com/savespree/savespree/internal/currency"
	"github.com/savespree/savespree/internal/ledger"
	"github.com/savespree/savespree/internal/storage"
	"github.com/savespree/savespree/pkg/logger"
)

// App is the wired dependency graph behind every command.
type App struct {
	Config     *internal.Config
	Logger     *slog.Logger
	Bus        *events.EventBus
	Store      *storage.Store
	Categories *category.Service
	Budget     *budget.Manager
	Converter  *currency.Client
	Charts     *chart.Renderer
	Ledger     *ledger.Service
}

// newApp builds the dependency graph and runs the session-start month
// rollover, mirroring how the tracker initializes on load.
func newApp() (*App, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	store, err := storage.Open(cfg.Database.Path, log)
	if err != nil {
		return nil, err
	}

	bus := events.NewEventBus(log)

	categories, err := category.NewService(store, bus, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if err := categories.EnsureDefaults(); err != nil {
		return nil, err
	}

	budgetMgr, err := budget.NewManager(store, bus, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}

	converter := currency.NewClient(currency.Config{
		APIURL:         cfg.Currency.APIURL,
		RequestTimeout: cfg.Currency.RequestTimeout,
	}, log)

	renderer, err := chart.NewRenderer(store, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart color cache: %w", err)
	}

	ledgerSvc, err := ledger.NewService(store, categories, budgetMgr, converter, bus, log, cfg.Currency.BaseCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	app := &App{
		Config:     cfg,
		Logger:     log,
		Bus:        bus,
		Store:      store,
		Categories: categories,
		Budget:     budgetMgr,
		Converter:  converter,
		Charts:     renderer,
		Ledger:     ledgerSvc,
	}

	if cfg.Charts.Enabled {
		app.subscribeChartRefresh()
	}

	startupCtx := logger.With(context.Background(), "phase", "startup")
	if _, err := ledgerSvc.ResetMonthlyDataIfNewMonth(startupCtx); err != nil {
		return nil, fmt.Errorf("failed to run month rollover: %w", err)
	}

	return app, nil
}

// subscribeChartRefresh regenerates the chart images after every ledger
// mutation, the dependent-view refresh the bus exists for.
func (a *App) subscribeChartRefresh() {
	refresh := func(ctx context.Context, event events.Event) error {
		logger.From(ctx).Debug("refreshing charts", "event_type", event.EventType())
		return a.renderCharts(a.Ledger.Transactions(), a.Config.Charts.OutputDir)
	}
	for _, eventType := range []string{
		events.EventTransactionAdded,
		events.EventTransactionUpdated,
		events.EventTransactionDeleted,
		events.EventMonthRolledOver,
	} {
		a.Bus.Subscribe(eventType, refresh)
	}
}

func (a *App) renderCharts(transactions []ledger.Transaction, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	if err := a.renderChartFile(filepath.Join(outputDir, "expenses-bar.png"), transactions, a.Charts.RenderBar); err != nil {
		return err
	}
	return a.renderChartFile(filepath.Join(outputDir, "expenses-pie.png"), transactions, a.Charts.RenderPie)
}

func (a *App) renderChartFile(path string, transactions []ledger.Transaction, render func([]ledger.Transaction, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := render(transactions, f); err != nil {
		if err == chart.ErrNoExpenseData {
			a.Logger.Debug("skipping chart render", "path", path, "reason", err)
			return nil
		}
		return err
	}
	return nil
}

// reportWarnings prints the soft-limit signals of a mutation. Breaches warn,
// they never roll the operation back.
func (a *App) reportWarnings(result *ledger.MutationResult) {
	if !result.WithinBudget {
		fmt.Println("Warning: you have exceeded your budget limit!")
	}
	if result.CategoryBudgetExceeded {
		fmt.Printf("Warning: this expense surpasses the budget for %s.\n", result.Transaction.Category)
	}
}
