package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"market-signals/internal/config"
	"market-signals/internal/feed"
	"market-signals/internal/learning"
	"market-signals/internal/scheduler"
	"market-signals/internal/service"
	"market-signals/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger()}
}

func (a *App) newStore() *storage.Store {
	return storage.NewStore(a.Config.Memory.Path, a.Logger)
}

func (a *App) newEngine(store *storage.Store) *learning.Engine {
	e := a.Config.Engine
	params := learning.Params{
		FlatThresholdPct:  e.FlatThresholdPct,
		SentimentLookback: e.SentimentLookback,
		MinSamples:        e.MinSamples,
		BasicDays:         e.BasicDays,
		ReliableDays:      e.ReliableDays,
		ConfidenceCap:     e.ConfidenceCap,
	}
	return learning.NewEngine(store, params, a.Logger)
}

func (a *App) newSources() (feed.BarSource, feed.HeadlineSource) {
	bars := feed.NewCSVBars(a.Config.Portfolio.BarsDir)
	headlines := feed.NewFileHeadlines(a.Config.Portfolio.HeadlinesFile)
	return bars, headlines
}

func (a *App) newService() *service.Service {
	bars, headlines := a.newSources()
	engine := a.newEngine(a.newStore())
	return service.New(a.Config.Portfolio.Symbols, bars, headlines, engine, a.Logger)
}

// Run executes the long-running scheduled learning service.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.New(scheduler.Options{
		Interval:     a.Config.Scheduler.Interval,
		AlignToStart: a.Config.Scheduler.AlignToStart,
		StartupDelay: a.Config.Scheduler.StartupDelay,
	}, a.Logger)

	svc := a.newService()

	a.Logger.Info().Msg("starting learning service")
	err := sched.Run(ctx, svc.ProcessCycle)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("service terminated with error")
		return err
	}

	a.Logger.Info().Msg("learning service stopped")
	return nil
}

// RunCycle executes one learning cycle for the given trading day and exits.
func (a *App) RunCycle(ctx context.Context, day time.Time) error {
	return a.newService().ProcessCycle(ctx, day.UTC())
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Limit int
}

// ExportOptions hold parameters for exporting an instrument's history.
type ExportOptions struct {
	Symbol    string
	CSVPath   string
	PNGPath   string
	MaxPoints int
}

// ReplayOptions configure the historical replay job.
type ReplayOptions struct {
	From *time.Time
	To   *time.Time
}
