// Package service sequences one logical daily cycle over the learning
// engine: record prices, record news, learn, predict, verify. The ordering
// lives here because the engine itself does not enforce it.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"market-signals/internal/feed"
	"market-signals/internal/learning"
	"market-signals/internal/scoring"
)

// Service orchestrates data recording, learning, prediction, and grading.
type Service struct {
	bars      feed.BarSource
	headlines feed.HeadlineSource
	engine    *learning.Engine
	symbols   []string
	logger    zerolog.Logger
}

// New constructs the cycle service.
func New(symbols []string, bars feed.BarSource, headlines feed.HeadlineSource, engine *learning.Engine, logger zerolog.Logger) *Service {
	return &Service{
		bars:      bars,
		headlines: headlines,
		engine:    engine,
		symbols:   symbols,
		logger:    logger.With().Str("component", "service").Logger(),
	}
}

// ProcessCycle 执行单个交易日的完整学习周期。
// One instrument failing to load is logged and skipped; the remaining
// steps still run so a partial cycle beats no cycle.
func (s *Service) ProcessCycle(ctx context.Context, day time.Time) error {
	s.logger.Info().Str("day", day.Format("2006-01-02")).Msg("cycle started")

	recorded := 0
	for _, symbol := range s.symbols {
		if err := s.recordInstrument(ctx, day, symbol); err != nil {
			s.logger.Error().Err(err).Str("symbol", symbol).Msg("failed to record instrument")
			continue
		}
		recorded++
	}
	if recorded == 0 {
		return fmt.Errorf("no instrument data recorded for %s", day.Format("2006-01-02"))
	}

	lines, err := s.headlines.Headlines(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load headlines")
	} else {
		s.engine.RecordHeadlines(day, lines)
	}

	s.engine.Learn()

	for _, symbol := range s.symbols {
		pred := s.engine.Predict(day, symbol)
		s.logger.Info().
			Str("symbol", symbol).
			Str("direction", pred.Direction).
			Float64("confidence", pred.Confidence).
			Msg("cycle prediction")
	}

	stats := s.engine.Verify()
	s.logger.Info().
		Int("graded", stats.TotalPredictions).
		Int("correct", stats.CorrectPredictions).
		Msg("cycle finished")
	return nil
}

func (s *Service) recordInstrument(ctx context.Context, day time.Time, symbol string) error {
	bars, err := s.bars.Bars(ctx, symbol)
	if err != nil {
		return err
	}
	if len(bars) == 0 {
		return fmt.Errorf("no bars for %s", symbol)
	}

	latest := bars[len(bars)-1]
	change := changePct(bars)
	s.engine.RecordStockData(day, symbol, latest.Close, change)

	// Scoring is advisory inside a cycle: log the read, nothing persists.
	if res, err := scoring.Score(scoring.Series{Symbol: symbol, Bars: bars}); err == nil {
		s.logger.Info().
			Str("symbol", symbol).
			Float64("score", res.Score).
			Str("label", res.Label).
			Int("confidence", res.Confidence).
			Msg("instrument scored")
	}
	return nil
}

// changePct derives the latest percent move: prior close when available,
// falling back to the day's open for a single-bar history.
func changePct(bars []scoring.Bar) decimal.Decimal {
	latest := bars[len(bars)-1]
	base := latest.Open
	if len(bars) >= 2 {
		base = bars[len(bars)-2].Close
	}
	if base.IsZero() {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return latest.Close.Sub(base).Div(base).Mul(hundred)
}
