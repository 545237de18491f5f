// Package learning builds the empirical relationship between news sentiment
// and subsequent price moves, predicts direction from it, and grades past
// predictions against realised history.
package learning

import (
	"time"

	"github.com/rs/zerolog"

	"market-signals/internal/storage"
)

// Params are the engine tunables. Nothing derives the dead zone or the
// lookback defaults, so they stay configurable.
type Params struct {
	// FlatThresholdPct is the dead zone: moves within ±this percent count
	// as flat days so noise does not dominate the buckets.
	FlatThresholdPct float64
	// SentimentLookback bounds "current" sentiment for prediction.
	SentimentLookback time.Duration
	// MinSamples is the history size below which no Correlation exists.
	MinSamples int
	// BasicDays and ReliableDays are the thresholds quoted while learning.
	BasicDays    int
	ReliableDays int
	// ConfidenceCap is the hard ceiling on prediction confidence.
	ConfidenceCap float64
}

// DefaultParams returns the stock tunables.
func DefaultParams() Params {
	return Params{
		FlatThresholdPct:  0.5,
		SentimentLookback: 24 * time.Hour,
		MinSamples:        3,
		BasicDays:         7,
		ReliableDays:      30,
		ConfidenceCap:     85,
	}
}

// Engine owns all learning operations over one memory store. State is
// injected, never ambient: construct per process or per test.
type Engine struct {
	store  *storage.Store
	params Params
	logger zerolog.Logger
}

// NewEngine wires a store and tunables into an Engine.
func NewEngine(store *storage.Store, params Params, logger zerolog.Logger) *Engine {
	if params.MinSamples <= 0 {
		params = DefaultParams()
	}
	return &Engine{
		store:  store,
		params: params,
		logger: logger.With().Str("component", "learning").Logger(),
	}
}

func round3(v float64) float64 {
	return roundTo(v, 1000)
}

func round1(v float64) float64 {
	return roundTo(v, 10)
}

func roundTo(v float64, scale float64) float64 {
	if v < 0 {
		return -float64(int64(-v*scale+0.5)) / scale
	}
	return float64(int64(v*scale+0.5)) / scale
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
