// Package feed supplies the two raw inputs the engine consumes: ordered
// price bars per instrument and current news headlines. Implementations
// here read local snapshot files; live scrapers sit behind the same
// interfaces outside this repository.
package feed

import (
	"context"

	"market-signals/internal/scoring"
)

// BarSource yields an instrument's ordered OHLCV history.
type BarSource interface {
	Bars(ctx context.Context, symbol string) ([]scoring.Bar, error)
}

// HeadlineSource yields the current batch of news headlines.
type HeadlineSource interface {
	Headlines(ctx context.Context) ([]string, error)
}
