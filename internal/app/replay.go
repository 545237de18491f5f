package app

import (
	"context"
	"errors"
	"sort"
	"time"

	"market-signals/internal/scoring"
	"market-signals/internal/service"
	"market-signals/internal/storage"
)

// Replay 将历史 K 线逐日喂给学习引擎，相当于离线回填。
func (a *App) Replay(ctx context.Context, opts ReplayOptions) error {
	bars, _ := a.newSources()

	full := make(map[string][]scoring.Bar)
	daySet := make(map[string]struct{})
	for _, symbol := range a.Config.Portfolio.Symbols {
		series, err := bars.Bars(ctx, symbol)
		if err != nil {
			a.Logger.Warn().Err(err).Str("symbol", symbol).Msg("skipping symbol without bars")
			continue
		}
		full[symbol] = series
		for _, bar := range series {
			daySet[storage.Day(bar.Date)] = struct{}{}
		}
	}
	if len(full) == 0 {
		return errors.New("no bars available for any configured symbol")
	}

	days := make([]string, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	sort.Strings(days)

	source := &replayBars{full: full}
	engine := a.newEngine(a.newStore())
	svc := service.New(a.Config.Portfolio.Symbols, source, noHeadlines{}, engine, a.Logger)

	processed := 0
	failed := 0
	for _, dayStr := range days {
		day, err := time.Parse(storage.DayFormat, dayStr)
		if err != nil {
			failed++
			continue
		}
		if opts.From != nil && day.Before(*opts.From) {
			continue
		}
		if opts.To != nil && !day.Before(*opts.To) {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		source.cutoff = dayStr
		if err := svc.ProcessCycle(ctx, day); err != nil {
			failed++
			a.Logger.Error().Err(err).Str("day", dayStr).Msg("回放失败")
			continue
		}
		processed++
	}

	a.Logger.Info().Int("processed", processed).Int("failed", failed).Msg("replay finished")
	if failed > 0 {
		return errors.New("some days failed to replay; check the logs")
	}
	return nil
}

// replayBars exposes a prefix of the loaded history, so each replayed day
// only sees bars up to and including that day. Mutated between cycles by a
// single goroutine.
type replayBars struct {
	full   map[string][]scoring.Bar
	cutoff string
}

func (r *replayBars) Bars(ctx context.Context, symbol string) ([]scoring.Bar, error) {
	series := r.full[symbol]
	end := 0
	for end < len(series) && storage.Day(series[end].Date) <= r.cutoff {
		end++
	}
	return series[:end], nil
}

// noHeadlines is used during replay: the headline file carries no dates, so
// historical cycles run on price action alone.
type noHeadlines struct{}

func (noHeadlines) Headlines(ctx context.Context) ([]string, error) {
	return nil, nil
}
