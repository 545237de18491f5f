package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"market-signals/internal/learning"
	"market-signals/internal/scoring"
	"market-signals/internal/storage"
)

type staticBars struct {
	bars map[string][]scoring.Bar
}

func (s *staticBars) Bars(ctx context.Context, symbol string) ([]scoring.Bar, error) {
	bars, ok := s.bars[symbol]
	if !ok {
		return nil, errors.New("no such symbol")
	}
	return bars, nil
}

type staticHeadlines struct {
	lines []string
}

func (s *staticHeadlines) Headlines(ctx context.Context) ([]string, error) {
	return s.lines, nil
}

func mkBars(closes ...float64) []scoring.Bar {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	out := make([]scoring.Bar, len(closes))
	for i, c := range closes {
		d := decimal.NewFromFloat(c)
		out[i] = scoring.Bar{Date: base.AddDate(0, 0, i), Open: d, High: d, Low: d, Close: d, Volume: 1000}
	}
	return out
}

func TestProcessCycleRecordsEverything(t *testing.T) {
	store := storage.NewStore(filepath.Join(t.TempDir(), "memory.json"), zerolog.Nop())
	engine := learning.NewEngine(store, learning.DefaultParams(), zerolog.Nop())

	bars := &staticBars{bars: map[string][]scoring.Bar{
		"A": mkBars(100, 101, 103),
		"B": mkBars(50, 49),
	}}
	headlines := &staticHeadlines{lines: []string{"Markets surge on strong earnings"}}

	svc := New([]string{"A", "B"}, bars, headlines, engine, zerolog.Nop())
	day := time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC)
	if err := svc.ProcessCycle(context.Background(), day); err != nil {
		t.Fatalf("cycle 不应失败: %v", err)
	}

	store.View(func(m *storage.Memory) {
		if len(m.StockHistory["A"]) != 1 || len(m.StockHistory["B"]) != 1 {
			t.Fatalf("both instruments should have one point: %+v", m.StockHistory)
		}
		if len(m.NewsSentiment) != 1 {
			t.Fatalf("headline should be recorded, got %d", len(m.NewsSentiment))
		}
		// One prediction per instrument, logged whatever the outcome.
		if len(m.PredictionsLog) != 2 {
			t.Fatalf("expected 2 prediction records, got %d", len(m.PredictionsLog))
		}
	})
}

func TestProcessCycleSkipsFailingInstrument(t *testing.T) {
	store := storage.NewStore(filepath.Join(t.TempDir(), "memory.json"), zerolog.Nop())
	engine := learning.NewEngine(store, learning.DefaultParams(), zerolog.Nop())

	bars := &staticBars{bars: map[string][]scoring.Bar{"A": mkBars(100, 102)}}
	svc := New([]string{"A", "MISSING"}, bars, &staticHeadlines{}, engine, zerolog.Nop())

	if err := svc.ProcessCycle(context.Background(), time.Now()); err != nil {
		t.Fatalf("one failing instrument must not abort the cycle: %v", err)
	}
}

func TestProcessCycleFailsWhenNothingRecorded(t *testing.T) {
	store := storage.NewStore(filepath.Join(t.TempDir(), "memory.json"), zerolog.Nop())
	engine := learning.NewEngine(store, learning.DefaultParams(), zerolog.Nop())

	svc := New([]string{"MISSING"}, &staticBars{}, &staticHeadlines{}, engine, zerolog.Nop())
	if err := svc.ProcessCycle(context.Background(), time.Now()); err == nil {
		t.Fatal("all instruments failing should fail the cycle")
	}
}

func TestChangePctUsesPriorClose(t *testing.T) {
	bars := mkBars(100, 102)
	got := changePct(bars)
	if !got.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("expected +2%%, got %s", got)
	}
}
