package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "memory.json"), zerolog.Nop())
}

func TestRoundTrip(t *testing.T) {
	store := tempStore(t)

	store.Update(func(m *Memory) {
		m.AppendPrice("TCS.NS", PricePoint{
			Date:      "2026-08-27",
			Price:     decimal.NewFromFloat(4123.55),
			ChangePct: decimal.NewFromFloat(1.245),
		})
		m.AppendNews(NewsObservation{
			Date:      "2026-08-27",
			Headline:  "IT stocks rally on strong earnings",
			Sentiment: 1,
			Sectors:   []string{"tech"},
		})
		m.Correlations["TCS.NS"] = Correlation{DataPoints: 5, UpDays: 3, DownDays: 2, ImpactScore: 0.4}
		m.AppendPrediction(PredictionRecord{Date: "2026-08-27", Symbol: "TCS.NS", Direction: "UP", Confidence: 42.5, Sentiment: 0.6})
		m.Stats = LearningStats{TotalDays: 1, LastUpdated: "2026-08-27"}
	})

	var first, second *Memory
	store.View(func(m *Memory) { first = m })
	store.View(func(m *Memory) { second = m })

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatal("持久化后重新加载应得到相同结构")
	}
	if len(first.StockHistory["TCS.NS"]) != 1 || len(first.NewsSentiment) != 1 {
		t.Fatalf("reloaded document lost data: %+v", first)
	}
	if !first.StockHistory["TCS.NS"][0].Price.Equal(decimal.NewFromFloat(4123.55)) {
		t.Fatal("price did not survive the round trip")
	}
}

func TestCorruptFileFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path, zerolog.Nop())
	store.View(func(m *Memory) {
		if m.StockHistory == nil || m.Correlations == nil {
			t.Fatal("corrupt file should yield a usable default document")
		}
		if len(m.PredictionsLog) != 0 {
			t.Fatal("default document should be empty")
		}
	})
}

func TestPartialDocumentDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	// Older documents may lack whole sections; they must still parse.
	if err := os.WriteFile(path, []byte(`{"stock_history": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path, zerolog.Nop())
	store.View(func(m *Memory) {
		if m.Correlations == nil {
			t.Fatal("missing sections must default, not fail")
		}
	})
}

func TestAppendPriceRejectsDuplicateDate(t *testing.T) {
	m := NewMemory()
	point := PricePoint{Date: "2026-08-27", Price: decimal.NewFromInt(100)}
	if !m.AppendPrice("X", point) {
		t.Fatal("first append should succeed")
	}
	if m.AppendPrice("X", point) {
		t.Fatal("同一日期不应重复写入")
	}
	if len(m.StockHistory["X"]) != 1 {
		t.Fatalf("expected 1 point, got %d", len(m.StockHistory["X"]))
	}
}

func TestHistoryCap(t *testing.T) {
	m := NewMemory()
	for i := 0; i < HistoryCap+30; i++ {
		date := fmt.Sprintf("2025-%03d", i) // synthetic but sortable
		m.AppendPrice("X", PricePoint{Date: date, Price: decimal.NewFromInt(1)})
	}
	if len(m.StockHistory["X"]) != HistoryCap {
		t.Fatalf("history should cap at %d, got %d", HistoryCap, len(m.StockHistory["X"]))
	}
}

func TestPredictionLogCap(t *testing.T) {
	m := NewMemory()
	for i := 0; i < PredictionLogCap+25; i++ {
		m.AppendPrediction(PredictionRecord{Date: "2026-08-27", Symbol: "X", Direction: "UP"})
	}
	if len(m.PredictionsLog) != PredictionLogCap {
		t.Fatalf("log should cap at %d, got %d", PredictionLogCap, len(m.PredictionsLog))
	}
}

func TestTrimNews(t *testing.T) {
	m := NewMemory()
	m.AppendNews(NewsObservation{Date: "2025-01-01"})
	m.AppendNews(NewsObservation{Date: "2026-01-01"})
	m.TrimNews("2025-06-01")
	if len(m.NewsSentiment) != 1 || m.NewsSentiment[0].Date != "2026-01-01" {
		t.Fatalf("expected only the recent observation, got %+v", m.NewsSentiment)
	}
}

func TestDistinctDays(t *testing.T) {
	m := NewMemory()
	m.AppendPrice("A", PricePoint{Date: "2026-08-26"})
	m.AppendPrice("A", PricePoint{Date: "2026-08-27"})
	m.AppendPrice("B", PricePoint{Date: "2026-08-27"})
	if got := m.DistinctDays(); got != 2 {
		t.Fatalf("expected 2 distinct days, got %d", got)
	}
}
