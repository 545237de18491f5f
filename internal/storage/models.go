package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayFormat is the canonical calendar-day granularity for all dates in the
// memory document. Lexicographic order matches chronological order.
const DayFormat = "2006-01-02"

// Day renders a timestamp at canonical day granularity.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

const (
	// HistoryCap bounds each instrument's price history to a rolling window.
	HistoryCap = 365
	// NewsWindowDays bounds news observations to a trailing date window.
	NewsWindowDays = 365
	// PredictionLogCap bounds the prediction log to the most recent entries.
	PredictionLogCap = 500
)

// PricePoint is one instrument day: closing price and percent change from
// the prior close. Unique by date within an instrument's history.
type PricePoint struct {
	Date      string          `json:"date"`
	Price     decimal.Decimal `json:"price"`
	ChangePct decimal.Decimal `json:"change_pct"`
}

// NewsObservation is one scored headline.
type NewsObservation struct {
	Date      string   `json:"date"`
	Headline  string   `json:"headline"`
	Sentiment float64  `json:"sentiment"`
	Sectors   []string `json:"sectors"`
}

// Correlation is the learned sentiment-to-movement relationship for one
// instrument. Recomputed from scratch on every learning pass; absent
// entirely until the instrument has three history points.
type Correlation struct {
	DataPoints       int     `json:"data_points"`
	AvgSentimentUp   float64 `json:"avg_sentiment_before_up"`
	AvgSentimentDown float64 `json:"avg_sentiment_before_down"`
	AvgSentimentFlat float64 `json:"avg_sentiment_before_neutral"`
	UpDays           int     `json:"up_days"`
	DownDays         int     `json:"down_days"`
	FlatDays         int     `json:"neutral_days"`
	ImpactScore      float64 `json:"sentiment_impact_score"`
}

// PredictionRecord logs one predictor call. Grading fields are filled in
// place by the verifier, at most once.
type PredictionRecord struct {
	Date       string  `json:"date"`
	Symbol     string  `json:"symbol"`
	Direction  string  `json:"predicted_direction"`
	Confidence float64 `json:"confidence"`
	Sentiment  float64 `json:"news_sentiment"`

	ActualDirection string           `json:"actual_direction,omitempty"`
	ActualChange    *decimal.Decimal `json:"actual_change,omitempty"`
	Correct         *bool            `json:"correct,omitempty"`
	Verified        bool             `json:"verified,omitempty"`
}

// LearningStats summarises accumulated learning. Rebuilt from the full
// graded log on each verification pass, never patched incrementally.
type LearningStats struct {
	TotalDays          int    `json:"total_days"`
	CorrectPredictions int    `json:"correct_predictions"`
	TotalPredictions   int    `json:"total_predictions"`
	LastUpdated        string `json:"last_updated,omitempty"`
}

// Memory is the single durable structure all learning components read and
// write. Field names match the legacy memory.json layout so existing
// documents stay readable; absent sections default on load.
type Memory struct {
	StockHistory   map[string][]PricePoint `json:"stock_history"`
	NewsSentiment  []NewsObservation       `json:"news_sentiment"`
	Correlations   map[string]Correlation  `json:"correlations"`
	PredictionsLog []PredictionRecord      `json:"predictions_log"`
	Stats          LearningStats           `json:"learning_stats"`
}

// NewMemory returns an empty memory document.
func NewMemory() *Memory {
	return &Memory{
		StockHistory: map[string][]PricePoint{},
		Correlations: map[string]Correlation{},
	}
}

// normalize repairs nil sections after decoding a partial document.
func (m *Memory) normalize() {
	if m.StockHistory == nil {
		m.StockHistory = map[string][]PricePoint{}
	}
	if m.Correlations == nil {
		m.Correlations = map[string]Correlation{}
	}
}

// AppendPrice records one day's point for symbol, rejecting duplicate dates
// and trimming the history to the rolling cap. Reports whether the point
// was added.
func (m *Memory) AppendPrice(symbol string, point PricePoint) bool {
	history := m.StockHistory[symbol]
	for _, p := range history {
		if p.Date == point.Date {
			return false
		}
	}
	history = append(history, point)
	if len(history) > HistoryCap {
		history = history[len(history)-HistoryCap:]
	}
	m.StockHistory[symbol] = history
	return true
}

// AppendNews records one observation.
func (m *Memory) AppendNews(obs NewsObservation) {
	m.NewsSentiment = append(m.NewsSentiment, obs)
}

// TrimNews drops observations dated before cutoff.
func (m *Memory) TrimNews(cutoff string) {
	kept := m.NewsSentiment[:0]
	for _, n := range m.NewsSentiment {
		if n.Date >= cutoff {
			kept = append(kept, n)
		}
	}
	m.NewsSentiment = kept
}

// AppendPrediction logs a record, trimming to the most recent entries.
func (m *Memory) AppendPrediction(rec PredictionRecord) {
	m.PredictionsLog = append(m.PredictionsLog, rec)
	if len(m.PredictionsLog) > PredictionLogCap {
		m.PredictionsLog = m.PredictionsLog[len(m.PredictionsLog)-PredictionLogCap:]
	}
}

// DistinctDays counts distinct dates across all instrument histories.
func (m *Memory) DistinctDays() int {
	days := map[string]struct{}{}
	for _, history := range m.StockHistory {
		for _, p := range history {
			days[p.Date] = struct{}{}
		}
	}
	return len(days)
}
