package learning

import (
	"fmt"
	"math"
	"time"

	"market-signals/internal/storage"
)

// Direction labels. NEUTRAL and LEARNING are states, not calls: NEUTRAL
// means no recent news to reason from, LEARNING means the correlation has
// too few samples. Neither is ever graded for accuracy.
const (
	DirectionUp       = "UP"
	DirectionDown     = "DOWN"
	DirectionSideways = "SIDEWAYS"
	DirectionNeutral  = "NEUTRAL"
	DirectionLearning = "LEARNING"
)

// Prediction is the directional forecast for one instrument.
type Prediction struct {
	Symbol     string
	Direction  string
	Confidence float64
	Reasoning  string
	// Sentiment is the trailing-window average the call was based on.
	Sentiment float64
}

// Directional reports whether the prediction is a real call that the
// verifier can grade.
func (p Prediction) Directional() bool {
	return p.Direction == DirectionUp || p.Direction == DirectionDown
}

// Predict forecasts symbol's next move from current sentiment and the
// learned correlation. Triggers one learning pass when the correlation is
// missing. Every call, whatever the outcome, appends a PredictionRecord.
func (e *Engine) Predict(now time.Time, symbol string) Prediction {
	var pred Prediction
	e.store.Update(func(m *storage.Memory) {
		pred = e.predictLocked(m, now, symbol)
		m.AppendPrediction(storage.PredictionRecord{
			Date:       storage.Day(now),
			Symbol:     symbol,
			Direction:  pred.Direction,
			Confidence: pred.Confidence,
			Sentiment:  round3(pred.Sentiment),
		})
	})

	e.logger.Info().
		Str("symbol", symbol).
		Str("direction", pred.Direction).
		Float64("confidence", pred.Confidence).
		Msg("prediction made")
	return pred
}

func (e *Engine) predictLocked(m *storage.Memory, now time.Time, symbol string) Prediction {
	cutoff := storage.Day(now.Add(-e.params.SentimentLookback))

	var recent []float64
	for _, n := range m.NewsSentiment {
		if n.Date >= cutoff {
			recent = append(recent, n.Sentiment)
		}
	}
	current := 0.0
	if len(recent) > 0 {
		current = mean(recent)
	}

	corr, ok := m.Correlations[symbol]
	if !ok {
		learnLocked(m, e.params)
		corr, ok = m.Correlations[symbol]
	}
	if !ok || corr.DataPoints < e.params.MinSamples {
		return Prediction{
			Symbol:    symbol,
			Direction: DirectionLearning,
			Sentiment: current,
			Reasoning: fmt.Sprintf(
				"Still learning... (%d data points collected. Need at least %d days for basic predictions, %d+ days for reliable ones.)",
				len(m.StockHistory[symbol]), e.params.BasicDays, e.params.ReliableDays,
			),
		}
	}

	// A learned correlation with nothing to apply it to is its own state,
	// distinct from a genuinely neutral call.
	if len(recent) == 0 {
		return Prediction{
			Symbol:    symbol,
			Direction: DirectionNeutral,
			Reasoning: "Not enough recent news data to make a prediction.",
		}
	}

	// Nearer bucket mean wins. A zero mean carries no information (empty
	// bucket), so it gets unit distance instead of a spurious proximity.
	distUp, distDown := 1.0, 1.0
	if corr.AvgSentimentUp != 0 {
		distUp = math.Abs(current - corr.AvgSentimentUp)
	}
	if corr.AvgSentimentDown != 0 {
		distDown = math.Abs(current - corr.AvgSentimentDown)
	}

	direction := DirectionSideways
	switch {
	case distUp < distDown:
		direction = DirectionUp
	case distDown < distUp:
		direction = DirectionDown
	}

	dataConfidence := math.Min(float64(corr.DataPoints)/60, 1)
	patternConfidence := math.Min(corr.ImpactScore*2, 1)
	confidence := round1((dataConfidence*0.4 + patternConfidence*0.6) * 100)
	if confidence > e.params.ConfidenceCap {
		confidence = e.params.ConfidenceCap
	}

	return Prediction{
		Symbol:     symbol,
		Direction:  direction,
		Confidence: confidence,
		Sentiment:  current,
		Reasoning:  reasoning(corr, current),
	}
}

// reasoning renders the deterministic narrative; every number is
// reproducible from the Correlation record alone.
func reasoning(corr storage.Correlation, current float64) string {
	totalDays := corr.UpDays + corr.DownDays + corr.FlatDays
	upPct, downPct := 0.0, 0.0
	if totalDays > 0 {
		upPct = round1(float64(corr.UpDays) / float64(totalDays) * 100)
		downPct = round1(float64(corr.DownDays) / float64(totalDays) * 100)
	}
	return fmt.Sprintf(
		"Based on %d days of learning:\n"+
			"  - Current news sentiment: %+.2f\n"+
			"  - Historical: %.1f%% up days, %.1f%% down days\n"+
			"  - News-price correlation strength: %.2f\n"+
			"  - Avg sentiment before UP days: %+.3f\n"+
			"  - Avg sentiment before DOWN days: %+.3f",
		corr.DataPoints, current, upPct, downPct,
		corr.ImpactScore, corr.AvgSentimentUp, corr.AvgSentimentDown,
	)
}
