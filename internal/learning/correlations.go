package learning

import (
	"math"

	"market-signals/internal/storage"
)

// Learn recomputes every instrument's Correlation from scratch and returns
// the result. Idempotent: unchanged history yields identical records.
func (e *Engine) Learn() map[string]storage.Correlation {
	var out map[string]storage.Correlation
	e.store.Update(func(m *storage.Memory) {
		learnLocked(m, e.params)
		out = make(map[string]storage.Correlation, len(m.Correlations))
		for symbol, corr := range m.Correlations {
			out[symbol] = corr
		}
	})
	e.logger.Debug().Int("instruments", len(out)).Msg("correlations recomputed")
	return out
}

// learnLocked rebuilds m.Correlations in place. For each adjacent pair of
// trading days it averages all observations dated on either day and buckets
// that average by the realised move against the flat dead zone. Instruments
// below MinSamples history points get no Correlation at all.
func learnLocked(m *storage.Memory, params Params) {
	for symbol, history := range m.StockHistory {
		if len(history) < params.MinSamples {
			continue
		}

		var upSent, downSent, flatSent []float64
		for i := 1; i < len(history); i++ {
			current := history[i]
			prevDate := history[i-1].Date

			var daySent []float64
			for _, n := range m.NewsSentiment {
				if n.Date == prevDate || n.Date == current.Date {
					daySent = append(daySent, n.Sentiment)
				}
			}
			if len(daySent) == 0 {
				continue
			}

			avg := mean(daySent)
			change, _ := current.ChangePct.Float64()
			switch {
			case change > params.FlatThresholdPct:
				upSent = append(upSent, avg)
			case change < -params.FlatThresholdPct:
				downSent = append(downSent, avg)
			default:
				flatSent = append(flatSent, avg)
			}
		}

		corr := storage.Correlation{
			DataPoints: len(history),
			UpDays:     len(upSent),
			DownDays:   len(downSent),
			FlatDays:   len(flatSent),
		}
		if len(upSent) > 0 {
			corr.AvgSentimentUp = round3(mean(upSent))
		}
		if len(downSent) > 0 {
			corr.AvgSentimentDown = round3(mean(downSent))
		}
		if len(flatSent) > 0 {
			corr.AvgSentimentFlat = round3(mean(flatSent))
		}
		// Impact only means something when both buckets have members.
		if len(upSent) > 0 && len(downSent) > 0 {
			corr.ImpactScore = round3(math.Abs(corr.AvgSentimentUp - corr.AvgSentimentDown))
		}

		m.Correlations[symbol] = corr
	}
}
