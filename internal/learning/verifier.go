package learning

import (
	"market-signals/internal/storage"
)

// Verify grades every unverified prediction against the first price point
// strictly after its date, then rebuilds LearningStats from the full log.
// Idempotent: a record is graded at most once, and rerunning on unchanged
// history never changes the totals.
func (e *Engine) Verify() storage.LearningStats {
	var stats storage.LearningStats
	newly := 0

	e.store.Update(func(m *storage.Memory) {
		for i := range m.PredictionsLog {
			pred := &m.PredictionsLog[i]
			if pred.Verified {
				continue
			}

			history := m.StockHistory[pred.Symbol]
			for _, point := range history {
				if point.Date <= pred.Date {
					continue
				}

				change := point.ChangePct
				actual := DirectionDown
				if change.IsPositive() {
					actual = DirectionUp
				}
				pred.ActualDirection = actual
				pred.ActualChange = &change

				// SIDEWAYS, NEUTRAL, and LEARNING abstain; only a real call
				// gets a correctness verdict.
				if pred.Direction == DirectionUp || pred.Direction == DirectionDown {
					correct := (pred.Direction == DirectionUp && change.IsPositive()) ||
						(pred.Direction == DirectionDown && change.IsNegative())
					pred.Correct = &correct
				}
				pred.Verified = true
				newly++
				break
			}
		}

		// Totals come from the full graded log, never from increments.
		total, correct := 0, 0
		for _, pred := range m.PredictionsLog {
			if !pred.Verified || pred.Correct == nil {
				continue
			}
			total++
			if *pred.Correct {
				correct++
			}
		}
		m.Stats.TotalPredictions = total
		m.Stats.CorrectPredictions = correct
		stats = m.Stats
	})

	e.logger.Info().
		Int("newly_verified", newly).
		Int("total_graded", stats.TotalPredictions).
		Int("correct", stats.CorrectPredictions).
		Msg("predictions verified")
	return stats
}
