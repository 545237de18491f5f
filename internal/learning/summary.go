package learning

import "market-signals/internal/storage"

// Summary condenses the learning state for dashboards and the status
// command.
type Summary struct {
	InstrumentsTracked int
	DataPoints         int
	NewsAnalyzed       int
	PredictionsGraded  int
	CorrectPredictions int
	AccuracyPct        float64
	DaysOfLearning     int
	LastUpdated        string
}

// Summarize reads the store and derives the learning summary.
func (e *Engine) Summarize() Summary {
	var s Summary
	e.store.View(func(m *storage.Memory) {
		s.InstrumentsTracked = len(m.StockHistory)
		for _, history := range m.StockHistory {
			s.DataPoints += len(history)
		}
		s.NewsAnalyzed = len(m.NewsSentiment)
		s.PredictionsGraded = m.Stats.TotalPredictions
		s.CorrectPredictions = m.Stats.CorrectPredictions
		if m.Stats.TotalPredictions > 0 {
			s.AccuracyPct = round1(float64(m.Stats.CorrectPredictions) / float64(m.Stats.TotalPredictions) * 100)
		}
		s.DaysOfLearning = m.Stats.TotalDays
		s.LastUpdated = m.Stats.LastUpdated
	})
	return s
}
