package learning

import (
	"time"

	"github.com/shopspring/decimal"

	"market-signals/internal/sentiment"
	"market-signals/internal/storage"
)

const headlineMaxLen = 200

// RecordStockData appends one day's price point for symbol. Duplicate dates
// for the same day are ignored. Updates the distinct-day count and the
// last-update stamp.
func (e *Engine) RecordStockData(day time.Time, symbol string, price, changePct decimal.Decimal) {
	date := storage.Day(day)
	e.store.Update(func(m *storage.Memory) {
		added := m.AppendPrice(symbol, storage.PricePoint{
			Date:      date,
			Price:     price.Round(2),
			ChangePct: changePct.Round(3),
		})
		m.Stats.LastUpdated = date
		m.Stats.TotalDays = m.DistinctDays()

		if added {
			e.logger.Debug().Str("symbol", symbol).Str("date", date).Msg("price point recorded")
		}
	})
}

// RecordHeadlines scores each headline and appends the observations, then
// trims the trailing news window.
func (e *Engine) RecordHeadlines(day time.Time, headlines []string) {
	if len(headlines) == 0 {
		return
	}
	date := storage.Day(day)
	cutoff := storage.Day(day.AddDate(0, 0, -storage.NewsWindowDays))

	e.store.Update(func(m *storage.Memory) {
		for _, h := range headlines {
			m.AppendNews(storage.NewsObservation{
				Date:      date,
				Headline:  truncate(h, headlineMaxLen),
				Sentiment: sentiment.Analyze(h),
				Sectors:   sentiment.DetectSectors(h),
			})
		}
		m.TrimNews(cutoff)
		e.logger.Debug().Int("headlines", len(headlines)).Str("date", date).Msg("news recorded")
	})
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
