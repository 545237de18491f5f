package app

import (
	"fmt"
	"os"
	"text/tabwriter"

	"market-signals/internal/storage"
)

// Show prints recent prediction records.
func (a *App) Show(opts ShowOptions) error {
	store := a.newStore()

	var records []storage.PredictionRecord
	store.View(func(m *storage.Memory) {
		log := m.PredictionsLog
		if opts.Limit > 0 && len(log) > opts.Limit {
			log = log[len(log)-opts.Limit:]
		}
		records = append(records, log...)
	})

	if len(records) == 0 {
		fmt.Fprintln(os.Stdout, "no predictions recorded")
		return nil
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Date\tSymbol\tPredicted\tConfidence\tSentiment\tActual\tResult")

	for _, rec := range records {
		actual := ""
		if rec.ActualDirection != "" {
			actual = rec.ActualDirection
			if rec.ActualChange != nil {
				actual = fmt.Sprintf("%s (%s%%)", rec.ActualDirection, rec.ActualChange.StringFixed(2))
			}
		}

		result := "pending"
		if rec.Verified {
			result = "ungraded"
			if rec.Correct != nil {
				if *rec.Correct {
					result = "correct"
				} else {
					result = "wrong"
				}
			}
		}

		fmt.Fprintf(
			writer,
			"%s\t%s\t%s\t%.1f%%\t%+.3f\t%s\t%s\n",
			rec.Date,
			rec.Symbol,
			rec.Direction,
			rec.Confidence,
			rec.Sentiment,
			actual,
			result,
		)
	}

	return writer.Flush()
}
