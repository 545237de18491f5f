package app

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"
)

// Predict prints the engine's directional forecast for each symbol.
func (a *App) Predict(symbols []string) error {
	if len(symbols) == 0 {
		symbols = a.Config.Portfolio.Symbols
	}

	engine := a.newEngine(a.newStore())
	now := time.Now().UTC()

	for i, symbol := range symbols {
		pred := engine.Predict(now, symbol)
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		if pred.Directional() {
			fmt.Fprintf(os.Stdout, "%s: %s (%.1f%% confidence)\n", pred.Symbol, pred.Direction, pred.Confidence)
		} else {
			fmt.Fprintf(os.Stdout, "%s: %s\n", pred.Symbol, pred.Direction)
		}
		fmt.Fprintln(os.Stdout, pred.Reasoning)
	}
	return nil
}

// Status prints the learning summary.
func (a *App) Status() error {
	engine := a.newEngine(a.newStore())
	summary := engine.Summarize()

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "Instruments tracked\t%d\n", summary.InstrumentsTracked)
	fmt.Fprintf(writer, "Price data points\t%d\n", summary.DataPoints)
	fmt.Fprintf(writer, "News analyzed\t%d\n", summary.NewsAnalyzed)
	fmt.Fprintf(writer, "Predictions graded\t%d\n", summary.PredictionsGraded)
	fmt.Fprintf(writer, "Correct predictions\t%d\n", summary.CorrectPredictions)
	fmt.Fprintf(writer, "Accuracy\t%.1f%%\n", summary.AccuracyPct)
	fmt.Fprintf(writer, "Days of learning\t%d\n", summary.DaysOfLearning)
	if summary.LastUpdated != "" {
		fmt.Fprintf(writer, "Last updated\t%s\n", summary.LastUpdated)
	}
	return writer.Flush()
}
