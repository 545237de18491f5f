package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"market-signals/internal/scoring"
)

// Score evaluates one instrument's bars and prints the indicator breakdown.
func (a *App) Score(ctx context.Context, symbol string) error {
	bars, _ := a.newSources()
	series, err := bars.Bars(ctx, symbol)
	if err != nil {
		return err
	}

	result, err := scoring.Score(scoring.Series{Symbol: symbol, Bars: series})
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "Symbol\t%s\n", symbol)
	fmt.Fprintf(writer, "Score\t%.1f\n", result.Score)
	fmt.Fprintf(writer, "Recommendation\t%s\n", result.Label)
	fmt.Fprintf(writer, "Confidence\t%d%% (%s)\n", result.Confidence, result.ConfidenceLabel)
	fmt.Fprintf(writer, "Indicators used\t%d/6\n", result.IndicatorsUsed)
	if result.Support != nil && result.Resistance != nil {
		fmt.Fprintf(writer, "Support/Resistance\t%.2f / %.2f\n", *result.Support, *result.Resistance)
	}
	if result.WeeklyChangePct != nil {
		fmt.Fprintf(writer, "Weekly change\t%+.2f%%\n", *result.WeeklyChangePct)
	}
	writer.Flush()

	fmt.Fprintln(os.Stdout)
	bw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(bw, "Indicator\tReading\tVerdict\tContribution")

	b := result.Breakdown
	if b.RSI != nil {
		fmt.Fprintf(bw, "RSI(14)\t%.1f\t%s\t%+.0f\n", b.RSI.Value, b.RSI.Verdict, b.RSI.Contribution)
	}
	if b.MACD != nil {
		fmt.Fprintf(bw, "MACD\t%.3f\t%s\t%+.0f\n", b.MACD.Histogram, b.MACD.Verdict, b.MACD.Contribution)
	}
	if b.Bollinger != nil {
		fmt.Fprintf(bw, "Bollinger\t%.2f\t%s\t%+.0f\n", b.Bollinger.Position, b.Bollinger.Verdict, b.Bollinger.Contribution)
	}
	if b.MovingAverage != nil {
		ma50 := "n/a"
		if b.MovingAverage.HasMA50 {
			ma50 = fmt.Sprintf("%.2f", b.MovingAverage.MA50)
		}
		fmt.Fprintf(bw, "MA(20/50)\t%.2f / %s\t%s\t%+.0f\n", b.MovingAverage.MA20, ma50, b.MovingAverage.Verdict, b.MovingAverage.Contribution)
	}
	if b.Volume != nil {
		fmt.Fprintf(bw, "Volume\t%.2fx\t%s\t%+.0f\n", b.Volume.Ratio, b.Volume.Class, b.Volume.Contribution)
	}
	if b.Momentum != nil {
		fmt.Fprintf(bw, "Momentum(5d)\t%+.2f%%\t\t%+.0f\n", b.Momentum.ChangePct, b.Momentum.Contribution)
	}

	return bw.Flush()
}
