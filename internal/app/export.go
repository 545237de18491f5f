package app

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"market-signals/internal/storage"
)

// Export renders one instrument's recorded history as CSV and/or PNG.
func (a *App) Export(opts ExportOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	opts.MaxPoints = a.Config.ResolveMaxPoints(opts.MaxPoints)

	store := a.newStore()

	var points []storage.PricePoint
	known := false
	store.View(func(m *storage.Memory) {
		history, ok := m.StockHistory[opts.Symbol]
		known = ok
		points = append(points, history...)
	})
	if !known {
		return fmt.Errorf("%w: %s", storage.ErrUnknownInstrument, opts.Symbol)
	}
	if len(points) == 0 {
		a.Logger.Info().Str("symbol", opts.Symbol).Msg("no history to export")
		return nil
	}

	downsampled := downsamplePoints(points, opts.MaxPoints)
	a.Logger.Info().
		Str("symbol", opts.Symbol).
		Int("total", len(points)).
		Int("exported", len(downsampled)).
		Msg("exporting history")

	if opts.CSVPath != "" {
		if err := writeHistoryCSV(opts.CSVPath, opts.Symbol, downsampled); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := writeHistoryPNG(opts.PNGPath, opts.Symbol, downsampled); err != nil {
			return err
		}
	}

	return nil
}

func downsamplePoints(points []storage.PricePoint, max int) []storage.PricePoint {
	if max <= 0 || len(points) <= max {
		return points
	}

	result := make([]storage.PricePoint, 0, max)
	step := float64(len(points)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		idx := int(math.Round(step * float64(i)))
		if idx >= len(points) {
			idx = len(points) - 1
		}
		result = append(result, points[idx])
	}
	return result
}

func writeHistoryCSV(path, symbol string, points []storage.PricePoint) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"date", "symbol", "price", "change_pct"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, point := range points {
		record := []string{
			point.Date,
			symbol,
			point.Price.String(),
			point.ChangePct.String(),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeHistoryPNG(path, symbol string, points []storage.PricePoint) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	x := make([]time.Time, 0, len(points))
	price := make([]float64, 0, len(points))
	change := make([]float64, 0, len(points))

	for _, point := range points {
		day, err := time.Parse(storage.DayFormat, point.Date)
		if err != nil {
			continue
		}
		x = append(x, day)
		price = append(price, point.Price.InexactFloat64())
		change = append(change, point.ChangePct.InexactFloat64())
	}
	if len(x) < 2 {
		return errors.New("not enough dated points to chart")
	}

	priceFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.2f")
	}
	graph := chart.Chart{
		Title:  symbol,
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:           "Close",
			ValueFormatter: priceFormatter,
		},
		YAxisSecondary: chart.YAxis{
			Name:           "Change (%)",
			ValueFormatter: priceFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Close",
				XValues: x,
				YValues: price,
			},
			chart.TimeSeries{
				Name:    "Change %",
				XValues: x,
				YValues: change,
				YAxis:   chart.YAxisSecondary,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
