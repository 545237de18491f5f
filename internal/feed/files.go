package feed

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"market-signals/internal/scoring"
)

// CSVBars reads one CSV file per instrument from a directory:
// <dir>/<symbol>.csv with columns date,open,high,low,close,volume.
type CSVBars struct {
	dir string
}

// NewCSVBars constructs a CSV-backed bar source.
func NewCSVBars(dir string) *CSVBars {
	return &CSVBars{dir: dir}
}

// Bars parses and date-sorts the instrument's file.
func (s *CSVBars) Bars(ctx context.Context, symbol string) ([]scoring.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, symbol+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars for %s: %w", symbol, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read bars for %s: %w", symbol, err)
	}

	bars := make([]scoring.Bar, 0, len(rows))
	for i, row := range rows {
		if i == 0 && strings.EqualFold(row[0], "date") {
			continue
		}
		bar, err := parseBar(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+1, err)
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func parseBar(row []string) (scoring.Bar, error) {
	if len(row) < 6 {
		return scoring.Bar{}, fmt.Errorf("expected 6 columns, got %d", len(row))
	}

	date, err := time.Parse("2006-01-02", row[0])
	if err != nil {
		return scoring.Bar{}, fmt.Errorf("parse date: %w", err)
	}

	fields := make([]decimal.Decimal, 4)
	for i, col := range row[1:5] {
		d, err := decimal.NewFromString(strings.TrimSpace(col))
		if err != nil {
			return scoring.Bar{}, fmt.Errorf("parse price column %d: %w", i+1, err)
		}
		fields[i] = d
	}

	volume, err := strconv.ParseInt(strings.TrimSpace(row[5]), 10, 64)
	if err != nil {
		return scoring.Bar{}, fmt.Errorf("parse volume: %w", err)
	}

	return scoring.Bar{
		Date:   date,
		Open:   fields[0],
		High:   fields[1],
		Low:    fields[2],
		Close:  fields[3],
		Volume: volume,
	}, nil
}

// FileHeadlines reads one headline per line from a text file; blank lines
// and #-comments are skipped. A missing file means no news today.
type FileHeadlines struct {
	path string
}

// NewFileHeadlines constructs a file-backed headline source.
func NewFileHeadlines(path string) *FileHeadlines {
	return &FileHeadlines{path: path}
}

// Headlines returns the current headline batch.
func (s *FileHeadlines) Headlines(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open headlines: %w", err)
	}
	defer file.Close()

	var out []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan headlines: %w", err)
	}
	return out, nil
}

var (
	_ BarSource      = (*CSVBars)(nil)
	_ HeadlineSource = (*FileHeadlines)(nil)
)
