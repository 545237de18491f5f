package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCSVBarsParsesAndSorts(t *testing.T) {
	dir := t.TempDir()
	csvData := "date,open,high,low,close,volume\n" +
		"2026-08-27,101.5,103.0,100.2,102.75,120000\n" +
		"2026-08-26,100.0,102.0,99.5,101.5,80000\n"
	if err := os.WriteFile(filepath.Join(dir, "TCS.NS.csv"), []byte(csvData), 0o644); err != nil {
		t.Fatal(err)
	}

	bars, err := NewCSVBars(dir).Bars(context.Background(), "TCS.NS")
	if err != nil {
		t.Fatalf("解析 CSV 失败: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Fatal("bars must be sorted by date ascending")
	}
	if bars[1].Close.String() != "102.75" {
		t.Fatalf("unexpected close: %s", bars[1].Close)
	}
	if bars[0].Volume != 80000 {
		t.Fatalf("unexpected volume: %d", bars[0].Volume)
	}
}

func TestCSVBarsMissingFile(t *testing.T) {
	if _, err := NewCSVBars(t.TempDir()).Bars(context.Background(), "NOPE"); err == nil {
		t.Fatal("missing instrument file should error")
	}
}

func TestCSVBarsBadRow(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "X.csv"), []byte("2026-08-27,1,2,3,not-a-price,10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewCSVBars(dir).Bars(context.Background(), "X"); err == nil {
		t.Fatal("unparsable price should error")
	}
}

func TestFileHeadlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headlines.txt")
	content := "# morning batch\n\nIT stocks rally on earnings beat\nAirline shares drop on fuel costs\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	lines, err := NewFileHeadlines(path).Headlines(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("应跳过注释与空行, 实际 %v", lines)
	}
}

func TestFileHeadlinesMissingFileMeansNoNews(t *testing.T) {
	lines, err := NewFileHeadlines(filepath.Join(t.TempDir(), "none.txt")).Headlines(context.Background())
	if err != nil || lines != nil {
		t.Fatalf("missing file should be empty, not an error: %v %v", lines, err)
	}
}
