package indicator

import (
	"math"
	"testing"
)

func TestSMAInsufficient(t *testing.T) {
	if _, ok := SMA([]float64{1, 2}, 3); ok {
		t.Fatal("SMA 数据不足时应返回 ok=false")
	}
}

func TestSMAValue(t *testing.T) {
	v, ok := SMA([]float64{1, 2, 3, 4, 5}, 3)
	if !ok {
		t.Fatal("expected SMA to be available")
	}
	if v != 4 {
		t.Fatalf("expected SMA 4, got %f", v)
	}
}

func TestRSIRange(t *testing.T) {
	series := []float64{100}
	for i := 1; i < 80; i++ {
		delta := math.Sin(float64(i)*1.3) * 5
		series = append(series, series[i-1]+delta)
	}
	for n := 15; n <= len(series); n++ {
		v, ok := RSI(series[:n], 14)
		if !ok {
			t.Fatalf("RSI should be defined with %d closes", n)
		}
		if v < 0 || v > 100 {
			t.Fatalf("RSI %f out of [0,100]", v)
		}
	}
}

func TestRSIAllGains(t *testing.T) {
	series := make([]float64, 0, 20)
	for i := 0; i < 20; i++ {
		series = append(series, 100+float64(i))
	}
	v, ok := RSI(series, 14)
	if !ok || v != 100 {
		t.Fatalf("纯上涨序列 RSI 应为 100, 实际 %f", v)
	}
}

func TestRSIInsufficient(t *testing.T) {
	if _, ok := RSI([]float64{1, 2, 3}, 14); ok {
		t.Fatal("RSI should be unavailable below period+1 closes")
	}
}

func TestBollinger(t *testing.T) {
	series := make([]float64, 20)
	for i := range series {
		series[i] = 100
	}
	b, ok := Bollinger(series, 20, 2)
	if !ok {
		t.Fatal("expected bands on 20 closes")
	}
	if b.Mid != 100 || b.Upper != 100 || b.Lower != 100 {
		t.Fatalf("flat series should collapse the bands: %+v", b)
	}
	if pos := b.Position(100); pos != 0.5 {
		t.Fatalf("zero-width bands should report mid position, got %f", pos)
	}

	series[19] = 120
	b, _ = Bollinger(series, 20, 2)
	if b.Upper <= b.Mid || b.Lower >= b.Mid {
		t.Fatalf("bands should straddle the mid: %+v", b)
	}
	if pos := b.Position(b.Lower); pos != 0 {
		t.Fatalf("price at lower band should be position 0, got %f", pos)
	}
}

func TestMACDBullishCross(t *testing.T) {
	// Long decline then a sharp recovery flips the histogram positive.
	series := make([]float64, 0, 60)
	price := 200.0
	for i := 0; i < 50; i++ {
		price -= 1.0
		series = append(series, price)
	}
	for i := 0; i < 10; i++ {
		price += 6.0
		series = append(series, price)
	}

	crossed := false
	for n := 36; n <= len(series); n++ {
		res, ok := MACD(series[:n], 12, 26, 9)
		if !ok {
			t.Fatalf("MACD should be defined with %d closes", n)
		}
		if res.BullishCross {
			if res.Histogram <= 0 || res.PrevHistogram > 0 {
				t.Fatalf("bullish cross requires a sign flip: %+v", res)
			}
			crossed = true
		}
	}
	if !crossed {
		t.Fatal("recovery should produce at least one bullish crossover")
	}
}

func TestMACDInsufficient(t *testing.T) {
	series := make([]float64, 34)
	if _, ok := MACD(series, 12, 26, 9); ok {
		t.Fatal("34 根K线不应计算 MACD")
	}
}

func TestSupportResistance(t *testing.T) {
	highs := []float64{10, 12, 15, 11, 13}
	lows := []float64{8, 9, 12, 7, 10}
	sup, res, ok := SupportResistance(highs, lows, 5)
	if !ok {
		t.Fatal("expected support/resistance")
	}
	if sup != 7 || res != 15 {
		t.Fatalf("expected 7/15, got %f/%f", sup, res)
	}
	if _, _, ok := SupportResistance(highs, lows, 6); ok {
		t.Fatal("window larger than history should be unavailable")
	}
}

func TestVolumeTrend(t *testing.T) {
	vols := make([]int64, 20)
	for i := range vols {
		vols[i] = 100
	}

	vols[19] = 200
	class, ratio, ok := VolumeTrend(vols, 20, true)
	if !ok || class != HeavyBuying {
		t.Fatalf("expected Heavy Buying, got %s", class)
	}
	if ratio <= 1.5 {
		t.Fatalf("ratio should exceed 1.5, got %f", ratio)
	}

	if class, _, _ = VolumeTrend(vols, 20, false); class != HeavySelling {
		t.Fatalf("expected Heavy Selling, got %s", class)
	}

	vols[19] = 110
	if class, _, _ = VolumeTrend(vols, 20, true); class != AboveAverage {
		t.Fatalf("expected Above Average, got %s", class)
	}

	vols[19] = 50
	if class, _, _ = VolumeTrend(vols, 20, true); class != BelowAverage {
		t.Fatalf("expected Below Average, got %s", class)
	}

	if _, _, ok := VolumeTrend(vols[:10], 20, true); ok {
		t.Fatal("short volume history should be unavailable")
	}
}
