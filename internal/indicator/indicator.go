// Package indicator computes technical indicators over closing-price and
// OHLCV sequences. Every function reports ok=false when the series is too
// short for its window; callers must skip unavailable indicators rather
// than treat them as zero.
package indicator

import "math"

// SMA returns the simple moving average of the trailing n closes.
func SMA(closes []float64, n int) (float64, bool) {
	if n <= 0 || len(closes) < n {
		return 0, false
	}
	sum := 0.0
	for i := len(closes) - n; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(n), true
}

// StdDev returns the population standard deviation of the trailing n closes.
func StdDev(closes []float64, n int) (float64, bool) {
	mean, ok := SMA(closes, n)
	if !ok {
		return 0, false
	}
	s := 0.0
	for i := len(closes) - n; i < len(closes); i++ {
		d := closes[i] - mean
		s += d * d
	}
	return math.Sqrt(s / float64(n)), true
}

// EMA returns the exponential moving average series with smoothing
// 2/(span+1), seeded from the first value.
func EMA(values []float64, span int) []float64 {
	if span <= 0 || len(values) == 0 {
		return nil
	}
	k := 2.0 / float64(span+1)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}

// RSI computes the relative strength index over a rolling window of simple
// gain/loss means. Undefined until period+1 closes exist. Always in [0,100].
func RSI(closes []float64, period int) (float64, bool) {
	if period <= 0 || len(closes) < period+1 {
		return 0, false
	}
	gain, loss := 0.0, 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	if loss == 0 {
		return 100, true
	}
	rs := (gain / float64(period)) / (loss / float64(period))
	return 100 - (100 / (1 + rs)), true
}

// Bands holds Bollinger band levels for the latest bar.
type Bands struct {
	Mid   float64
	Upper float64
	Lower float64
}

// Bollinger computes period-bar bands at k standard deviations.
func Bollinger(closes []float64, period int, k float64) (Bands, bool) {
	mid, ok := SMA(closes, period)
	if !ok {
		return Bands{}, false
	}
	sd, _ := StdDev(closes, period)
	return Bands{Mid: mid, Upper: mid + k*sd, Lower: mid - k*sd}, true
}

// Position reports where price sits within the bands: 0 at the lower band,
// 1 at the upper. Values outside [0,1] mean price pierced a band.
func (b Bands) Position(price float64) float64 {
	width := b.Upper - b.Lower
	if width == 0 {
		return 0.5
	}
	return (price - b.Lower) / width
}

// MACDResult carries the 12/26/9 MACD state for the latest bars.
type MACDResult struct {
	Line          float64
	Signal        float64
	Histogram     float64
	PrevHistogram float64
	BullishCross  bool
	BearishCross  bool
	HistRising    bool
	HistFalling   bool
}

// MACD computes the fast/slow EMA difference and its signal-line EMA.
// Requires slow+signalSpan closes so the signal line has a full window
// behind it. A crossover is a histogram sign flip between the last two bars.
func MACD(closes []float64, fast, slow, signalSpan int) (MACDResult, bool) {
	if len(closes) < slow+signalSpan {
		return MACDResult{}, false
	}
	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	signal := EMA(line, signalSpan)

	n := len(closes)
	res := MACDResult{
		Line:          line[n-1],
		Signal:        signal[n-1],
		Histogram:     line[n-1] - signal[n-1],
		PrevHistogram: line[n-2] - signal[n-2],
	}
	res.BullishCross = res.PrevHistogram <= 0 && res.Histogram > 0
	res.BearishCross = res.PrevHistogram >= 0 && res.Histogram < 0
	if n >= 3 {
		older := line[n-3] - signal[n-3]
		res.HistRising = res.Histogram > older
		res.HistFalling = res.Histogram < older
	}
	return res, true
}

// SupportResistance returns min(low) and max(high) over the trailing n bars.
func SupportResistance(highs, lows []float64, n int) (support, resistance float64, ok bool) {
	if n <= 0 || len(highs) != len(lows) || len(highs) < n {
		return 0, 0, false
	}
	support = lows[len(lows)-n]
	resistance = highs[len(highs)-n]
	for i := len(highs) - n + 1; i < len(highs); i++ {
		if lows[i] < support {
			support = lows[i]
		}
		if highs[i] > resistance {
			resistance = highs[i]
		}
	}
	return support, resistance, true
}

// VolumeClass labels the latest bar's volume relative to recent history.
type VolumeClass string

const (
	HeavyBuying  VolumeClass = "Heavy Buying"
	HeavySelling VolumeClass = "Heavy Selling"
	AboveAverage VolumeClass = "Above Average"
	BelowAverage VolumeClass = "Below Average"
)

// VolumeTrend compares the latest volume against the trailing-n average and
// classifies it, using priceUp to tell conviction from distribution.
func VolumeTrend(volumes []int64, n int, priceUp bool) (VolumeClass, float64, bool) {
	if n <= 0 || len(volumes) < n {
		return "", 0, false
	}
	var sum int64
	for i := len(volumes) - n; i < len(volumes); i++ {
		sum += volumes[i]
	}
	avg := float64(sum) / float64(n)
	if avg <= 0 {
		return "", 0, false
	}
	ratio := float64(volumes[len(volumes)-1]) / avg
	switch {
	case ratio > 1.5 && priceUp:
		return HeavyBuying, ratio, true
	case ratio > 1.5:
		return HeavySelling, ratio, true
	case ratio > 1.0:
		return AboveAverage, ratio, true
	default:
		return BelowAverage, ratio, true
	}
}
