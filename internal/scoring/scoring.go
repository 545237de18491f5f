// Package scoring combines technical indicators into a single weighted
// score, a discrete recommendation label, and a coverage-based confidence.
package scoring

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"market-signals/internal/indicator"
)

// ErrInsufficientData reports that no indicator family could be computed.
// Callers must not render this as a neutral score of zero.
var ErrInsufficientData = errors.New("scoring: not enough data")

// Bar is one period's OHLCV snapshot.
type Bar struct {
	Date   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

// Series is an ordered-by-date bar sequence for one instrument, owned by
// the caller for the duration of a scoring call.
type Series struct {
	Symbol string
	Bars   []Bar
}

const (
	rsiPeriod       = 14
	macdFast        = 12
	macdSlow        = 26
	macdSignalSpan  = 9
	bollingerPeriod = 20
	bollingerWidth  = 2.0
	srWindow        = 20
	volumeWindow    = 20
	momentumDays    = 5
	weeklyDays      = 7
	familyCount     = 6
)

// Result is the scored recommendation bundle.
type Result struct {
	Symbol          string
	Score           float64
	Label           string
	Confidence      int
	ConfidenceLabel string
	IndicatorsUsed  int
	Breakdown       Breakdown

	Support         *float64
	Resistance      *float64
	WeeklyChangePct *float64
}

// Breakdown is a fixed record of per-family signals. A nil family means the
// indicator could not be computed, which is different from a zero
// contribution.
type Breakdown struct {
	RSI           *RSISignal
	MACD          *MACDSignal
	Bollinger     *BollingerSignal
	MovingAverage *MASignal
	Volume        *VolumeSignal
	Momentum      *MomentumSignal
}

// RSISignal carries the oscillator reading and its contribution.
type RSISignal struct {
	Value        float64
	Verdict      string
	Contribution float64
}

// MACDSignal carries trend state and its contribution.
type MACDSignal struct {
	Histogram    float64
	Verdict      string
	Contribution float64
}

// BollingerSignal carries band position and its contribution.
type BollingerSignal struct {
	Position     float64
	Verdict      string
	Contribution float64
}

// MASignal carries moving-average alignment and its contribution.
type MASignal struct {
	MA20         float64
	MA50         float64
	HasMA50      bool
	Verdict      string
	Contribution float64
}

// VolumeSignal carries the volume classification and its contribution.
type VolumeSignal struct {
	Ratio        float64
	Class        indicator.VolumeClass
	Contribution float64
}

// MomentumSignal carries the 5-day momentum tier and its contribution.
type MomentumSignal struct {
	ChangePct    float64
	Contribution float64
}

// Score evaluates the series across up to six indicator families. Families
// that cannot be computed are excluded, never zeroed; if none can be
// computed the call fails with ErrInsufficientData.
func Score(series Series) (Result, error) {
	if len(series.Bars) == 0 {
		return Result{}, ErrInsufficientData
	}

	closes := make([]float64, len(series.Bars))
	highs := make([]float64, len(series.Bars))
	lows := make([]float64, len(series.Bars))
	volumes := make([]int64, len(series.Bars))
	for i, bar := range series.Bars {
		closes[i] = bar.Close.InexactFloat64()
		highs[i] = bar.High.InexactFloat64()
		lows[i] = bar.Low.InexactFloat64()
		volumes[i] = bar.Volume
	}
	price := closes[len(closes)-1]

	res := Result{Symbol: series.Symbol}
	res.Breakdown = Breakdown{
		RSI:           rsiSignal(closes),
		MACD:          macdSignal(closes),
		Bollinger:     bollingerSignal(closes, price),
		MovingAverage: maSignal(closes, price),
		Volume:        volumeSignal(volumes, closes),
		Momentum:      momentumSignal(closes),
	}

	total := 0.0
	used := 0
	for _, c := range res.Breakdown.contributions() {
		if c == nil {
			continue
		}
		total += *c
		used++
	}
	if used == 0 {
		return Result{}, ErrInsufficientData
	}

	res.Score = math.Round(total*10) / 10
	res.IndicatorsUsed = used
	res.Label = Label(res.Score)
	res.Confidence = Coverage(used)
	res.ConfidenceLabel = ConfidenceLabel(res.Confidence)

	if sup, resist, ok := indicator.SupportResistance(highs, lows, srWindow); ok {
		res.Support = &sup
		res.Resistance = &resist
	}
	if len(closes) >= weeklyDays {
		base := closes[len(closes)-weeklyDays]
		if base != 0 {
			weekly := (price - base) / base * 100
			res.WeeklyChangePct = &weekly
		}
	}

	return res, nil
}

func (b Breakdown) contributions() []*float64 {
	out := make([]*float64, 0, familyCount)
	if b.RSI != nil {
		out = append(out, &b.RSI.Contribution)
	} else {
		out = append(out, nil)
	}
	if b.MACD != nil {
		out = append(out, &b.MACD.Contribution)
	} else {
		out = append(out, nil)
	}
	if b.Bollinger != nil {
		out = append(out, &b.Bollinger.Contribution)
	} else {
		out = append(out, nil)
	}
	if b.MovingAverage != nil {
		out = append(out, &b.MovingAverage.Contribution)
	} else {
		out = append(out, nil)
	}
	if b.Volume != nil {
		out = append(out, &b.Volume.Contribution)
	} else {
		out = append(out, nil)
	}
	if b.Momentum != nil {
		out = append(out, &b.Momentum.Contribution)
	} else {
		out = append(out, nil)
	}
	return out
}

func rsiSignal(closes []float64) *RSISignal {
	value, ok := indicator.RSI(closes, rsiPeriod)
	if !ok {
		return nil
	}
	sig := &RSISignal{Value: value}
	switch {
	case value < 30:
		sig.Verdict, sig.Contribution = "Oversold", 20
	case value < 40:
		sig.Verdict, sig.Contribution = "Approaching oversold", 10
	case value > 70:
		sig.Verdict, sig.Contribution = "Overbought", -20
	case value > 60:
		sig.Verdict, sig.Contribution = "Approaching overbought", -10
	default:
		sig.Verdict, sig.Contribution = "Neutral", 5
	}
	return sig
}

func macdSignal(closes []float64) *MACDSignal {
	res, ok := indicator.MACD(closes, macdFast, macdSlow, macdSignalSpan)
	if !ok {
		return nil
	}
	sig := &MACDSignal{Histogram: res.Histogram}
	switch {
	case res.BullishCross:
		sig.Verdict, sig.Contribution = "Bullish crossover", 25
	case res.BearishCross:
		sig.Verdict, sig.Contribution = "Bearish crossover", -25
	case res.Histogram > 0:
		sig.Verdict, sig.Contribution = "Bullish", 15
	case res.Histogram < 0:
		sig.Verdict, sig.Contribution = "Bearish", -15
	default:
		sig.Verdict = "Flat"
	}
	if res.HistRising {
		sig.Contribution += 5
	} else if res.HistFalling {
		sig.Contribution -= 5
	}
	return sig
}

func bollingerSignal(closes []float64, price float64) *BollingerSignal {
	bands, ok := indicator.Bollinger(closes, bollingerPeriod, bollingerWidth)
	if !ok {
		return nil
	}
	sig := &BollingerSignal{Position: bands.Position(price)}
	switch {
	case price <= bands.Lower:
		sig.Verdict, sig.Contribution = "At lower band", 15
	case price >= bands.Upper:
		sig.Verdict, sig.Contribution = "At upper band", -15
	case sig.Position < 0.5:
		sig.Verdict, sig.Contribution = "Below middle", 5
	default:
		sig.Verdict, sig.Contribution = "Above middle", -5
	}
	return sig
}

func maSignal(closes []float64, price float64) *MASignal {
	ma20, ok20 := indicator.SMA(closes, 20)
	if !ok20 {
		return nil
	}
	ma50, ok50 := indicator.SMA(closes, 50)

	sig := &MASignal{MA20: ma20, MA50: ma50, HasMA50: ok50}
	if !ok50 {
		// Single-MA fallback.
		if price > ma20 {
			sig.Verdict, sig.Contribution = "Above MA20", 10
		} else {
			sig.Verdict, sig.Contribution = "Below MA20", -10
		}
		return sig
	}

	switch {
	case ma20 > ma50 && price > ma20:
		sig.Verdict, sig.Contribution = "Aligned uptrend", 20
	case ma20 > ma50:
		sig.Verdict, sig.Contribution = "Uptrend", 10
	case ma20 < ma50 && price < ma20:
		sig.Verdict, sig.Contribution = "Aligned downtrend", -20
	case ma20 < ma50:
		sig.Verdict, sig.Contribution = "Downtrend", -10
	default:
		sig.Verdict = "Flat"
	}
	return sig
}

func volumeSignal(volumes []int64, closes []float64) *VolumeSignal {
	if len(closes) < 2 {
		return nil
	}
	priceUp := closes[len(closes)-1] > closes[len(closes)-2]
	class, ratio, ok := indicator.VolumeTrend(volumes, volumeWindow, priceUp)
	if !ok {
		return nil
	}
	sig := &VolumeSignal{Ratio: ratio, Class: class}
	switch class {
	case indicator.HeavyBuying:
		sig.Contribution = 10
	case indicator.HeavySelling:
		sig.Contribution = -10
	}
	return sig
}

func momentumSignal(closes []float64) *MomentumSignal {
	if len(closes) < momentumDays+1 {
		return nil
	}
	base := closes[len(closes)-momentumDays-1]
	if base == 0 {
		return nil
	}
	change := (closes[len(closes)-1] - base) / base * 100
	sig := &MomentumSignal{ChangePct: change}
	switch {
	case change > 3:
		sig.Contribution = 10
	case change > 0:
		sig.Contribution = 5
	case change > -3:
		sig.Contribution = -5
	default:
		sig.Contribution = -10
	}
	return sig
}
