package scoring

import "math"

// Recommendation labels, strongest buy to strongest sell.
const (
	StrongBuy  = "STRONG BUY"
	Buy        = "BUY"
	LeanBuy    = "LEAN BUY"
	Hold       = "HOLD"
	LeanSell   = "LEAN SELL"
	Sell       = "SELL"
	StrongSell = "STRONG SELL"
)

// Label maps a score to exactly one recommendation. The thresholds are
// monotonic and cover the whole real line.
func Label(score float64) string {
	switch {
	case score >= 50:
		return StrongBuy
	case score >= 25:
		return Buy
	case score >= 10:
		return LeanBuy
	case score > -10:
		return Hold
	case score > -25:
		return LeanSell
	case score > -50:
		return Sell
	default:
		return StrongSell
	}
}

// Coverage converts the number of computable families into a confidence
// percentage. It measures indicator coverage, not statistical certainty.
func Coverage(used int) int {
	conf := int(math.Round(100 * float64(used) / familyCount))
	if conf > 100 {
		conf = 100
	}
	return conf
}

// ConfidenceLabel buckets a confidence percentage.
func ConfidenceLabel(confidence int) string {
	switch {
	case confidence >= 80:
		return "High"
	case confidence >= 50:
		return "Medium"
	default:
		return "Low"
	}
}
