// Package sentiment scores free text for lexical polarity and tags it with
// sector keywords. The model is deliberately lexical: fixed word sets, no
// semantics.
package sentiment

import (
	"math"
	"strings"
)

var positiveWords = wordSet(
	"surge", "soar", "rally", "jump", "gain", "profit", "growth", "boost",
	"bullish", "record", "high", "upgrade", "beat", "exceed", "strong",
	"positive", "optimistic", "recover", "rise", "improve", "expansion",
	"innovation", "breakthrough", "partnership", "deal", "acquisition",
	"launch", "success", "milestone", "revenue", "earnings", "dividend",
	"outperform", "buy", "invest", "boom", "demand", "opportunity",
	"upbeat", "momentum", "advance", "achieve", "award", "approve",
)

var negativeWords = wordSet(
	"crash", "plunge", "drop", "fall", "loss", "decline", "bearish",
	"downgrade", "miss", "weak", "negative", "pessimistic", "recession",
	"crisis", "risk", "concern", "fear", "uncertainty", "volatile",
	"sell", "dump", "layoff", "cut", "slash", "debt", "default",
	"scandal", "fraud", "investigation", "penalty", "fine", "warning",
	"slowdown", "contraction", "inflation", "tariff", "sanction", "ban",
	"delay", "failure", "reject", "lawsuit", "bankrupt", "collapse",
)

var sectorKeywords = map[string][]string{
	"tech": {"ai", "artificial intelligence", "technology", "software", "cloud",
		"semiconductor", "chip", "digital", "automation", "data"},
	"aviation": {"airline", "aviation", "flight", "airport", "travel", "tourism",
		"fuel", "oil", "passenger", "aircraft", "boeing", "airbus"},
	"finance": {"bank", "interest rate", "rbi", "fed", "inflation", "gdp",
		"fiscal", "monetary", "credit", "lending", "insurance"},
	"general": {"market", "economy", "trade", "export", "import", "government",
		"policy", "regulation", "global", "geopolitical"},
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Analyze scores text in [-1,1] as (pos-neg)/(pos+neg) over case-insensitive
// hits against the fixed word sets, rounded to three decimals. Returns
// exactly 0 for empty text or text with no sentiment words: a neutral
// default, indistinguishable from genuinely balanced sentiment.
func Analyze(text string) float64 {
	if text == "" {
		return 0
	}

	pos, neg := 0, 0
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		w := strings.Trim(raw, ".,!?;:")
		if _, ok := positiveWords[w]; ok {
			pos++
		}
		if _, ok := negativeWords[w]; ok {
			neg++
		}
	}

	total := pos + neg
	if total == 0 {
		return 0
	}
	return math.Round(float64(pos-neg)/float64(total)*1000) / 1000
}

// DetectSectors returns the sectors whose keyword lists match the text by
// case-insensitive substring. Falls back to ["general"] when nothing matches.
func DetectSectors(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, sector := range []string{"tech", "aviation", "finance", "general"} {
		for _, kw := range sectorKeywords[sector] {
			if strings.Contains(lower, kw) {
				matched = append(matched, sector)
				break
			}
		}
	}
	if len(matched) == 0 {
		return []string{"general"}
	}
	return matched
}
