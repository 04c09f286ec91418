package analyzer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rkapoor/tradeo/internal/models"
)

// Plausibility bands. Values outside these are treated as spurious matches
// and discarded, regardless of how confidently the pattern matched.
const (
	MinPlausiblePrice = 1.0
	MaxPlausiblePrice = 10000.0
	MinPlausiblePct   = -100.0
	MaxPlausiblePct   = 1000.0
	MaxPlausiblePE    = 1000.0
)

// pricePatterns are tried in order against lower-cased text. All numeric
// matches across all patterns are collected before the band filter and the
// max policy are applied.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:price|stock|trading|closed?)\s*(?:at|for|:)?\s*[$₹]?\s*(\d{1,6}\.?\d{0,2})`),
	regexp.MustCompile(`[$₹]\s*(\d{1,6}\.?\d{0,2})`),
	regexp.MustCompile(`(\d{1,6}\.?\d{0,2})\s*[$₹]`),
	regexp.MustCompile(`(?:priced?|valued?|worth)\s*[$₹]?\s*(\d{1,6}\.?\d{0,2})`),
}

var percentagePattern = regexp.MustCompile(`[+-]?\d+\.?\d*%`)

var peRatioPatterns = []*regexp.Regexp{
	regexp.MustCompile(`p/e\s*ratio?\s*:?\s*(\d+\.?\d*)`),
	regexp.MustCompile(`pe\s*ratio?\s*:?\s*(\d+\.?\d*)`),
	regexp.MustCompile(`price\s*to\s*earnings?\s*:?\s*(\d+\.?\d*)`),
}

// Labeled patterns for the structured metrics reply format the upstream is
// asked to produce ("Current Price: $172.35" and friends).
var (
	labeledCurrentPrice = regexp.MustCompile(`(?i)current price:\s*[$₹]\s*(\d+\.?\d*)`)
	labeledTargetPrice  = regexp.MustCompile(`(?i)target price:\s*[$₹]\s*(\d+\.?\d*)`)
	labeledPERatio      = regexp.MustCompile(`(?i)pe ratio:\s*(\d+\.?\d*)`)
	labeledPriceChange  = regexp.MustCompile(`(?i)price change:\s*([+-]?\d+\.?\d*)%`)
)

// ExtractPrice pulls a stock price from free text. All candidates within
// the plausible band are collected and the maximum is returned: labeled
// price mentions tend to be larger and more specific than incidental
// ratios or percentages that also match a currency-prefixed pattern.
// Known false-positive risk; absence is (0, false), never an error.
func ExtractPrice(text string) (float64, bool) {
	text = strings.ToLower(text)

	best := 0.0
	found := false
	for _, pattern := range pricePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			price, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				continue
			}
			if price < MinPlausiblePrice || price > MaxPlausiblePrice {
				continue
			}
			if price > best {
				best = price
			}
			found = true
		}
	}
	return best, found
}

// ExtractPercentage pulls a percentage change from free text: the first
// signed or unsigned number followed by % that falls within the band.
func ExtractPercentage(text string) (float64, bool) {
	for _, match := range percentagePattern.FindAllString(strings.ToLower(text), -1) {
		value, err := strconv.ParseFloat(strings.TrimSuffix(match, "%"), 64)
		if err != nil {
			continue
		}
		if value >= MinPlausiblePct && value <= MaxPlausiblePct {
			return value, true
		}
	}
	return 0, false
}

// ExtractPERatio pulls a PE ratio from free text using labeled patterns
// only; a bare number never qualifies. First plausible match wins.
func ExtractPERatio(text string) (float64, bool) {
	text = strings.ToLower(text)

	for _, pattern := range peRatioPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			ratio, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				continue
			}
			if ratio > 0 && ratio < MaxPlausiblePE {
				return ratio, true
			}
		}
	}
	return 0, false
}

// ParseMetricsReply parses the structured reply format into StockMetrics.
// Fields without a labeled match stay at the zero sentinel.
func ParseMetricsReply(text string, locale models.MarketLocale) models.StockMetrics {
	metrics := models.StockMetrics{IsIndianMarket: locale == models.LocaleIndian}

	if m := labeledCurrentPrice.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			metrics.CurrentPrice = v
		}
	}
	if m := labeledTargetPrice.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			metrics.TargetPrice = v
		}
	}
	if m := labeledPERatio.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			metrics.PERatio = v
		}
	}
	if m := labeledPriceChange.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			metrics.PriceChangePct = v
		}
	}

	return metrics
}

// FillFromSnippets backfills zero-sentinel fields in metrics from raw
// result snippets using the free-text extractors. A target price is only
// accepted from a snippet that mentions "target" and only when it differs
// from the already-known current price.
func FillFromSnippets(snippets []models.Snippet, metrics *models.StockMetrics) {
	for _, snippet := range snippets {
		content := strings.ToLower(snippet.Content)

		if metrics.CurrentPrice == 0 {
			if price, ok := ExtractPrice(content); ok {
				metrics.CurrentPrice = price
			}
		}

		if metrics.TargetPrice == 0 && strings.Contains(content, "target") {
			if price, ok := ExtractPrice(content); ok && price != metrics.CurrentPrice {
				metrics.TargetPrice = price
			}
		}

		if metrics.PERatio == 0 {
			if ratio, ok := ExtractPERatio(content); ok {
				metrics.PERatio = ratio
			}
		}

		if metrics.PriceChangePct == 0 {
			if pct, ok := ExtractPercentage(content); ok {
				metrics.PriceChangePct = pct
			}
		}
	}
}
