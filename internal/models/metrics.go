// Package models defines data structures for Tradeo
package models

// MarketLocale classifies a ticker's home market for currency handling.
type MarketLocale string

const (
	LocaleDomestic MarketLocale = "domestic"
	LocaleIndian   MarketLocale = "indian"
)

// CurrencySymbol returns the display symbol for the locale.
func (l MarketLocale) CurrencySymbol() string {
	if l == LocaleIndian {
		return "₹"
	}
	return "$"
}

// CurrencyName returns the ISO-style currency name for the locale.
func (l MarketLocale) CurrencyName() string {
	if l == LocaleIndian {
		return "INR"
	}
	return "USD"
}

// StockMetrics holds the numeric fields extracted from upstream text.
// A value of exactly 0 means "not found"; zero is the absence sentinel,
// never a genuine measurement.
type StockMetrics struct {
	CurrentPrice   float64 `json:"current_price"`
	TargetPrice    float64 `json:"target_price"`
	PERatio        float64 `json:"pe_ratio"`
	PriceChangePct float64 `json:"price_change_percent"`
	IsIndianMarket bool    `json:"is_indian_market"`
}

// HasPrice reports whether a current price was found.
func (m StockMetrics) HasPrice() bool {
	return m.CurrentPrice > 0
}

// Locale returns the market locale implied by the metrics.
func (m StockMetrics) Locale() MarketLocale {
	if m.IsIndianMarket {
		return LocaleIndian
	}
	return LocaleDomestic
}

// NewsItem is a raw news/search record as received from the news source.
type NewsItem struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// NewsReference is a numbered citation emitted by the news summarizer.
// Index is 1-based and matches the citation numbers in the generated report.
type NewsReference struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Snippet is one raw result text kept alongside extracted metrics so the
// report layer can re-inspect the source material.
type Snippet struct {
	Content string `json:"content"`
	URL     string `json:"url"`
}

// AnalysisResult is what the analyzer returns for a ticker.
type AnalysisResult struct {
	Ticker    string       `json:"ticker"`
	Metrics   StockMetrics `json:"metrics"`
	Snippets  []Snippet    `json:"snippets,omitempty"`
	FromCache bool         `json:"from_cache"`
}
