package report

import (
	"fmt"
	"strings"

	"github.com/rkapoor/tradeo/internal/models"
)

// FormatCurrency renders a metric amount with its currency symbol.
// Zero is the absence sentinel and renders as "N/A"; large amounts get
// K/M suffixes.
func FormatCurrency(amount float64, symbol string) string {
	if amount == 0 {
		return "N/A"
	}
	switch {
	case amount >= 1000000:
		return fmt.Sprintf("%s%.2fM", symbol, amount/1000000)
	case amount >= 1000:
		return fmt.Sprintf("%s%.2fK", symbol, amount/1000)
	default:
		return fmt.Sprintf("%s%.2f", symbol, amount)
	}
}

// PricePotential returns the upside from current to target price as a
// percentage, or 0 when either price is missing.
func PricePotential(m models.StockMetrics) float64 {
	if m.CurrentPrice == 0 || m.TargetPrice == 0 {
		return 0
	}
	return (m.TargetPrice - m.CurrentPrice) / m.CurrentPrice * 100
}

// buildDetailedPrompt creates the full analysis prompt when market data
// is available.
func buildDetailedPrompt(ticker, date string, metrics models.StockMetrics, newsSummary string, potential float64) string {
	symbol := metrics.Locale().CurrencySymbol()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Provide a comprehensive investment analysis for %s stock as of %s.\n\n", ticker, date))
	sb.WriteString("**Market Data Available:**\n")
	sb.WriteString(fmt.Sprintf("- Current Price: %s\n", FormatCurrency(metrics.CurrentPrice, symbol)))
	sb.WriteString(fmt.Sprintf("- Target Price: %s\n", FormatCurrency(metrics.TargetPrice, symbol)))
	sb.WriteString(fmt.Sprintf("- PE Ratio: %.2f\n", metrics.PERatio))
	sb.WriteString(fmt.Sprintf("- Recent Price Change: %.2f%%\n", metrics.PriceChangePct))
	sb.WriteString(fmt.Sprintf("- Potential Upside: %.2f%%\n\n", potential))
	sb.WriteString("**Recent News Summary:**\n")
	sb.WriteString(newsSummary)
	sb.WriteString(`
Format your response using proper markdown with this structure:

## 📊 Market Sentiment Analysis
**Sentiment:** [Bullish/Bearish/Neutral]
**Investor Confidence:** [High/Medium/Low]
**Key Insight:** [Brief explanation with any relevant citation]

## 📈 Recent Developments
- **Earnings & Financial Results:** [Latest earnings info with citation]
- **Major Announcements:** [Key company developments with citation]
- **Industry Trends:** [Relevant sector trends with citation]

## 🔍 Technical Analysis
- **Price Trend:** [Current trend analysis with citation]
- **Support/Resistance:** [Key price levels with citation]

## ⚠️ Risk Assessment
**Market Risks:** [Key market-wide risks]
**Company Risks:** [Specific company risks]
**Industry Risks:** [Sector-specific risks]

## 🎯 Investment Recommendation
**Rating:** **[BUY/SELL/HOLD]**
**Confidence:** [High/Medium/Low]
**Entry Range:** [current price ± 5%]
**Stop Loss:** [Specific price]
**Target Price:** [Specific price]
**Timeframe:** [Short/Medium/Long-term]

## 💡 Key Investment Thesis
1. **[Primary reason with citation]**
2. **[Secondary reason with citation]**
3. **[Third reason with citation]**

Use citations like [1], [2], [3] that match the numbered news references above.`)

	return sb.String()
}

// buildFallbackPrompt creates the news-only prompt used when market data
// could not be fetched.
func buildFallbackPrompt(ticker, date, newsSummary string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Provide an investment analysis for %s as of %s.\n\n", ticker, date))
	sb.WriteString("**Note:** Market data unavailable. Analysis based on news and developments only.\n\n")
	sb.WriteString("**Available Information:**\n")
	sb.WriteString(newsSummary)
	sb.WriteString(`
Format your response using proper markdown:

## 📊 Market Sentiment Analysis
**Sentiment:** [Bullish/Bearish/Neutral]
**Investor Confidence:** [High/Medium/Low]
**Key Insight:** [Brief explanation with citation]

## 📈 Recent Developments
- **Major News:** [Key developments with citation]
- **Industry Trends:** [Relevant trends with citation]
- **Market Factors:** [Affecting factors with citation]

## 🎯 General Outlook
**Overall Sentiment:** **[Positive/Negative/Neutral]**
**Key Considerations:** [Main points with citation]
**Suggested Approach:** [Recommended strategy with citation]

**Disclaimer:** Analysis based on limited data. Verify current market prices before investing.

Use citations like [1], [2], [3] that match the numbered news references above.`)

	return sb.String()
}
