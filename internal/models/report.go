package models

import "time"

// SentimentReport is the rendered investment-sentiment report for a ticker.
type SentimentReport struct {
	ID                string          `json:"id"`
	Ticker            string          `json:"ticker"`
	Markdown          string          `json:"markdown"`
	Metrics           StockMetrics    `json:"metrics"`
	PricePotentialPct float64         `json:"price_potential_percent"`
	NewsSummary       string          `json:"news_summary"`
	References        []NewsReference `json:"references"`
	Degraded          bool            `json:"degraded"` // market data unavailable, news-only narrative
	GeneratedAt       time.Time       `json:"generated_at"`
}
