package analyzer

import (
	"strings"

	"github.com/rkapoor/tradeo/internal/models"
)

// indianTickers is a static set of well-known Indian large-cap symbols.
// Membership here short-circuits the suffix and substring heuristics.
var indianTickers = map[string]struct{}{
	"RELIANCE": {}, "TCS": {}, "HDFCBANK": {}, "INFY": {}, "HINDUNILVR": {},
	"ICICIBANK": {}, "ITC": {}, "SBIN": {}, "BHARTIARTL": {}, "KOTAKBANK": {},
	"LT": {}, "ASIANPAINT": {}, "AXISBANK": {}, "MARUTI": {}, "BAJFINANCE": {},
	"HCLTECH": {}, "WIPRO": {}, "ULTRACEMCO": {}, "DMART": {}, "BAJAJFINSV": {},
	"TITAN": {}, "NESTLEIND": {}, "POWERGRID": {}, "TATAMOTORS": {}, "TECHM": {},
	"SUNPHARMA": {}, "JSWSTEEL": {}, "TATASTEEL": {}, "INDUSINDBK": {}, "ADANIENT": {},
	"BPCL": {}, "GRASIM": {}, "COALINDIA": {}, "ONGC": {}, "NTPC": {},
	"DRREDDY": {}, "APOLLOHOSP": {}, "BAJAJ-AUTO": {}, "CIPLA": {}, "EICHERMOT": {},
	"DIVISLAB": {}, "HEROMOTOCO": {}, "BRITANNIA": {}, "SHREECEM": {}, "PIDILITIND": {},
	"GODREJCP": {}, "BERGEPAINT": {}, "DABUR": {}, "AMBUJACEM": {}, "BANDHANBNK": {},
	"MCDOWELL-N": {}, "TATACONSUM": {}, "CHOLAFIN": {}, "GAIL": {}, "SIEMENS": {},
	"DLF": {}, "ZEEL": {}, "VEDL": {}, "CADILAHC": {}, "LUPIN": {},
	"MARICO": {}, "BIOCON": {}, "MUTHOOTFIN": {}, "PAGEIND": {}, "AUROPHARMA": {},
	"TORNTPHARM": {}, "COLPAL": {}, "HDFCLIFE": {}, "SBILIFE": {}, "ICICIPRULI": {},
	"BAJAJHLDNG": {}, "MINDTREE": {}, "MPHASIS": {}, "PERSISTENT": {},
}

// indianMarkers classify index funds and exchange-suffixed listings.
var indianMarkers = []string{".NSE", ".BSE", "NIFTY", "SENSEX"}

// ClassifyMarket decides whether a ticker belongs to the Indian market.
// First match wins: known symbol set, then NSE/BSE listing suffix, then
// index/exchange substring markers; everything else defaults to domestic.
// This is a best-effort heuristic, not authoritative; it only drives the
// currency symbol used in prompts and parsing.
func ClassifyMarket(ticker string) models.MarketLocale {
	t := strings.ToUpper(ticker)

	if _, ok := indianTickers[t]; ok {
		return models.LocaleIndian
	}

	if strings.HasSuffix(t, ".NS") || strings.HasSuffix(t, ".BO") {
		return models.LocaleIndian
	}

	for _, marker := range indianMarkers {
		if strings.Contains(t, marker) {
			return models.LocaleIndian
		}
	}

	return models.LocaleDomestic
}
