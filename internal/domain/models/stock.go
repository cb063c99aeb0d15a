package models

import "time"

// StockQuote is one tracked symbol's snapshot from the quote provider.
type StockQuote struct {
	Symbol           string    `json:"symbol"`
	CompanyName      string    `json:"company_name"`
	Open             float64   `json:"open"`
	High             float64   `json:"high"`
	Low              float64   `json:"low"`
	Price            float64   `json:"price"`
	Volume           int64     `json:"volume"`
	LatestTradingDay string    `json:"latest_trading_day"`
	PreviousClose    float64   `json:"previous_close"`
	Change           float64   `json:"change"`
	ChangePercent    float64   `json:"change_percent"`
	Volatility       float64   `json:"volatility"` // |change/prev_close| * 100
	RiskRating       Severity  `json:"risk_rating"`
	FetchedAt        time.Time `json:"fetched_at"`
}
