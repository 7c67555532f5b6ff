package entity

import "time"

// StockQuote is a point-in-time quote for one symbol. Fields coming from
// different providers are not guaranteed to be arithmetically consistent
// (Change is not necessarily Price-PreviousClose).
type StockQuote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Volume        int64     `json:"volume"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Open          float64   `json:"open"`
	PreviousClose float64   `json:"previousClose"`
	MarketCap     *float64  `json:"marketCap,omitempty"`
	PE            *float64  `json:"pe,omitempty"`
	EPS           *float64  `json:"eps,omitempty"`
	Dividend      *float64  `json:"dividend,omitempty"`
	Yield         *float64  `json:"yield,omitempty"`
	Currency      string    `json:"currency"`
	Source        string    `json:"source,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Valid reports whether the quote carries a usable price.
func (q *StockQuote) Valid() bool {
	return q != nil && q.Symbol != "" && q.Price > 0
}
