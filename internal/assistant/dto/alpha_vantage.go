package dto

// AlphaVantageGlobalQuoteResponse is the GLOBAL_QUOTE envelope. Every numeric
// field arrives as a string.
type AlphaVantageGlobalQuoteResponse struct {
	GlobalQuote  AlphaVantageGlobalQuote `json:"Global Quote"`
	Note         string                  `json:"Note"`
	Information  string                  `json:"Information"`
	ErrorMessage string                  `json:"Error Message"`
}

type AlphaVantageGlobalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}
