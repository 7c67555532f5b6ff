package dto

// SymbolRequest is the input of the market data endpoints, read from the query
// string on GET and from the JSON body on POST.
type SymbolRequest struct {
	Symbol    string `json:"symbol" query:"symbol" example:"AAPL"`
	Timeframe string `json:"timeframe" query:"timeframe" example:"1 week"`
}

// ChatRequest is the input of the chat endpoint.
type ChatRequest struct {
	Message string `json:"message" example:"Predict TSLA stock next week"`
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Time    string `json:"time"`
}
