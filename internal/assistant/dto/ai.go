package dto

// OpenAIRequest is the chat completion request payload.
type OpenAIRequest struct {
	Model    string          `json:"model"`
	Messages []OpenAIMessage `json:"messages"`
}

type OpenAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIResponse is the chat completion response payload.
type OpenAIResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int           `json:"index"`
		Message      OpenAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ReplicatePredictionRequest submits a prompt to a hosted model.
type ReplicatePredictionRequest struct {
	Input ReplicateInput `json:"input"`
}

type ReplicateInput struct {
	Prompt       string  `json:"prompt"`
	MaxNewTokens int     `json:"max_new_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
}

// ReplicatePrediction is the state of a submitted prediction. Output is either
// a string or a list of string chunks depending on the model.
type ReplicatePrediction struct {
	ID     string      `json:"id"`
	Status string      `json:"status"`
	Output interface{} `json:"output"`
	Error  interface{} `json:"error"`
	URLs   struct {
		Get    string `json:"get"`
		Cancel string `json:"cancel"`
	} `json:"urls"`
}

// PredictionAIResult is the JSON object the prediction prompt asks the model for.
type PredictionAIResult struct {
	PredictedPrice float64 `json:"predicted_price"`
	Confidence     float64 `json:"confidence"`
	Reasoning      string  `json:"reasoning"`
	RiskLevel      string  `json:"risk_level"`
	Recommendation string  `json:"recommendation"`
}

// AnalysisAIResult is the JSON object the technical analysis prompt asks the model for.
type AnalysisAIResult struct {
	Sentiment      string   `json:"sentiment"`
	KeyFactors     []string `json:"key_factors"`
	MarketOutlook  string   `json:"market_outlook"`
	RiskAssessment string   `json:"risk_assessment"`
	Recommendation string   `json:"recommendation"`
}
