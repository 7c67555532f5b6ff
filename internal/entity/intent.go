package entity

// Intent is the classified purpose of a chat message.
type Intent string

const (
	IntentPrice      Intent = "price"
	IntentPrediction Intent = "prediction"
	IntentTechnical  Intent = "technical-analysis"
	IntentNews       Intent = "news"
	IntentNone       Intent = "none"
)
