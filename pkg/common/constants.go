package common

const (
	RedisKeyLastPrice = "last_price:%s"

	DomainPrice      = "price"
	DomainPrediction = "prediction"
	DomainTechnical  = "technical-analysis"
	DomainNews       = "news"

	// GeneralNewsKey is the cache key used for market news requested without a symbol.
	GeneralNewsKey = "__market__"
)
