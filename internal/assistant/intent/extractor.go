// Package intent classifies free-text chat messages.
package intent

import (
	"regexp"
	"strings"
	"unicode"

	"golang-stock-assistant/internal/entity"
)

const DefaultTimeframe = "1 week"

// Classification is the result of classifying one chat message. Symbol is
// empty when no ticker could be extracted.
type Classification struct {
	Intent    entity.Intent `json:"intent"`
	Symbol    string        `json:"symbol,omitempty"`
	Timeframe string        `json:"timeframe"`
}

var tickerPattern = regexp.MustCompile(`\b[A-Z]{1,5}(?:\.[A-Z]{1,3})?\b`)

// stopwords are uppercase tokens that look like tickers but never are.
var stopwords = map[string]struct{}{
	"I": {}, "A": {}, "AI": {}, "AM": {}, "PM": {}, "OK": {}, "US": {}, "USA": {},
	"CEO": {}, "CFO": {}, "USD": {}, "IDR": {}, "EUR": {}, "IPO": {}, "ETF": {},
	"RSI": {}, "MACD": {}, "SMA": {}, "EMA": {}, "EPS": {}, "PE": {}, "NEWS": {},
	"WHAT": {}, "HOW": {}, "IS": {}, "THE": {}, "FOR": {}, "ME": {}, "MY": {},
	"PLEASE": {}, "PRICE": {}, "STOCK": {},
}

type company struct {
	name   string
	ticker string
}

// companies is searched in order; the first name contained in the message wins.
var companies = []company{
	{"apple", "AAPL"},
	{"alphabet", "GOOGL"},
	{"google", "GOOGL"},
	{"microsoft", "MSFT"},
	{"tesla", "TSLA"},
	{"amazon", "AMZN"},
	{"nvidia", "NVDA"},
	{"facebook", "META"},
	{"meta", "META"},
	{"netflix", "NFLX"},
	{"bank central asia", "BBCA"},
	{"bank rakyat indonesia", "BBRI"},
	{"bank mandiri", "BMRI"},
	{"telkom", "TLKM"},
}

// keywordGroup matches keywords anywhere in the message and words (short
// acronyms) only as whole words.
type keywordGroup struct {
	intent   entity.Intent
	keywords []string
	words    []string
}

// intentPriority is evaluated top to bottom; a message with several kinds of
// keyword takes the first matching group.
var intentPriority = []keywordGroup{
	{entity.IntentPrediction, []string{"predict", "forecast", "prediction", "outlook"}, nil},
	{entity.IntentNews, []string{"news", "headline", "article"}, nil},
	{entity.IntentTechnical, []string{"technical", "analysis", "analyze", "indicator", "support", "resistance"}, []string{"rsi", "macd"}},
	{entity.IntentPrice, []string{"price", "stock", "current", "quote", "trading at"}, nil},
}

var timeframes = []struct {
	keyword string
	label   string
}{
	{"tomorrow", "1 day"},
	{"week", "1 week"},
	{"month", "1 month"},
	{"year", "1 year"},
	{"day", "1 day"},
}

// Classify extracts intent, ticker and timeframe from message. Without a ticker
// the intent is none, except for news which is answered with general market news.
func Classify(message string) Classification {
	lower := strings.ToLower(message)
	sym := ExtractSymbol(message)
	kind := matchIntent(lower)

	result := Classification{
		Intent:    kind,
		Symbol:    sym,
		Timeframe: InferTimeframe(message),
	}
	if sym == "" && kind != entity.IntentNews {
		result.Intent = entity.IntentNone
	}
	return result
}

// ExtractSymbol returns the first ticker-looking token of message, falling back
// to the company name lookup. It returns "" when nothing matches.
func ExtractSymbol(message string) string {
	for _, token := range tickerPattern.FindAllString(message, -1) {
		if _, skip := stopwords[token]; skip {
			continue
		}
		return token
	}

	lower := strings.ToLower(message)
	for _, c := range companies {
		if strings.Contains(lower, c.name) {
			return c.ticker
		}
	}
	return ""
}

// InferTimeframe maps time words in message to a timeframe label.
func InferTimeframe(message string) string {
	lower := strings.ToLower(message)
	for _, tf := range timeframes {
		if strings.Contains(lower, tf.keyword) {
			return tf.label
		}
	}
	return DefaultTimeframe
}

func matchIntent(lower string) entity.Intent {
	words := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		words[w] = struct{}{}
	}

	for _, group := range intentPriority {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.intent
			}
		}
		for _, w := range group.words {
			if _, ok := words[w]; ok {
				return group.intent
			}
		}
	}
	return entity.IntentNone
}
