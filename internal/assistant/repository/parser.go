package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang-stock-assistant/internal/assistant/dto"
	"golang-stock-assistant/internal/entity"
)

// ErrParseFailed is returned when model output cannot be read into the
// expected fields.
var ErrParseFailed = errors.New("failed to parse model output")

const (
	ParserJSON  = "json"
	ParserRegex = "regex"
	ParserAuto  = "auto"
)

// Parser extracts structured fields from raw model output.
type Parser interface {
	ParsePrediction(text string) (*dto.PredictionAIResult, error)
	ParseAnalysis(text string) (*entity.AICommentary, error)
}

// NewParser returns the parser for strategy: json, regex or auto (json, then regex).
func NewParser(strategy string) (Parser, error) {
	switch strings.ToLower(strategy) {
	case ParserJSON:
		return jsonParser{}, nil
	case ParserRegex:
		return regexParser{}, nil
	case ParserAuto, "":
		return autoParser{parsers: []Parser{jsonParser{}, regexParser{}}}, nil
	default:
		return nil, fmt.Errorf("unknown parser strategy %q", strategy)
	}
}

type jsonParser struct{}

func (jsonParser) ParsePrediction(text string) (*dto.PredictionAIResult, error) {
	var result dto.PredictionAIResult
	if err := unmarshalModelJSON(text, &result); err != nil {
		return nil, err
	}
	if result.PredictedPrice <= 0 {
		return nil, fmt.Errorf("%w: missing predicted_price", ErrParseFailed)
	}
	return &result, nil
}

func (jsonParser) ParseAnalysis(text string) (*entity.AICommentary, error) {
	var result dto.AnalysisAIResult
	if err := unmarshalModelJSON(text, &result); err != nil {
		return nil, err
	}
	if result.Sentiment == "" && result.MarketOutlook == "" {
		return nil, fmt.Errorf("%w: missing sentiment and market_outlook", ErrParseFailed)
	}
	return &entity.AICommentary{
		Sentiment:      strings.ToLower(result.Sentiment),
		KeyFactors:     result.KeyFactors,
		MarketOutlook:  result.MarketOutlook,
		RiskAssessment: result.RiskAssessment,
		Recommendation: result.Recommendation,
	}, nil
}

// unmarshalModelJSON strips markdown fences and any prose around the outermost
// JSON object before decoding.
func unmarshalModelJSON(text string, v interface{}) error {
	raw := strings.Trim(strings.TrimSpace(text), "`json\n`")
	start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("%w: no JSON object found", ErrParseFailed)
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), v); err != nil {
		return fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	return nil
}

var (
	rePredictedPrice = regexp.MustCompile(`(?i)(?:predicted|target)\s*price[\s:*\-]*(?:USD|IDR|Rp\.?|\$)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)
	reConfidence     = regexp.MustCompile(`(?i)confidence(?:\s*(?:level|score))?[\s:*\-]*([0-9]+(?:\.[0-9]+)?)\s*(%?)`)
	reReasoning      = regexp.MustCompile(`(?im)reasoning[\s:*\-]*(.+)$`)
	reRiskLevel      = regexp.MustCompile(`(?i)risk(?:\s*level)?[\s:*\-]*(low|medium|high)`)
	reRecommendation = regexp.MustCompile(`(?i)recommendation[\s:*\-]*(buy|sell|hold)`)

	reSentiment      = regexp.MustCompile(`(?i)sentiment[\s:*\-]*(bullish|bearish|neutral|positive|negative)`)
	reKeyFactors     = regexp.MustCompile(`(?is)key\s*factors?[ \t:*]*\n(.*?)(?:\n\s*\n|$)`)
	reOutlook        = regexp.MustCompile(`(?im)^[\W]*(?:market\s*)?outlook[\s:*\-]*(.+)$`)
	reRiskAssessment = regexp.MustCompile(`(?im)^[\W]*risk\s*assessment[\s:*\-]*(.+)$`)
	reAdvice         = regexp.MustCompile(`(?im)^[\W]*recommendation[\s:*\-]*(.+)$`)
	reBullet         = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*`)
)

// regexParser reads labelled fields out of free-form model prose.
type regexParser struct{}

func (regexParser) ParsePrediction(text string) (*dto.PredictionAIResult, error) {
	m := rePredictedPrice.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("%w: no predicted price", ErrParseFailed)
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || price <= 0 {
		return nil, fmt.Errorf("%w: invalid predicted price %q", ErrParseFailed, m[1])
	}

	result := &dto.PredictionAIResult{PredictedPrice: price}
	if c := reConfidence.FindStringSubmatch(text); c != nil {
		result.Confidence, _ = strconv.ParseFloat(c[1], 64)
		if c[2] == "%" {
			result.Confidence /= 100
		}
	}
	if r := reReasoning.FindStringSubmatch(text); r != nil {
		result.Reasoning = cleanLine(r[1])
	}
	if r := reRiskLevel.FindStringSubmatch(text); r != nil {
		result.RiskLevel = strings.ToLower(r[1])
	}
	if r := reRecommendation.FindStringSubmatch(text); r != nil {
		result.Recommendation = strings.ToLower(r[1])
	}
	return result, nil
}

func (regexParser) ParseAnalysis(text string) (*entity.AICommentary, error) {
	c := &entity.AICommentary{}
	if m := reSentiment.FindStringSubmatch(text); m != nil {
		c.Sentiment = strings.ToLower(m[1])
	}
	if m := reOutlook.FindStringSubmatch(text); m != nil {
		c.MarketOutlook = cleanLine(m[1])
	}
	if c.Sentiment == "" && c.MarketOutlook == "" {
		return nil, fmt.Errorf("%w: no sentiment or outlook", ErrParseFailed)
	}
	if m := reRiskAssessment.FindStringSubmatch(text); m != nil {
		c.RiskAssessment = cleanLine(m[1])
	}
	if m := reAdvice.FindStringSubmatch(text); m != nil {
		c.Recommendation = cleanLine(m[1])
	}
	if m := reKeyFactors.FindStringSubmatch(text); m != nil {
		for _, line := range strings.Split(m[1], "\n") {
			if !reBullet.MatchString(line) {
				continue
			}
			if f := cleanLine(reBullet.ReplaceAllString(line, "")); f != "" {
				c.KeyFactors = append(c.KeyFactors, f)
			}
		}
	}
	return c, nil
}

func cleanLine(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*_\""))
}

// autoParser returns the first successful parse of its parsers.
type autoParser struct {
	parsers []Parser
}

func (a autoParser) ParsePrediction(text string) (*dto.PredictionAIResult, error) {
	var errs []error
	for _, p := range a.parsers {
		result, err := p.ParsePrediction(text)
		if err == nil {
			return result, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

func (a autoParser) ParseAnalysis(text string) (*entity.AICommentary, error) {
	var errs []error
	for _, p := range a.parsers {
		result, err := p.ParseAnalysis(text)
		if err == nil {
			return result, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}
