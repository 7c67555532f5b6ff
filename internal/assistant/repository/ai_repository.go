package repository

import (
	"context"
	"fmt"
	"time"

	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/logger"
)

// aiRepository prompts a TextGenerator and reads its answer with a Parser.
type aiRepository struct {
	generator TextGenerator
	parser    Parser
	logger    *logger.Logger
}

// NewAIRepository creates a new instance of aiRepository.
func NewAIRepository(generator TextGenerator, parser Parser, log *logger.Logger) AIRepository {
	return &aiRepository{
		generator: generator,
		parser:    parser,
		logger:    log,
	}
}

func (r *aiRepository) Name() string { return "ai-" + r.generator.Name() }

// Predict asks the model for a forecast anchored on quote. Missing risk level
// or recommendation are derived from the parsed confidence and price.
func (r *aiRepository) Predict(ctx context.Context, quote *entity.StockQuote, timeframe string) (*entity.Prediction, error) {
	if !quote.Valid() {
		return nil, fmt.Errorf("prediction needs a current price: %w", ErrEmptyPayload)
	}

	raw, err := r.generator.Generate(ctx, BuildPredictionPrompt(quote, timeframe))
	if err != nil {
		return nil, err
	}
	parsed, err := r.parser.ParsePrediction(raw)
	if err != nil {
		r.logger.DebugContext(ctx, "Failed to parse prediction", logger.StringField("symbol", quote.Symbol), logger.StringField("response", raw))
		return nil, err
	}

	p := &entity.Prediction{
		Symbol:         quote.Symbol,
		CurrentPrice:   quote.Price,
		PredictedPrice: parsed.PredictedPrice,
		Confidence:     entity.NormalizeConfidence(parsed.Confidence),
		Timeframe:      timeframe,
		Reasoning:      parsed.Reasoning,
		RiskLevel:      entity.RiskLevel(parsed.RiskLevel),
		Recommendation: entity.Recommendation(parsed.Recommendation),
		Source:         r.Name(),
		GeneratedAt:    time.Now(),
	}
	switch p.RiskLevel {
	case entity.RiskLow, entity.RiskMedium, entity.RiskHigh:
	default:
		p.RiskLevel = entity.RiskLevelFromConfidence(p.ConfidencePercent())
	}
	switch p.Recommendation {
	case entity.RecommendationBuy, entity.RecommendationSell, entity.RecommendationHold:
	default:
		p.Recommendation = entity.RecommendationFor(p.CurrentPrice, p.PredictedPrice)
	}
	return p, nil
}

// AnalyzeTechnical asks the model to comment on snapshot.
func (r *aiRepository) AnalyzeTechnical(ctx context.Context, snapshot *entity.TechnicalSnapshot) (*entity.AICommentary, error) {
	raw, err := r.generator.Generate(ctx, BuildTechnicalAnalysisPrompt(snapshot))
	if err != nil {
		return nil, err
	}
	commentary, err := r.parser.ParseAnalysis(raw)
	if err != nil {
		r.logger.DebugContext(ctx, "Failed to parse analysis", logger.StringField("symbol", snapshot.Symbol), logger.StringField("response", raw))
		return nil, err
	}
	return commentary, nil
}
