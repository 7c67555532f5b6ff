package http

import (
	"net/http"
	"strings"

	"golang-stock-assistant/internal/assistant/dto"
	"golang-stock-assistant/internal/assistant/service"
	"golang-stock-assistant/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MarketHandler serves the four market data endpoints.
type MarketHandler struct {
	aggregator service.AggregatorService
	logger     *logger.Logger
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(aggregator service.AggregatorService, logger *logger.Logger) *MarketHandler {
	return &MarketHandler{aggregator: aggregator, logger: logger}
}

// RegisterRoutes registers the market data routes to the Echo group. Every
// route accepts GET with query parameters and POST with a JSON body.
func (h *MarketHandler) RegisterRoutes(g *echo.Group) {
	for path, handler := range map[string]echo.HandlerFunc{
		"/stock-price":        h.GetStockPrice,
		"/ai-prediction":      h.GetPrediction,
		"/technical-analysis": h.GetTechnicalAnalysis,
		"/market-news":        h.GetMarketNews,
	} {
		g.GET(path, handler)
		g.POST(path, handler)
	}
}

// GetStockPrice godoc
// @Summary Get a stock quote
// @Description Live quote from the first provider that answers, synthesized when none does
// @Tags market
// @Produce  json
// @Param   symbol  query    string true    "Ticker symbol" example(AAPL)
// @Success 200 {object} entity.StockQuote
// @Failure 400 {object} dto.ErrorResponse
// @Router /stock-price [get]
func (h *MarketHandler) GetStockPrice(c echo.Context) error {
	req, err := bindSymbolRequest(c, true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.aggregator.GetQuote(c.Request().Context(), req.Symbol))
}

// GetPrediction godoc
// @Summary Get an AI price prediction
// @Description Model forecast anchored on the live quote, synthesized when no model answers
// @Tags market
// @Produce  json
// @Param   symbol     query    string true     "Ticker symbol" example(TSLA)
// @Param   timeframe  query    string false    "Forecast horizon" example(1 week)
// @Success 200 {object} entity.Prediction
// @Failure 400 {object} dto.ErrorResponse
// @Router /ai-prediction [get]
func (h *MarketHandler) GetPrediction(c echo.Context) error {
	req, err := bindSymbolRequest(c, true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.aggregator.GetPrediction(c.Request().Context(), req.Symbol, req.Timeframe))
}

// GetTechnicalAnalysis godoc
// @Summary Get a technical analysis snapshot
// @Description RSI, MACD, moving averages and support/resistance with optional AI commentary
// @Tags market
// @Produce  json
// @Param   symbol  query    string true    "Ticker symbol" example(BBCA)
// @Success 200 {object} entity.TechnicalSnapshot
// @Failure 400 {object} dto.ErrorResponse
// @Router /technical-analysis [get]
func (h *MarketHandler) GetTechnicalAnalysis(c echo.Context) error {
	req, err := bindSymbolRequest(c, true)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.aggregator.GetTechnical(c.Request().Context(), req.Symbol))
}

// GetMarketNews godoc
// @Summary Get market news
// @Description Headlines for a symbol, or general market news when symbol is omitted
// @Tags market
// @Produce  json
// @Param   symbol  query    string false    "Ticker symbol" example(AAPL)
// @Success 200 {array} entity.NewsItem
// @Failure 400 {object} dto.ErrorResponse
// @Router /market-news [get]
func (h *MarketHandler) GetMarketNews(c echo.Context) error {
	req, err := bindSymbolRequest(c, false)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.aggregator.GetNews(c.Request().Context(), req.Symbol))
}

func bindSymbolRequest(c echo.Context, requireSymbol bool) (dto.SymbolRequest, error) {
	var req dto.SymbolRequest
	if err := c.Bind(&req); err != nil {
		return req, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	req.Symbol = strings.TrimSpace(req.Symbol)
	req.Timeframe = strings.TrimSpace(req.Timeframe)
	if requireSymbol && req.Symbol == "" {
		return req, echo.NewHTTPError(http.StatusBadRequest, "symbol is required")
	}
	return req, nil
}
