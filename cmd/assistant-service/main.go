package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang-stock-assistant/internal/assistant/config"
	delivery "golang-stock-assistant/internal/assistant/delivery/http"
	bot "golang-stock-assistant/internal/assistant/delivery/telegram"
	_ "golang-stock-assistant/internal/assistant/docs"
	"golang-stock-assistant/internal/assistant/mock"
	"golang-stock-assistant/internal/assistant/repository"
	"golang-stock-assistant/internal/assistant/service"
	"golang-stock-assistant/pkg/logger"
	"golang-stock-assistant/pkg/redis"
	"golang-stock-assistant/pkg/telegram"

	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the stock assistant service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Stock Assistant Service", logger.Field("name", cfg.App.Name))

	// Initialize caches
	quoteCache := service.NewMemoryQuoteCache(cfg.Cache.QuoteTTL)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Warn("Redis unavailable, using in-memory quote cache", logger.ErrorField(err))
		} else {
			defer redisClient.Close()
			quoteCache = service.NewRedisQuoteCache(redisClient.Client, cfg.Cache.QuoteTTL, appLogger)
		}
	}
	newsCache := service.NewMemoryNewsCache(cfg.Cache.NewsTTL)

	// Initialize repositories
	yahooQuoteRepo := repository.NewYahooQuoteRepository(cfg.YahooFinance, appLogger)
	yahooChartRepo := repository.NewYahooChartRepository(cfg.YahooFinance, appLogger)
	alphaVantageRepo := repository.NewAlphaVantageRepository(cfg.AlphaVantage, appLogger)
	newsAPIRepo := repository.NewNewsAPIRepository(cfg.NewsAPI, appLogger)
	googleNewsRepo := repository.NewGoogleNewsRepository(cfg.GoogleNews, appLogger)
	aggregatorRepo := repository.NewAggregatorRepository(cfg.Aggregator, appLogger)

	generator, err := newTextGenerator(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize AI provider", logger.ErrorField(err))
	}
	parser, err := repository.NewParser(cfg.AI.Parser)
	if err != nil {
		appLogger.Fatal("Failed to initialize AI parser", logger.ErrorField(err))
	}
	aiRepo := repository.NewAIRepository(generator, parser, appLogger)

	// Initialize services
	synthesizer := mock.NewDefault()
	aggregatorSvc := service.NewAggregatorService(cfg.Cascade, service.AggregatorDeps{
		Quotes:     []repository.QuoteRepository{yahooQuoteRepo, yahooChartRepo, alphaVantageRepo},
		History:    yahooChartRepo,
		AI:         aiRepo,
		News:       []repository.NewsRepository{newsAPIRepo, googleNewsRepo},
		Mock:       synthesizer,
		QuoteCache: quoteCache,
		NewsCache:  newsCache,
	}, appLogger)
	resolverSvc := service.NewResolverService(cfg.Cascade, service.ResolverDeps{
		PrimaryQuote:   yahooQuoteRepo,
		SecondaryQuote: yahooChartRepo,
		QuoteAPI:       alphaVantageRepo,
		History:        yahooChartRepo,
		Aggregator:     aggregatorRepo,
		AI:             aiRepo,
		News:           newsAPIRepo,
		Mock:           synthesizer,
		QuoteCache:     quoteCache,
		NewsCache:      newsCache,
	}, appLogger)
	assistantSvc := service.NewAssistantService(resolverSvc, appLogger)

	// Start cache warmer
	if cfg.Warmer.Enabled {
		warmerSvc := service.NewWarmerService(cfg.Warmer, aggregatorSvc, appLogger)
		go func() {
			if err := warmerSvc.Start(ctx); err != nil {
				appLogger.Error("Cache warmer failed to start", logger.ErrorField(err))
			}
		}()
	}

	// Start Telegram bot
	if cfg.Telegram.Enabled {
		tgClient, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.Debug)
		if err != nil {
			appLogger.Error("Failed to initialize Telegram bot", logger.ErrorField(err))
		} else {
			go bot.NewBotHandler(tgClient, assistantSvc, appLogger).Start(ctx)
		}
	}

	// Initialize Echo server
	e := delivery.NewServer(appLogger)

	// Initialize handlers and routes
	delivery.NewHealthHandler(cfg.App.Name, cfg.App.Version).RegisterRoutes(e)
	apiV1 := e.Group("/api/v1")
	delivery.NewMarketHandler(aggregatorSvc, appLogger).RegisterRoutes(apiV1)
	delivery.NewChatHandler(assistantSvc, appLogger).RegisterRoutes(apiV1)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func newTextGenerator(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.TextGenerator, error) {
	switch strings.ToLower(cfg.AI.Provider) {
	case "", "gemini":
		client, err := repository.NewGenAIClient(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		return repository.NewGeminiTextGenerator(cfg.Gemini, log, client), nil
	case "openai":
		return repository.NewOpenAITextGenerator(cfg.OpenAI, log), nil
	case "replicate":
		return repository.NewReplicateTextGenerator(cfg.Replicate, log), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}
}

// @title Stock Assistant API
// @version 1.0
// @description Market data and chat endpoints of the stock assistant.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "assistant-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-assistant.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing assistant-service CLI: %s\n", err)
		os.Exit(1)
	}
}
