package service

import (
	"context"
	"fmt"
	"time"

	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/pkg/logger"

	"github.com/robfig/cron/v3"
)

// WarmerService periodically resolves general market news and the watchlist
// quotes so the caches are hot when users ask.
type WarmerService interface {
	Start(ctx context.Context) error
	Warm(ctx context.Context)
}

// NewWarmerService creates a new cache warmer.
func NewWarmerService(cfg config.Warmer, aggregator AggregatorService, log *logger.Logger) WarmerService {
	return &warmerService{
		cfg:        cfg,
		aggregator: aggregator,
		logger:     log,
		cronParser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
	}
}

type warmerService struct {
	cfg        config.Warmer
	aggregator AggregatorService
	logger     *logger.Logger
	cronParser cron.Parser
}

// Start schedules Warm on cfg.Schedule and blocks until ctx is done.
func (s *warmerService) Start(ctx context.Context) error {
	schedule, err := s.cronParser.Parse(s.cfg.Schedule)
	if err != nil {
		return fmt.Errorf("invalid warmer schedule %q: %w", s.cfg.Schedule, err)
	}

	c := cron.New(cron.WithParser(s.cronParser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	c.Schedule(schedule, cron.FuncJob(func() { s.Warm(ctx) }))
	c.Start()
	s.logger.Info("Cache warmer started",
		logger.StringField("schedule", s.cfg.Schedule),
		logger.IntField("watchlist", len(s.cfg.Watchlist)),
	)

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("Cache warmer stopped")
	return nil
}

// Warm resolves general news and every watchlist quote once.
func (s *warmerService) Warm(ctx context.Context) {
	start := time.Now()

	news := s.aggregator.GetNews(ctx, "")
	for _, sym := range s.cfg.Watchlist {
		if ctx.Err() != nil {
			return
		}
		s.aggregator.GetQuote(ctx, sym)
	}

	s.logger.Info("Cache warmed",
		logger.IntField("news", len(news)),
		logger.IntField("symbols", len(s.cfg.Watchlist)),
		logger.DurationField("elapsed", time.Since(start)),
	)
}
