// Package cascade resolves a value by trying an ordered list of providers.
package cascade

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-stock-assistant/pkg/logger"
	"golang-stock-assistant/pkg/utils"
)

// ErrInvalidResult is recorded when a provider returns without error but with
// a structurally empty value.
var ErrInvalidResult = errors.New("provider returned an empty or invalid result")

// Request is the input of a single provider attempt.
type Request struct {
	Symbol    string
	Timeframe string
}

// Provider fetches one value of type T from a single upstream.
type Provider[T any] interface {
	Name() string
	Fetch(ctx context.Context, req Request) (T, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc[T any] struct {
	ProviderName string
	Fn           func(ctx context.Context, req Request) (T, error)
}

func (p ProviderFunc[T]) Name() string { return p.ProviderName }

func (p ProviderFunc[T]) Fetch(ctx context.Context, req Request) (T, error) {
	return p.Fn(ctx, req)
}

// Cascade tries its providers in order and returns the first valid result.
type Cascade[T any] struct {
	domain    string
	providers []Provider[T]
	timeout   time.Duration
	valid     func(T) bool
	logger    *logger.Logger
}

// New creates a cascade for domain. valid decides whether a result is usable;
// a non-positive timeout leaves attempts bounded only by the caller's context.
func New[T any](domain string, providers []Provider[T], timeout time.Duration, valid func(T) bool, log *logger.Logger) *Cascade[T] {
	if log == nil {
		log = logger.NewNop()
	}
	return &Cascade[T]{
		domain:    domain,
		providers: providers,
		timeout:   timeout,
		valid:     valid,
		logger:    log,
	}
}

// Domain returns the data domain this cascade resolves.
func (c *Cascade[T]) Domain() string {
	return c.domain
}

// Resolve tries every provider for each candidate symbol, candidates in the
// outer loop, and returns the first valid result. Errors, timeouts, panics and
// invalid results move on to the next attempt. ok is false when every attempt
// failed or ctx was cancelled.
func (c *Cascade[T]) Resolve(ctx context.Context, timeframe string, candidates ...string) (result T, ok bool) {
	for _, candidate := range candidates {
		req := Request{Symbol: candidate, Timeframe: timeframe}
		for _, p := range c.providers {
			if ctx.Err() != nil {
				c.logger.WarnContext(ctx, "Cascade abandoned",
					logger.StringField("domain", c.domain),
					logger.StringField("symbol", candidate),
					logger.ErrorField(ctx.Err()),
				)
				return result, false
			}

			value, err := c.attempt(ctx, p, req)
			if err != nil {
				c.logger.WarnContext(ctx, "Provider failed",
					logger.StringField("domain", c.domain),
					logger.StringField("provider", p.Name()),
					logger.StringField("symbol", candidate),
					logger.ErrorField(err),
				)
				continue
			}

			c.logger.DebugContext(ctx, "Provider resolved",
				logger.StringField("domain", c.domain),
				logger.StringField("provider", p.Name()),
				logger.StringField("symbol", candidate),
			)
			return value, true
		}
	}
	return result, false
}

func (c *Cascade[T]) attempt(ctx context.Context, p Provider[T], req Request) (value T, err error) {
	attemptCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	err = utils.SafeCall(func() error {
		var fetchErr error
		value, fetchErr = p.Fetch(attemptCtx, req)
		return fetchErr
	})
	if err != nil {
		return value, fmt.Errorf("%s after %s: %w", p.Name(), time.Since(start).Round(time.Millisecond), err)
	}
	if c.valid != nil && !c.valid(value) {
		var zero T
		return zero, ErrInvalidResult
	}
	return value, nil
}
