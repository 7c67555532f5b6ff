package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// TokenLimiter is a fixed one-minute window budget of LLM tokens.
type TokenLimiter struct {
	mu          sync.Mutex
	maxPerMin   int
	used        int
	windowStart time.Time
	now         func() time.Time
}

// NewTokenLimiter creates a limiter allowing maxTokensPerMinute tokens per minute.
// A non-positive limit disables limiting.
func NewTokenLimiter(maxTokensPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		maxPerMin:   maxTokensPerMinute,
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// Wait blocks until the requested number of tokens fits in the current window.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	if l.maxPerMin <= 0 {
		return nil
	}
	if tokens > l.maxPerMin {
		return fmt.Errorf("requested %d tokens exceeds limit of %d per minute", tokens, l.maxPerMin)
	}

	for {
		l.mu.Lock()
		now := l.now()
		if now.Sub(l.windowStart) >= time.Minute {
			l.windowStart = now
			l.used = 0
		}
		if l.used+tokens <= l.maxPerMin {
			l.used += tokens
			l.mu.Unlock()
			return nil
		}
		wait := time.Minute - now.Sub(l.windowStart)
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// GetRemaining returns the tokens left in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.maxPerMin <= 0 {
		return 0
	}
	if l.now().Sub(l.windowStart) >= time.Minute {
		return l.maxPerMin
	}
	return l.maxPerMin - l.used
}
