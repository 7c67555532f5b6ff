package cascade

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang-stock-assistant/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

func (r *recorder) quote(name string, price float64, err error) Provider[*entity.StockQuote] {
	return ProviderFunc[*entity.StockQuote]{
		ProviderName: name,
		Fn: func(ctx context.Context, req Request) (*entity.StockQuote, error) {
			r.calls = append(r.calls, name+":"+req.Symbol)
			if err != nil {
				return nil, err
			}
			if price == 0 {
				return &entity.StockQuote{Symbol: req.Symbol}, nil
			}
			return &entity.StockQuote{Symbol: req.Symbol, Price: price, Source: name}, nil
		},
	}
}

func validQuote(q *entity.StockQuote) bool { return q.Valid() }

func TestResolve_SecondaryWinsAndStopsCascade(t *testing.T) {
	rec := &recorder{}
	c := New("price", []Provider[*entity.StockQuote]{
		rec.quote("primary", 0, errors.New("boom")),
		rec.quote("secondary", 42.5, nil),
		rec.quote("tertiary", 99, nil),
	}, time.Second, validQuote, nil)

	got, ok := c.Resolve(context.Background(), "", "AAPL")

	require.True(t, ok)
	assert.Equal(t, &entity.StockQuote{Symbol: "AAPL", Price: 42.5, Source: "secondary"}, got)
	assert.Equal(t, []string{"primary:AAPL", "secondary:AAPL"}, rec.calls)
}

func TestResolve_CandidatesAreOuterLoop(t *testing.T) {
	rec := &recorder{}
	c := New("price", []Provider[*entity.StockQuote]{
		rec.quote("a", 0, errors.New("miss")),
		rec.quote("b", 0, nil),
	}, time.Second, validQuote, nil)

	_, ok := c.Resolve(context.Background(), "", "BBCA", "BBCA.JK")

	assert.False(t, ok)
	assert.Equal(t, []string{"a:BBCA", "b:BBCA", "a:BBCA.JK", "b:BBCA.JK"}, rec.calls)
}

func TestResolve_InvalidResultContinues(t *testing.T) {
	rec := &recorder{}
	c := New("price", []Provider[*entity.StockQuote]{
		rec.quote("empty", 0, nil),
		rec.quote("good", 10, nil),
	}, time.Second, validQuote, nil)

	got, ok := c.Resolve(context.Background(), "", "MSFT")

	require.True(t, ok)
	assert.Equal(t, "good", got.Source)
}

func TestResolve_AllFailReturnsZero(t *testing.T) {
	rec := &recorder{}
	c := New("price", []Provider[*entity.StockQuote]{
		rec.quote("a", 0, errors.New("x")),
	}, time.Second, validQuote, nil)

	got, ok := c.Resolve(context.Background(), "", "AAPL")

	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestResolve_PanicIsRecovered(t *testing.T) {
	c := New("news", []Provider[[]entity.NewsItem]{
		ProviderFunc[[]entity.NewsItem]{ProviderName: "panics", Fn: func(ctx context.Context, req Request) ([]entity.NewsItem, error) {
			panic("nil map")
		}},
		ProviderFunc[[]entity.NewsItem]{ProviderName: "ok", Fn: func(ctx context.Context, req Request) ([]entity.NewsItem, error) {
			return []entity.NewsItem{{Title: "headline"}}, nil
		}},
	}, time.Second, entity.ValidNews, nil)

	got, ok := c.Resolve(context.Background(), "", "")

	require.True(t, ok)
	assert.Len(t, got, 1)
}

func TestResolve_TimeoutContinues(t *testing.T) {
	slow := ProviderFunc[*entity.StockQuote]{ProviderName: "slow", Fn: func(ctx context.Context, req Request) (*entity.StockQuote, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	rec := &recorder{}
	c := New("price", []Provider[*entity.StockQuote]{slow, rec.quote("fast", 1, nil)}, 20*time.Millisecond, validQuote, nil)

	got, ok := c.Resolve(context.Background(), "", "TSLA")

	require.True(t, ok)
	assert.Equal(t, "fast", got.Source)
}

func TestResolve_CancelledParentStops(t *testing.T) {
	rec := &recorder{}
	c := New("price", []Provider[*entity.StockQuote]{rec.quote("a", 1, nil)}, time.Second, validQuote, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := c.Resolve(ctx, "", "AAPL")

	assert.False(t, ok)
	assert.Empty(t, rec.calls)
}

func TestResolve_PassesTimeframe(t *testing.T) {
	var seen string
	c := New("prediction", []Provider[*entity.Prediction]{
		ProviderFunc[*entity.Prediction]{ProviderName: "llm", Fn: func(ctx context.Context, req Request) (*entity.Prediction, error) {
			seen = req.Timeframe
			return &entity.Prediction{Symbol: req.Symbol, CurrentPrice: 1, PredictedPrice: 1}, nil
		}},
	}, time.Second, func(p *entity.Prediction) bool { return p.Valid() }, nil)

	_, ok := c.Resolve(context.Background(), "1 month", "AAPL")

	require.True(t, ok)
	assert.Equal(t, "1 month", seen)
}
