// Package indicator computes technical indicators from daily bars.
package indicator

import (
	"errors"
	"math"
	"time"

	"golang-stock-assistant/internal/entity"
)

const (
	RSIPeriod        = 14
	MACDFast         = 12
	MACDSlow         = 26
	MACDSignal       = 9
	SupportLookback  = 20
	MinSnapshotBars  = MACDSlow + MACDSignal
	SourceIndicators = "indicators"
)

var ErrNotEnoughData = errors.New("not enough data for indicator calculation")

// SMA computes the simple moving average of the last period prices.
func SMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, ErrNotEnoughData
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// EMA returns the exponential moving average series of prices, seeded with
// the SMA of the first period values. The result is aligned with prices[period-1:].
func EMA(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(prices) < period {
		return nil, ErrNotEnoughData
	}
	k := 2.0 / float64(period+1)
	seed, _ := SMA(prices[:period], period)
	out := make([]float64, 0, len(prices)-period+1)
	out = append(out, seed)
	for _, p := range prices[period:] {
		prev := out[len(out)-1]
		out = append(out, (p-prev)*k+prev)
	}
	return out, nil
}

// RSI computes the Wilder-smoothed RSI over period. It returns 50 when there
// are fewer than period+1 prices.
func RSI(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period+1 {
		return 50.0
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
	}

	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}

// MACD computes the latest MACD line, signal line and histogram.
func MACD(prices []float64, fast, slow, signal int) (entity.MACD, error) {
	if len(prices) < slow+signal-1 {
		return entity.MACD{}, ErrNotEnoughData
	}
	fastEMA, err := EMA(prices, fast)
	if err != nil {
		return entity.MACD{}, err
	}
	slowEMA, err := EMA(prices, slow)
	if err != nil {
		return entity.MACD{}, err
	}

	// Align the fast series with the slow one; both end at the last price.
	offset := len(fastEMA) - len(slowEMA)
	line := make([]float64, len(slowEMA))
	for i := range slowEMA {
		line[i] = fastEMA[i+offset] - slowEMA[i]
	}

	signalEMA, err := EMA(line, signal)
	if err != nil {
		return entity.MACD{}, err
	}
	m := line[len(line)-1]
	s := signalEMA[len(signalEMA)-1]
	return entity.MACD{MACD: m, Signal: s, Histogram: m - s}, nil
}

// SupportResistance returns the lowest low and highest high of the last
// lookback bars.
func SupportResistance(bars []entity.PriceBar, lookback int) (support, resistance float64, err error) {
	if lookback <= 0 || len(bars) == 0 {
		return 0, 0, ErrNotEnoughData
	}
	if len(bars) < lookback {
		lookback = len(bars)
	}
	support, resistance = math.MaxFloat64, 0
	for _, b := range bars[len(bars)-lookback:] {
		support = math.Min(support, b.Low)
		resistance = math.Max(resistance, b.High)
	}
	return support, resistance, nil
}

// Snapshot computes a technical snapshot from daily bars. Moving averages
// longer than the available history are computed over the whole history.
// The trend label follows change, the live quote's price change.
func Snapshot(symbol string, bars []entity.PriceBar, change float64) (*entity.TechnicalSnapshot, error) {
	if len(bars) < MinSnapshotBars {
		return nil, ErrNotEnoughData
	}
	closes := Closes(bars)

	macd, err := MACD(closes, MACDFast, MACDSlow, MACDSignal)
	if err != nil {
		return nil, err
	}
	support, resistance, err := SupportResistance(bars, SupportLookback)
	if err != nil {
		return nil, err
	}

	return &entity.TechnicalSnapshot{
		Symbol:       symbol,
		CurrentPrice: round(closes[len(closes)-1], 2),
		RSI:          round(RSI(closes, RSIPeriod), 2),
		MACD: entity.MACD{
			MACD:      round(macd.MACD, 4),
			Signal:    round(macd.Signal, 4),
			Histogram: round(macd.Histogram, 4),
		},
		MovingAverages: entity.MovingAverages{
			SMA20:  round(clippedSMA(closes, 20), 2),
			SMA50:  round(clippedSMA(closes, 50), 2),
			SMA200: round(clippedSMA(closes, 200), 2),
		},
		Support:    round(support, 2),
		Resistance: round(resistance, 2),
		Trend:      entity.TrendFromChange(change),
		Source:     SourceIndicators,
		Timestamp:  time.Now(),
	}, nil
}

// Closes extracts closing prices from bars.
func Closes(bars []entity.PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func clippedSMA(prices []float64, period int) float64 {
	if len(prices) < period {
		period = len(prices)
	}
	v, _ := SMA(prices, period)
	return v
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
