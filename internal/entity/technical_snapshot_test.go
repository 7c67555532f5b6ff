package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTechnicalSnapshot_Valid(t *testing.T) {
	tests := []struct {
		name string
		snap *TechnicalSnapshot
		want bool
	}{
		{"nil", nil, false},
		{"regular reading", &TechnicalSnapshot{Symbol: "AAPL", RSI: 55, MovingAverages: MovingAverages{SMA20: 170}}, true},
		{"rsi of zero after a straight decline", &TechnicalSnapshot{Symbol: "AAPL", RSI: 0, MovingAverages: MovingAverages{SMA20: 170}}, true},
		{"rsi out of range", &TechnicalSnapshot{Symbol: "AAPL", RSI: 140, MovingAverages: MovingAverages{SMA20: 170}}, false},
		{"no moving average", &TechnicalSnapshot{Symbol: "AAPL", RSI: 55}, false},
		{"no symbol", &TechnicalSnapshot{RSI: 55, MovingAverages: MovingAverages{SMA20: 170}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.snap.Valid())
		})
	}
}
