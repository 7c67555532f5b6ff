package symbol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"idx bank", "BBCA", "BBCA.JK"},
		{"idx bank lowercase with spaces", "  bbri ", "BBRI.JK"},
		{"idx telco", "TLKM", "TLKM.JK"},
		{"idx consumer", "UNVR", "UNVR.JK"},
		{"already suffixed", "bbca.jk", "BBCA.JK"},
		{"london listing untouched", "VOD.L", "VOD.L"},
		{"us ticker", "aapl", "AAPL"},
		{"4 letters unknown prefix", "MSFT", "MSFT"},
		{"prefix but not 4 letters", "BBC", "BBC"},
		{"prefix but 5 letters", "BBCAX", "BBCAX"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalize_AllPrefixes(t *testing.T) {
	for prefix := range idxPrefixes {
		assert.Equal(t, prefix+"XY.JK", Normalize(prefix+"xy"))
	}
}

func TestExpandFormats_OriginalFirst(t *testing.T) {
	for _, raw := range []string{"aapl", "BBCA", "vod.l", "X", ""} {
		got := ExpandFormats(raw)
		assert.NotEmpty(t, got)
		assert.Equal(t, strings.ToUpper(raw), got[0], "raw=%q", raw)
	}
}

func TestExpandFormats_BareSymbolWidens(t *testing.T) {
	got := ExpandFormats("bbca")

	assert.Equal(t, "BBCA", got[0])
	assert.Equal(t, "BBCA.JK", got[1])
	assert.Len(t, got, 1+len(exchangeSuffixes))
	assert.Contains(t, got, "BBCA.L")
	assert.Contains(t, got, "BBCA.PA")
}

func TestExpandFormats_SuffixedSymbolDoesNotWiden(t *testing.T) {
	assert.Equal(t, []string{"BBCA.JK"}, ExpandFormats("bbca.jk"))
}

func TestBase(t *testing.T) {
	assert.Equal(t, "BBCA", Base("BBCA.JK"))
	assert.Equal(t, "AAPL", Base("AAPL"))
}
