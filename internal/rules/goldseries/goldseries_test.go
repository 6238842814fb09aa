package goldseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringsizer/storefront/internal/domain"
)

func series(values ...float64) domain.GoldSeries {
	out := make(domain.GoldSeries, len(values))
	for i, v := range values {
		v := v
		out[i] = domain.GoldQuote{PricePerGram: v / 10, PricePerGramLocal: &v, Karat: 24}
	}
	return out
}

func TestAnalyze_Empty(t *testing.T) {
	s := Analyze(nil)
	assert.Nil(t, s.Min)
	assert.Nil(t, s.Max)
	assert.Nil(t, s.Change)
	assert.Equal(t, TrendEmpty, s.Trend())
}

func TestAnalyze_SinglePoint(t *testing.T) {
	s := Analyze(series(100))
	require.NotNil(t, s.Min)
	assert.Equal(t, 100.0, *s.Min)
	assert.Equal(t, 100.0, *s.Max)
	assert.Equal(t, 0.0, *s.Change)
	assert.Equal(t, TrendInsufficient, s.Trend())
}

func TestAnalyze_Series(t *testing.T) {
	s := Analyze(series(100, 120, 90))
	assert.Equal(t, 90.0, *s.Min)
	assert.Equal(t, 120.0, *s.Max)
	assert.Equal(t, -10.0, *s.Change)
	assert.Equal(t, 3, s.Points)
	assert.Equal(t, TrendAvailable, s.Trend())
}

func TestValues_FallsBackToBaseCurrency(t *testing.T) {
	local := 650.0
	got := Values(domain.GoldSeries{
		{PricePerGram: 60},
		{PricePerGram: 61, PricePerGramLocal: &local},
	})
	assert.Equal(t, []float64{60, 650}, got)
}

func TestLatest(t *testing.T) {
	assert.Nil(t, Latest(nil))
	assert.Equal(t, 90.0, *Latest(series(100, 120, 90)))
}

func TestValues_KeepsSourceOrder(t *testing.T) {
	assert.Equal(t, []float64{300, 100, 200}, Values(series(300, 100, 200)))
}

func TestClampDays(t *testing.T) {
	assert.Equal(t, 1, ClampDays(-5))
	assert.Equal(t, 1, ClampDays(0))
	assert.Equal(t, 30, ClampDays(30))
	assert.Equal(t, 180, ClampDays(180))
	assert.Equal(t, 180, ClampDays(365))
}
