// Package goldseries reduces a gold price history to the figures shown next to the chart.
//
// The series is trusted as returned by the source: it is already scoped to the requested
// window and ordered oldest to newest. Nothing here filters by date, re-sorts or fills gaps.
package goldseries

import "github.com/ringsizer/storefront/internal/domain"

const (
	MinDays     = 1
	MaxDays     = 180
	DefaultDays = 30
)

type Trend string

const (
	TrendEmpty        Trend = "empty"
	TrendInsufficient Trend = "insufficient"
	TrendAvailable    Trend = "available"
)

type Stats struct {
	Min    *float64 `json:"min"`
	Max    *float64 `json:"max"`
	Change *float64 `json:"change"`
	Points int      `json:"points"`
}

// Trend tells an empty series apart from one with too few points to show a trend.
func (s Stats) Trend() Trend {
	switch {
	case s.Points == 0:
		return TrendEmpty
	case s.Points < 2:
		return TrendInsufficient
	default:
		return TrendAvailable
	}
}

// ClampDays bounds a requested history window before it is sent upstream.
func ClampDays(days int) int {
	if days < MinDays {
		return MinDays
	}
	if days > MaxDays {
		return MaxDays
	}
	return days
}

// Values maps each quote to its per-gram price, keeping source order.
func Values(series domain.GoldSeries) []float64 {
	out := make([]float64, len(series))
	for i, q := range series {
		out[i] = q.PerGram()
	}
	return out
}

// Latest is the per-gram price of the last quote, nil for an empty series.
func Latest(series domain.GoldSeries) *float64 {
	if len(series) == 0 {
		return nil
	}
	v := series[len(series)-1].PerGram()
	return &v
}

func Analyze(series domain.GoldSeries) Stats {
	return AnalyzeValues(Values(series))
}

func AnalyzeValues(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	change := 0.0
	if len(values) >= 2 {
		change = values[len(values)-1] - values[0]
	}
	return Stats{Min: &lo, Max: &hi, Change: &change, Points: len(values)}
}
