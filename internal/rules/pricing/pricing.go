// Package pricing suggests sale prices for gold items from a per-gram quote.
package pricing

import (
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ringsizer/storefront/internal/domain"
)

// SuggestedPrice is weight × price per gram × karat/24. The price per gram must be quoted
// at 24 karat; passing a karat-adjusted price would scale it twice.
func SuggestedPrice(weightG *float64, karat *int, pricePerGram24k *float64) *float64 {
	if weightG == nil || karat == nil || pricePerGram24k == nil {
		return nil
	}
	if !finite(*weightG) || !finite(*pricePerGram24k) {
		return nil
	}
	ratio := float64(*karat) / float64(domain.BaseKarat)
	v := *weightG * *pricePerGram24k * ratio
	return &v
}

// SuggestedPriceFromInput parses the weight and karat text fields first.
func SuggestedPriceFromInput(weightText, karatText string, pricePerGram24k *float64) *float64 {
	return SuggestedPrice(parseFloat(weightText), parseInt(karatText), pricePerGram24k)
}

// PricePerGramBase picks the per-gram price a suggestion is computed from.
func PricePerGramBase(q *domain.GoldQuote) *float64 {
	if q == nil {
		return nil
	}
	v := q.PerGram()
	return &v
}

// RoundForDisplay rounds half up to two decimals. Stored values keep full precision.
func RoundForDisplay(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// FormatForInput renders a value the way it is written into a price field.
func FormatForInput(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}

// AutoPricer mirrors the price input of the product editor. While enabled, every
// observed suggestion overwrites the field; disabling it freezes the current text.
type AutoPricer struct {
	mu      sync.Mutex
	enabled bool
	field   string
}

func NewAutoPricer(enabled bool, initial string) *AutoPricer {
	return &AutoPricer{enabled: enabled, field: initial}
}

func (a *AutoPricer) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

// SetEnabled toggles auto mode. When switched on, the next Observe call repopulates the field.
func (a *AutoPricer) SetEnabled(enabled bool) {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()
}

// Observe feeds a freshly computed suggestion. It returns the field text afterwards.
func (a *AutoPricer) Observe(suggested *float64) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.enabled {
		return a.field
	}
	if suggested == nil {
		a.field = ""
	} else {
		a.field = FormatForInput(*suggested)
	}
	return a.field
}

// SetManual writes user-typed text into the field.
func (a *AutoPricer) SetManual(text string) {
	a.mu.Lock()
	a.field = text
	a.mu.Unlock()
}

func (a *AutoPricer) Field() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.field
}

// Price parses the field; nil when it holds no number.
func (a *AutoPricer) Price() *float64 {
	return parseFloat(a.Field())
}

func parseFloat(s string) *float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(v) {
		return nil
	}
	return &v
}

func parseInt(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
