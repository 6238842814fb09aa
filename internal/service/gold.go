package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/pkg/observable"
	"github.com/ringsizer/storefront/internal/rules/goldseries"
)

type GoldRepository interface {
	Latest(ctx context.Context) (domain.GoldQuote, error)
	History(ctx context.Context, days, karat int) (domain.GoldSeries, error)
}

// GoldView is what a gold screen renders at one point in time.
type GoldView struct {
	Quote  *domain.GoldQuote `json:"quote"`
	Latest *float64          `json:"latest"`
	Days   int               `json:"days"`
	Karat  int               `json:"karat"`
	Values []float64         `json:"values"`
	Stats  goldseries.Stats  `json:"stats"`
	Trend  goldseries.Trend  `json:"trend"`
	Status Status            `json:"status"`
}

type GoldTracker struct {
	statusHolder
	Quote   *observable.Store[*domain.GoldQuote]
	History *observable.Store[domain.GoldSeries]
	Days    *observable.Store[int]

	karat int
	repo  GoldRepository
	opMu  sync.Mutex
}

func NewGoldTracker(repo GoldRepository, days, karat int) *GoldTracker {
	if days == 0 {
		days = goldseries.DefaultDays
	}
	if karat <= 0 {
		karat = domain.BaseKarat
	}

	return &GoldTracker{
		statusHolder: newStatusHolder(),
		Quote:        observable.New[*domain.GoldQuote](nil),
		History:      observable.New(domain.GoldSeries{}),
		Days:         observable.New(goldseries.ClampDays(days)),
		karat:        karat,
		repo:         repo,
	}
}

// Load fetches the latest quote, then the history for the selected window.
func (t *GoldTracker) Load(ctx context.Context) error {
	t.opMu.Lock()
	defer t.opMu.Unlock()

	return t.load(ctx, t.Days.Get())
}

// load fetches the quote and the history for days. Nothing is committed unless both
// calls succeed, so a failure leaves the previous window and its series in place.
func (t *GoldTracker) load(ctx context.Context, days int) error {
	t.begin()
	latest, err := t.repo.Latest(ctx)
	if err != nil {
		t.fail(err)
		return fmt.Errorf("t.repo.Latest -> %w", err)
	}

	history, err := t.repo.History(ctx, days, t.karat)
	if err != nil {
		t.fail(err)
		return fmt.Errorf("t.repo.History(%d) -> %w", days, err)
	}

	t.Days.Set(days)
	t.Quote.Set(&latest)
	t.History.Set(history)
	t.done()

	return nil
}

// SetDays clamps the window and reloads when it changed or the last load failed.
func (t *GoldTracker) SetDays(ctx context.Context, days int) error {
	t.opMu.Lock()
	defer t.opMu.Unlock()

	clamped := goldseries.ClampDays(days)
	if clamped == t.Days.Get() && t.Status.Get().Error == "" {
		return nil
	}

	return t.load(ctx, clamped)
}

// View reloads the clamped window and returns a consistent snapshot. On failure the
// snapshot still describes the last good window.
func (t *GoldTracker) View(ctx context.Context, days int) (GoldView, error) {
	t.opMu.Lock()
	defer t.opMu.Unlock()

	err := t.load(ctx, goldseries.ClampDays(days))

	return t.snapshot(), err
}

func (t *GoldTracker) snapshot() GoldView {
	stats := t.Stats()
	return GoldView{
		Quote:  t.Quote.Get(),
		Latest: t.LatestValue(),
		Days:   t.Days.Get(),
		Karat:  t.karat,
		Values: t.HistoryValues(),
		Stats:  stats,
		Trend:  stats.Trend(),
		Status: t.Status.Get(),
	}
}

// CurrentPrice fetches the latest quote and returns its per-gram price.
func (t *GoldTracker) CurrentPrice(ctx context.Context) (*float64, error) {
	t.opMu.Lock()
	defer t.opMu.Unlock()

	latest, err := t.repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("t.repo.Latest -> %w", err)
	}
	t.Quote.Set(&latest)

	return t.LatestValue(), nil
}

// LatestValue is the local per-gram price of the latest quote, nil before the first load.
func (t *GoldTracker) LatestValue() *float64 {
	q := t.Quote.Get()
	if q == nil {
		return nil
	}
	v := q.PerGram()
	return &v
}

func (t *GoldTracker) HistoryValues() []float64 {
	return goldseries.Values(t.History.Get())
}

func (t *GoldTracker) Stats() goldseries.Stats {
	return goldseries.Analyze(t.History.Get())
}
