package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ringsizer/storefront/internal/domain"
	"github.com/ringsizer/storefront/internal/pkg/observable"
	"github.com/ringsizer/storefront/internal/pkg/optimistic"
)

var ErrLineNotFound = errors.New("product is not in the cart")

type CartRepository interface {
	Lines(ctx context.Context) ([]domain.CartLine, error)
	Add(ctx context.Context, productID int64, quantity int) (domain.CartLine, error)
	SetQuantity(ctx context.Context, productID int64, quantity int) (domain.CartLine, error)
	Remove(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
}

// CartLedger mirrors the remote cart of one user. Mutations are applied locally first and
// rolled back when the remote refuses them, except Clear which waits for confirmation.
// Operations on one ledger run one at a time.
type CartLedger struct {
	statusHolder
	Items *observable.Store[[]domain.CartLine]

	repo CartRepository
	opMu sync.Mutex
}

func NewCartLedger(repo CartRepository) *CartLedger {
	return &CartLedger{
		statusHolder: newStatusHolder(),
		Items:        observable.New([]domain.CartLine{}),
		repo:         repo,
	}
}

func (l *CartLedger) Lines() []domain.CartLine {
	return l.Items.Get()
}

func (l *CartLedger) Load(ctx context.Context) error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	return l.load(ctx)
}

func (l *CartLedger) load(ctx context.Context) error {
	l.begin()
	lines, err := l.repo.Lines(ctx)
	if err != nil {
		l.fail(err)
		return fmt.Errorf("l.repo.Lines -> %w", err)
	}

	l.Items.Set(lines)
	l.done()

	return nil
}

// AddLine adds quantity units of a product, at least one. The cart is reloaded after
// the remote accepts so new lines get their product snapshot.
func (l *CartLedger) AddLine(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	l.opMu.Lock()
	defer l.opMu.Unlock()

	l.begin()
	err := optimistic.Mutate(ctx, l.Items,
		func(lines []domain.CartLine) []domain.CartLine {
			return addOrIncrement(lines, productID, quantity)
		},
		func(ctx context.Context) error {
			_, err := l.repo.Add(ctx, productID, quantity)
			return err
		})
	if err != nil {
		l.fail(err)
		return fmt.Errorf("l.repo.Add -> %w", err)
	}

	return l.load(ctx)
}

// SetQuantity clamps quantity to at least one.
func (l *CartLedger) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	return l.setQuantity(ctx, productID, quantity)
}

func (l *CartLedger) setQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	l.begin()
	err := optimistic.Mutate(ctx, l.Items,
		func(lines []domain.CartLine) []domain.CartLine {
			return withQuantity(lines, productID, quantity)
		},
		func(ctx context.Context) error {
			_, err := l.repo.SetQuantity(ctx, productID, quantity)
			return err
		})
	if err != nil {
		l.fail(err)
		return fmt.Errorf("l.repo.SetQuantity -> %w", err)
	}
	l.done()

	return nil
}

func (l *CartLedger) Increment(ctx context.Context, productID int64) error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	line, ok := findLine(l.Items.Get(), productID)
	if !ok {
		return ErrLineNotFound
	}

	return l.setQuantity(ctx, productID, line.Quantity+1)
}

// Decrement never takes a line below one unit; at one it does nothing.
func (l *CartLedger) Decrement(ctx context.Context, productID int64) error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	line, ok := findLine(l.Items.Get(), productID)
	if !ok {
		return ErrLineNotFound
	}
	if line.Quantity <= 1 {
		return nil
	}

	return l.setQuantity(ctx, productID, line.Quantity-1)
}

func (l *CartLedger) RemoveLine(ctx context.Context, productID int64) error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	l.begin()
	err := optimistic.Mutate(ctx, l.Items,
		func(lines []domain.CartLine) []domain.CartLine {
			return withoutProduct(lines, productID)
		},
		func(ctx context.Context) error {
			return l.repo.Remove(ctx, productID)
		})
	if err != nil {
		l.fail(err)
		return fmt.Errorf("l.repo.Remove -> %w", err)
	}
	l.done()

	return nil
}

// Clear empties the local cart only once the remote confirmed.
func (l *CartLedger) Clear(ctx context.Context) error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	l.begin()
	if err := l.repo.Clear(ctx); err != nil {
		l.fail(err)
		return fmt.Errorf("l.repo.Clear -> %w", err)
	}

	l.Items.Set([]domain.CartLine{})
	l.done()

	return nil
}

// Total sums price × quantity. Lines without a product snapshot count as zero.
func (l *CartLedger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l.Items.Get() {
		total = total.Add(Subtotal(line))
	}
	return total
}

func Subtotal(line domain.CartLine) decimal.Decimal {
	if line.Product == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(line.Product.Price).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

func findLine(lines []domain.CartLine, productID int64) (domain.CartLine, bool) {
	for _, line := range lines {
		if line.ProductID == productID {
			return line, true
		}
	}
	return domain.CartLine{}, false
}

func addOrIncrement(lines []domain.CartLine, productID int64, quantity int) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines)+1)
	found := false
	for _, line := range lines {
		if line.ProductID == productID && !found {
			line.Quantity += quantity
			found = true
		}
		out = append(out, line)
	}
	if !found {
		out = append(out, domain.CartLine{ProductID: productID, Quantity: quantity})
	}
	return out
}

func withQuantity(lines []domain.CartLine, productID int64, quantity int) []domain.CartLine {
	out := make([]domain.CartLine, len(lines))
	for i, line := range lines {
		if line.ProductID == productID {
			line.Quantity = quantity
		}
		out[i] = line
	}
	return out
}

func withoutProduct(lines []domain.CartLine, productID int64) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ProductID != productID {
			out = append(out, line)
		}
	}
	return out
}
