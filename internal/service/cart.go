package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/repository"
	apperrors "github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/errors"
)

// CartView is a consistent read of the cart.
type CartView struct {
	Lines     []domain.CartLine `json:"lines"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	ItemCount int               `json:"itemCount"`
	Open      bool              `json:"open"`
}

// CartStore is the authoritative list of cart lines for this device. Every
// mutation is persisted before the lock is released, so the stored list always
// reflects mutations in call order. Persistence is best effort: failures are
// logged and the in-memory lines stay authoritative.
type CartStore struct {
	mu     sync.Mutex
	lines  []domain.CartLine
	open   bool
	repo   repository.CartRepository
	logger *slog.Logger
}

// NewCartStore creates a cart store hydrated from repo. A missing or unreadable
// saved cart starts empty.
func NewCartStore(ctx context.Context, repo repository.CartRepository, logger *slog.Logger) *CartStore {
	s := &CartStore{repo: repo, logger: logger, lines: []domain.CartLine{}}

	lines, err := repo.Load(ctx)
	if err != nil {
		logger.WarnContext(ctx, "saved cart could not be restored, starting empty",
			slog.String("error", err.Error()),
		)
		return s
	}
	s.lines = dropInvalid(lines)
	return s
}

// dropInvalid discards lines a hand-edited or older store may hold: no
// product or a duplicated key. Quantities are clamped to [1, MaxLineQuantity].
func dropInvalid(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if l.ProductID == "" {
			continue
		}
		if l.Key == "" {
			l.Key = domain.LineKey(l.ProductID, l.SizeID, l.ColorID)
		}
		if _, dup := seen[l.Key]; dup {
			continue
		}
		seen[l.Key] = struct{}{}
		l.Quantity = domain.ClampQuantity(l.Quantity)
		out = append(out, l)
	}
	return out
}

// AddItem merges in into the line with the same key, or appends a new line.
// An existing line keeps its name, price and image; only the quantity grows,
// up to domain.MaxLineQuantity.
func (s *CartStore) AddItem(ctx context.Context, in domain.AddItemInput) error {
	if err := in.Validate(); err != nil {
		return apperrors.InvalidInputWrap(err, err.Error())
	}
	line := in.Line()

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(line.Key); i >= 0 {
		s.lines[i].Quantity = min(s.lines[i].Quantity+line.Quantity, domain.MaxLineQuantity)
	} else {
		s.lines = append(s.lines, line)
	}
	s.persist(ctx)
	return nil
}

// Increment raises the quantity of key by one, never above domain.MaxLineQuantity.
func (s *CartStore) Increment(ctx context.Context, key string) {
	s.update(ctx, key, func(l *domain.CartLine) bool {
		if l.Quantity >= domain.MaxLineQuantity {
			return false
		}
		l.Quantity++
		return true
	})
}

// Decrement lowers the quantity of key by one, never below 1.
func (s *CartStore) Decrement(ctx context.Context, key string) {
	s.update(ctx, key, func(l *domain.CartLine) bool {
		if l.Quantity <= 1 {
			return false
		}
		l.Quantity--
		return true
	})
}

// UpdateQty sets the quantity of key, clamped to [1, domain.MaxLineQuantity].
func (s *CartStore) UpdateQty(ctx context.Context, key string, qty int) {
	qty = domain.ClampQuantity(qty)
	s.update(ctx, key, func(l *domain.CartLine) bool {
		if l.Quantity == qty {
			return false
		}
		l.Quantity = qty
		return true
	})
}

// RemoveItem deletes the line for key whatever its quantity.
func (s *CartStore) RemoveItem(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return
	}
	s.lines = slices.Delete(s.lines, i, i+1)
	s.persist(ctx)
}

// Clear empties the cart.
func (s *CartStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = []domain.CartLine{}
	s.persist(ctx)
}

// Lines returns a copy of the current lines in insertion order.
func (s *CartStore) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lines)
}

// Subtotal is recomputed from the current lines on every call.
func (s *CartStore) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Subtotal(s.lines)
}

// ItemCount is the total number of units in the cart.
func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ItemCount(s.lines)
}

// View returns lines, totals and the drawer flag read under one lock.
func (s *CartStore) View() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartView{
		Lines:     slices.Clone(s.lines),
		Subtotal:  domain.Subtotal(s.lines),
		ItemCount: domain.ItemCount(s.lines),
		Open:      s.open,
	}
}

// OpenCart shows the cart drawer.
func (s *CartStore) OpenCart() { s.setOpen(func(bool) bool { return true }) }

// CloseCart hides the cart drawer.
func (s *CartStore) CloseCart() { s.setOpen(func(bool) bool { return false }) }

// ToggleCart flips the cart drawer.
func (s *CartStore) ToggleCart() { s.setOpen(func(open bool) bool { return !open }) }

// IsOpen reports whether the cart drawer is shown.
func (s *CartStore) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *CartStore) setOpen(fn func(bool) bool) {
	s.mu.Lock()
	s.open = fn(s.open)
	s.mu.Unlock()
}

// update applies fn to the line for key and persists when fn reports a change.
// Unknown keys are ignored.
func (s *CartStore) update(ctx context.Context, key string, fn func(*domain.CartLine) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(key)
	if i < 0 {
		return
	}
	if fn(&s.lines[i]) {
		s.persist(ctx)
	}
}

func (s *CartStore) indexOf(key string) int {
	return slices.IndexFunc(s.lines, func(l domain.CartLine) bool { return l.Key == key })
}

// persist must be called with s.mu held.
func (s *CartStore) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, slices.Clone(s.lines)); err != nil {
		s.logger.WarnContext(ctx, "failed to persist cart",
			slog.Int("lines", len(s.lines)),
			slog.String("error", err.Error()),
		)
	}
}
