package checkout

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Line is one product entry in the local cart.
type Line struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int64
}

// CartStore is the client-side cart held in memory while the user browses.
// Safe for concurrent use.
type CartStore struct {
	mu    sync.Mutex
	lines map[int64]Line
	order []int64
}

func NewCartStore() *CartStore {
	return &CartStore{lines: make(map[int64]Line)}
}

// Add merges quantity into an existing line for the same product.
func (s *CartStore) Add(l Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.lines[l.ProductID]; ok {
		existing.Quantity += l.Quantity
		s.lines[l.ProductID] = existing
		return
	}
	s.lines[l.ProductID] = l
	s.order = append(s.order, l.ProductID)
}

func (s *CartStore) Remove(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lines[productID]; !ok {
		return
	}
	delete(s.lines, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// SetQuantity sets the line's quantity; zero or less removes the line.
func (s *CartStore) SetQuantity(productID int64, quantity int64) {
	if quantity <= 0 {
		s.Remove(productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.lines[productID]; ok {
		l.Quantity = quantity
		s.lines[productID] = l
	}
}

func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[int64]Line)
	s.order = nil
}

// Lines returns the cart in insertion order.
func (s *CartStore) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.lines[id])
	}
	return out
}

func (s *CartStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// TotalFiat sums unit price times quantity across all lines.
func (s *CartStore) TotalFiat() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}
