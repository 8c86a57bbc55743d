package services

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/yeremiapane/pos-app/models"
)

var ErrLineNotFound = errors.New("cart line not found")

// CartLine is one product/quantity/unit-price tuple inside a cart.
type CartLine struct {
	// ItemID carries the persisted OrderItem id when the cart was loaded
	// from an existing order; zero for lines added in this session.
	ItemID    uint    `json:"item_id,omitempty"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// CartSession holds the editable line set for one in-progress order. It is
// purely in-memory: abandoning a session has no persistence consequence.
type CartSession struct {
	ID string

	mu             sync.Mutex
	clientName     string
	editingOrderID *uint
	lines          []CartLine
}

func newCartSession() *CartSession {
	return &CartSession{
		ID:         uuid.New().String(),
		clientName: models.DefaultClientName,
	}
}

// ClientName returns the client name the next save will use.
func (s *CartSession) ClientName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientName
}

func (s *CartSession) SetClientName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientName = name
}

// EditingOrderID returns the id of the order being edited, or nil when the
// cart builds a new order.
func (s *CartSession) EditingOrderID() *uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editingOrderID == nil {
		return nil
	}
	id := *s.editingOrderID
	return &id
}

// AddLine merges the product into an existing line (quantity +1, same
// position) or appends a new line with quantity 1. The unit price is a
// snapshot of the product's current sell price.
func (s *CartSession) AddLine(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity++
			return
		}
	}

	s.lines = append(s.lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  1,
		UnitPrice: p.SellPrice,
	})
}

// IncrementLine adds one to the quantity of the line for productID.
func (s *CartSession) IncrementLine(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity++
			return nil
		}
	}
	return ErrLineNotFound
}

// DecrementLine subtracts one from the line's quantity; a line already at
// quantity 1 is removed instead of dropping to zero.
func (s *CartSession) DecrementLine(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			if s.lines[i].Quantity > 1 {
				s.lines[i].Quantity--
			} else {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
			}
			return nil
		}
	}
	return ErrLineNotFound
}

// RemoveLine deletes the line unconditionally.
func (s *CartSession) RemoveLine(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Total is always recomputed from the line set, never cached.
func (s *CartSession) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalOf(s.lines)
}

func totalOf(lines []CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += float64(line.Quantity) * line.UnitPrice
	}
	return total
}

// Lines returns a copy of the current line set in order.
func (s *CartSession) Lines() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// LoadFromOrder replaces the cart contents with a snapshot of the order's
// persisted items and marks the session as editing that order.
func (s *CartSession) LoadFromOrder(order *models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = s.lines[:0]
	for _, item := range order.OrderItems {
		s.lines = append(s.lines, CartLine{
			ItemID:    item.ID,
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	orderID := order.ID
	s.editingOrderID = &orderID
	if order.Client.Name != "" {
		s.clientName = order.Client.Name
	}
}

// Reset discards the cart contents and edit target after a successful save.
func (s *CartSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.editingOrderID = nil
	s.clientName = models.DefaultClientName
}

// SessionManager owns the active checkout sessions. Sessions are explicit
// handles passed between components instead of an ambient "current cart".
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*CartSession
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*CartSession),
	}
}

func (m *SessionManager) NewSession() *CartSession {
	session := newCartSession()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return session
}

func (m *SessionManager) Get(id string) (*CartSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	return session, ok
}

func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
