package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-app/models"
	"github.com/yeremiapane/pos-app/utils"
)

var (
	ErrEmptyCart            = errors.New("cannot save an empty cart")
	ErrOrderNotFound        = errors.New("order not found")
	ErrAlreadyPaid          = errors.New("order is already paid")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// OrderStore is the persistence contract the coordinator drives. Mutating
// operations receive the transaction handle the coordinator opened.
type OrderStore interface {
	FindOrder(tx *gorm.DB, id uint) (*models.Order, error)
	FindOrderWithItems(tx *gorm.DB, id uint) (*models.Order, error)
	CreateOrder(tx *gorm.DB, order *models.Order) error
	ReplaceItems(tx *gorm.DB, orderID uint, items []models.OrderItem) error
	UpdateOrder(tx *gorm.DB, order *models.Order) error
	RecordPayment(tx *gorm.DB, payment *models.Payment) error
	ListOpenOrders(db *gorm.DB) ([]models.Order, error)
	ListFinishedOrders(db *gorm.DB, start, end time.Time) ([]models.Order, error)
}

// CheckoutService orchestrates create-vs-edit order persistence, item-set
// replacement, and payment recording inside one database transaction.
type CheckoutService struct {
	db    *gorm.DB
	store OrderStore

	// satu transaksi per order id
	lockMu sync.Mutex
	locks  map[uint]*sync.Mutex
}

func NewCheckoutService(db *gorm.DB, store OrderStore) *CheckoutService {
	return &CheckoutService{
		db:    db,
		store: store,
		locks: make(map[uint]*sync.Mutex),
	}
}

// orderLock returns the mutex guarding transactional work on one order id.
func (s *CheckoutService) orderLock(orderID uint) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	lock, ok := s.locks[orderID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[orderID] = lock
	}
	return lock
}

// SaveOpen persists the cart as an open (unpaid) order, either creating a
// new order or fully replacing the item set of the order being edited. On
// any failure the transaction rolls back and the cart is left intact.
func (s *CheckoutService) SaveOpen(session *CartSession) (*models.Order, error) {
	lines := session.Lines()
	total := totalOf(lines)
	if total <= 0 {
		// Validasi sebelum transaksi dibuka
		return nil, ErrEmptyCart
	}

	editID := session.EditingOrderID()
	if editID != nil {
		lock := s.orderLock(*editID)
		lock.Lock()
		defer lock.Unlock()
	}

	clientName := session.ClientName()
	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if editID != nil {
			order, err = s.replaceOrder(tx, *editID, clientName, lines, total)
		} else {
			order, err = s.createOrder(tx, clientName, lines, total, false)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	session.Reset()
	utils.InfoLogger.Printf("%s held open, total %s", order.Reference(), utils.FormatCurrency(order.TotalAmount))
	return order, nil
}

// Checkout persists the cart (create-vs-edit, same branch as SaveOpen) and
// additionally marks the order paid and records exactly one payment for the
// session total, all inside the same transaction.
func (s *CheckoutService) Checkout(session *CartSession, method string) (*models.Order, *models.Payment, error) {
	if !models.ValidPaymentMethod(method) {
		return nil, nil, ErrInvalidPaymentMethod
	}

	lines := session.Lines()
	total := totalOf(lines)
	if total <= 0 {
		return nil, nil, ErrEmptyCart
	}

	editID := session.EditingOrderID()
	if editID != nil {
		lock := s.orderLock(*editID)
		lock.Lock()
		defer lock.Unlock()
	}

	clientName := session.ClientName()
	var (
		order   *models.Order
		payment *models.Payment
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if editID != nil {
			order, err = s.replaceOrder(tx, *editID, clientName, lines, total)
		} else {
			order, err = s.createOrder(tx, clientName, lines, total, false)
		}
		if err != nil {
			return err
		}

		payment, err = s.recordPayment(tx, order, total, method)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	session.Reset()
	utils.InfoLogger.Printf("%s checked out, %s via %s", order.Reference(), utils.FormatCurrency(payment.Amount), method)
	return order, payment, nil
}

// ConfirmPayment settles a previously held-open order: it marks the order
// paid and records a payment for the stored total in one transaction.
func (s *CheckoutService) ConfirmPayment(orderID uint, method string) (*models.Order, *models.Payment, error) {
	if !models.ValidPaymentMethod(method) {
		return nil, nil, ErrInvalidPaymentMethod
	}

	lock := s.orderLock(orderID)
	lock.Lock()
	defer lock.Unlock()

	var (
		order   *models.Order
		payment *models.Payment
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.store.FindOrder(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		payment, err = s.recordPayment(tx, order, order.TotalAmount, method)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	utils.InfoLogger.Printf("%s settled, %s via %s", order.Reference(), utils.FormatCurrency(payment.Amount), method)
	return order, payment, nil
}

// replaceOrder handles the edit branch: the new item set entirely supersedes
// the persisted one, the stored total is updated, and the client is renamed
// when the operator changed it. Paying an already-paid order again is
// rejected here rather than recording a second payment.
func (s *CheckoutService) replaceOrder(tx *gorm.DB, orderID uint, clientName string, lines []CartLine, total float64) (*models.Order, error) {
	order, err := s.store.FindOrder(tx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if err := s.store.ReplaceItems(tx, order.ID, itemsFromLines(lines)); err != nil {
		return nil, err
	}

	order.TotalAmount = total
	if clientName != "" && order.Client.Name != clientName {
		order.Client.Name = clientName
	}
	if err := s.store.UpdateOrder(tx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// createOrder handles the new branch: walk-in client by default, order, and
// items inserted as one unit.
func (s *CheckoutService) createOrder(tx *gorm.DB, clientName string, lines []CartLine, total float64, isPaid bool) (*models.Order, error) {
	if clientName == "" {
		clientName = models.DefaultClientName
	}

	now := time.Now()
	client := models.Client{
		ID:   uuid.New().String(),
		Name: clientName,
	}
	order := &models.Order{
		CreatedAt:   now,
		UpdatedAt:   now,
		IsPaid:      isPaid,
		TotalAmount: total,
		ClientID:    client.ID,
		Client:      client,
		OrderItems:  itemsFromLines(lines),
	}

	if err := s.store.CreateOrder(tx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *CheckoutService) recordPayment(tx *gorm.DB, order *models.Order, amount float64, method string) (*models.Payment, error) {
	if order.IsPaid {
		return nil, ErrAlreadyPaid
	}

	now := time.Now()
	payment := &models.Payment{
		ID:            uuid.New().String(),
		OrderID:       order.ID,
		Amount:        amount,
		PaymentMethod: method,
		PaidAt:        now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.RecordPayment(tx, payment); err != nil {
		return nil, err
	}

	order.IsPaid = true
	return payment, nil
}

func itemsFromLines(lines []CartLine) []models.OrderItem {
	now := time.Now()
	items := make([]models.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	return items
}
