package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/pos-app/models"
)

// OrderRepository is the single component that touches order persistence.
// Every mutating method runs inside the caller-supplied transaction handle,
// so a failing step never leaves partial rows behind.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// FindOrder loads one order with its client eagerly loaded.
func (r *OrderRepository) FindOrder(tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	if err := tx.Preload("Client").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindOrderWithItems loads one order including its item set and the item
// products (used when re-hydrating a cart for editing).
func (r *OrderRepository) FindOrderWithItems(tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := tx.Preload("Client").
		Preload("OrderItems").
		Preload("OrderItems.Product").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder inserts the client (when new), the order, and its items as one
// unit through gorm's association handling.
func (r *OrderRepository) CreateOrder(tx *gorm.DB, order *models.Order) error {
	if err := tx.Create(order).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// ReplaceItems deletes every item currently owned by orderID and inserts
// items as fresh rows bound to it. No merge: a line missing from items is
// gone after the surrounding transaction commits.
func (r *OrderRepository) ReplaceItems(tx *gorm.DB, orderID uint, items []models.OrderItem) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}

	if len(items) == 0 {
		return nil
	}

	for i := range items {
		items[i].ID = 0
		items[i].OrderID = orderID
	}
	if err := tx.Create(&items).Error; err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}

// UpdateOrder persists changes to the order row (total, paid flag) and its
// client.
func (r *OrderRepository) UpdateOrder(tx *gorm.DB, order *models.Order) error {
	order.UpdatedAt = time.Now()
	if err := tx.Save(order).Error; err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if order.Client.ID != "" {
		if err := tx.Save(&order.Client).Error; err != nil {
			return fmt.Errorf("update client: %w", err)
		}
	}
	return nil
}

// RecordPayment inserts the payment row and flips the owning order's paid
// flag in the same transaction scope.
func (r *OrderRepository) RecordPayment(tx *gorm.DB, payment *models.Payment) error {
	if err := tx.Create(payment).Error; err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}

	err := tx.Model(&models.Order{}).
		Where("id = ?", payment.OrderID).
		Updates(map[string]interface{}{
			"is_paid":    true,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("mark order paid: %w", err)
	}
	return nil
}

// ListOpenOrders returns unpaid orders regardless of date, newest first.
func (r *OrderRepository) ListOpenOrders(db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	err := db.Preload("Client").
		Preload("OrderItems").
		Where("is_paid = ?", false).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list open orders: %w", err)
	}
	return orders, nil
}

// ListFinishedOrders returns paid orders created in [start, end), newest
// first.
func (r *OrderRepository) ListFinishedOrders(db *gorm.DB, start, end time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := db.Preload("Client").
		Preload("OrderItems").
		Where("is_paid = ? AND created_at >= ? AND created_at < ?", true, start, end).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list finished orders: %w", err)
	}
	return orders, nil
}
