package models

import (
	"fmt"
	"time"
)

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time   `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
	IsPaid      bool        `gorm:"not null;default:false;index" json:"is_paid"`
	TotalAmount float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	ClientID    string      `gorm:"type:varchar(36);not null;index" json:"client_id"`
	Client      Client      `gorm:"foreignKey:ClientID;references:ID" json:"client"`
	OrderItems  []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	Payments    []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// Reference returns the human-readable order identifier used in
// confirmation messages and receipts.
func (o *Order) Reference() string {
	return fmt.Sprintf("Order #%d", o.ID)
}
