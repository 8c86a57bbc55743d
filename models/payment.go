package models

import "time"

// Payment methods supported at the terminal
const (
	PaymentMethodCash       = "cash"
	PaymentMethodPix        = "pix"
	PaymentMethodDebitCard  = "debit_card"
	PaymentMethodCreditCard = "credit_card"
)

// Payment represents a settled payment for an order
type Payment struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID       uint      `gorm:"not null;index" json:"order_id"`
	Order         Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Amount        float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod string    `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	PaidAt        time.Time `gorm:"not null" json:"paid_at"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

// ValidPaymentMethod reports whether method is one of the supported tender
// types.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodPix, PaymentMethodDebitCard, PaymentMethodCreditCard:
		return true
	}
	return false
}
