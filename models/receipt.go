package models

import "time"

// Receipt is the printable record generated after a payment succeeds.
type Receipt struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `gorm:"not null;index" json:"order_id"`
	Order         Order     `gorm:"foreignKey:OrderID;references:ID" json:"order,omitempty"`
	PaymentID     string    `gorm:"type:varchar(36);not null;index" json:"payment_id"`
	Payment       Payment   `gorm:"foreignKey:PaymentID;references:ID" json:"payment,omitempty"`
	ReceiptNumber string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"receipt_number"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
