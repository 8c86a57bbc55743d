package models

import "time"

// DefaultClientName is used when the operator does not pick a client
// ("walk-in" sale).
const DefaultClientName = "Walk-in Customer"

type Client struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Orders    []Order   `gorm:"foreignKey:ClientID" json:"orders,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
