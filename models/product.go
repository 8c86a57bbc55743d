package models

import "time"

type Product struct {
	ID         string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	CostPrice  float64         `gorm:"type:decimal(10,2);not null;default:0.00" json:"cost_price"`
	SellPrice  float64         `gorm:"type:decimal(10,2);not null" json:"sell_price"`
	// Tanpa default kolom: insert dengan false harus tersimpan apa adanya
	IsActive   bool            `gorm:"not null" json:"is_active"`
	CategoryID string          `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Category   ProductCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}
