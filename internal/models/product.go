package models

import "time"

// DefaultProductIcon is used when a product is created without an icon.
const DefaultProductIcon = "⏣"

// Product is a sellable Robux tier.
type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Tier        string  `gorm:"size:100;not null" json:"tier"`
	RobuxAmount int     `gorm:"not null" json:"robux_amount"`
	Price       float64 `gorm:"not null" json:"price"`
	PriceLabel  string  `gorm:"size:50" json:"price_label"`
	Icon        string  `gorm:"size:10" json:"icon"`
	TotalSales  int     `gorm:"not null;default:0" json:"total_sales"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// InStock is derived at read time by comparing RobuxAmount against the
	// statistics singleton's CurrentRobux. Never persisted.
	InStock bool `gorm:"-" json:"in_stock"`
}

func (Product) TableName() string {
	return "products"
}
