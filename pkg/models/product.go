package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is owned by the catalog; this module only reads it.
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SellerID  uint            `gorm:"not null;index" json:"seller"`
	Name      string          `gorm:"type:varchar(200);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
