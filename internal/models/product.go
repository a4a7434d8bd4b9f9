package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices go over the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Name        string              `gorm:"size:200;not null" json:"name"`
	Description string              `gorm:"type:text" json:"description"`
	Price       decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"price"`
	Barcode     string              `gorm:"size:64;not null;uniqueIndex" json:"barcode"`
	Category    string              `gorm:"size:100" json:"category"`
	Stock       int                 `gorm:"not null;default:0" json:"stock"`
	CreatedAt   time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
