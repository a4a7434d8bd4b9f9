package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BarcodeFormat string

const (
	FormatCode128 BarcodeFormat = "CODE128"
	FormatEAN13   BarcodeFormat = "EAN13"
)

// Valid reports whether f is a symbology the renderer knows.
func (f BarcodeFormat) Valid() bool {
	return f == FormatCode128 || f == FormatEAN13
}

type StickerSource string

const (
	SourceManual StickerSource = "manual"
	SourceExcel  StickerSource = "excel"
)

// StickerRecord is one saved sticker. Barcode is the upsert key: saving the
// same barcode again overwrites the row.
type StickerRecord struct {
	ID        uint                `gorm:"primaryKey" json:"id"`
	Title     string              `gorm:"size:255" json:"title"`
	SKU       string              `gorm:"column:sku;size:100" json:"sku"`
	Price     decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"price"`
	Barcode   string              `gorm:"size:64;not null;uniqueIndex" json:"barcode"`
	Format    BarcodeFormat       `gorm:"size:20" json:"format"`
	Source    StickerSource       `gorm:"size:20" json:"source"`
	Quantity  int                 `gorm:"not null;default:1" json:"quantity"`
	ImageURL  *string             `gorm:"type:text" json:"image_url"`
	CreatedAt time.Time           `gorm:"index" json:"created_at"`
}

func (StickerRecord) TableName() string {
	return "barcode_stickers"
}
