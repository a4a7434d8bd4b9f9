// Package label turns form input or imported spreadsheet rows into the
// ordered list of stickers to render, one instance per physical label.
package label

import (
	"math"

	"sticker-backend/internal/models"
)

// Form is the manual sticker form. Sizes are in millimetres, TextSize in px.
type Form struct {
	Title        string               `json:"title"`
	SKU          string               `json:"sku"`
	Price        string               `json:"price"`
	Barcode      string               `json:"barcode"`
	Format       models.BarcodeFormat `json:"format"`
	IncludePrice bool                 `json:"includePrice"`
	IncludeSKU   bool                 `json:"includeSku"`
	Copies       int                  `json:"copies"`

	LabelWidthMM  float64 `json:"labelWidthMm"`
	LabelHeightMM float64 `json:"labelHeightMm"`
	MarginMM      float64 `json:"marginMm"`
	TextSize      float64 `json:"textSize"`
}

func DefaultForm() Form {
	return Form{
		Title:         "Product Name",
		SKU:           "SKU-001",
		Price:         "9.99",
		Barcode:       "123456789012",
		Format:        models.FormatCode128,
		IncludePrice:  true,
		IncludeSKU:    true,
		Copies:        1,
		LabelWidthMM:  50,
		LabelHeightMM: 30,
		MarginMM:      3,
		TextSize:      12,
	}
}

// CopyCount is Copies with a floor of 1.
func (f Form) CopyCount() int {
	if f.Copies < 1 {
		return 1
	}
	return f.Copies
}

// Layout is the physical geometry shared by every label of a run.
type Layout struct {
	WidthMM    float64 `json:"width_mm"`
	HeightMM   float64 `json:"height_mm"`
	MarginMM   float64 `json:"margin_mm"`
	TextSizePx float64 `json:"text_size_px"`
}

func (f Form) Layout() Layout {
	return Layout{
		WidthMM:    nonNegative(f.LabelWidthMM),
		HeightMM:   nonNegative(f.LabelHeightMM),
		MarginMM:   nonNegative(f.MarginMM),
		TextSizePx: nonNegative(f.TextSize),
	}
}

// DefaultLayout matches DefaultForm.
func DefaultLayout() Layout {
	return DefaultForm().Layout()
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
