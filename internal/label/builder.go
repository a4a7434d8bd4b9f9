package label

import (
	"strings"

	"sticker-backend/internal/models"
	"sticker-backend/internal/sheet"
)

// Item is the normalized text of one sticker.
type Item struct {
	Title   string `json:"title"`
	SKU     string `json:"sku"`
	Price   string `json:"price"`
	Barcode string `json:"barcode"`
}

// Instance is one physical label. Empty text fields are not drawn.
type Instance struct {
	Item
	Format models.BarcodeFormat `json:"format"`
	Source models.StickerSource `json:"source"`
	// Row is the source item's position; every copy of an item shares it.
	Row int `json:"row"`
}

// ManualInstances returns exactly CopyCount identical labels for the form.
func ManualInstances(f Form) []Instance {
	it := Item{Title: f.Title, Barcode: f.Barcode}
	if f.IncludeSKU {
		it.SKU = f.SKU
	}
	if f.IncludePrice {
		it.Price = f.Price
	}

	n := f.CopyCount()
	out := make([]Instance, n)
	for i := range out {
		out[i] = Instance{Item: it, Format: f.Format, Source: models.SourceManual}
	}
	return out
}

// Items applies the column map to rows. Rows whose barcode cell is empty or
// whitespace are dropped without error.
func Items(rows []sheet.Row, cm sheet.ColumnMap) []Item {
	items := make([]Item, 0, len(rows))
	for _, r := range rows {
		barcode := strings.TrimSpace(r.Value(cm.Barcode))
		if barcode == "" {
			continue
		}
		items = append(items, Item{
			Title:   r.Value(cm.Title),
			SKU:     strings.TrimSpace(r.Value(cm.SKU)),
			Price:   strings.TrimSpace(r.Value(cm.Price)),
			Barcode: barcode,
		})
	}
	return items
}

// SheetInstances emits copies consecutive labels per item, keeping item
// order.
func SheetInstances(items []Item, copies int, format models.BarcodeFormat) []Instance {
	if copies < 1 {
		copies = 1
	}
	out := make([]Instance, 0, len(items)*copies)
	for i, it := range items {
		for c := 0; c < copies; c++ {
			out = append(out, Instance{Item: it, Format: format, Source: models.SourceExcel, Row: i})
		}
	}
	return out
}
