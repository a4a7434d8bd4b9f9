package sheet

import "strings"

// ColumnMap ties each sticker field to a column name; "" means unmapped.
type ColumnMap struct {
	Title   string `json:"title"`
	SKU     string `json:"sku"`
	Price   string `json:"price"`
	Barcode string `json:"barcode"`
}

// Field names accepted by ColumnMap.With.
const (
	FieldTitle   = "title"
	FieldSKU     = "sku"
	FieldPrice   = "price"
	FieldBarcode = "barcode"
)

// Candidate header names per field, in priority order.
var (
	TitleCandidates   = []string{"title", "name", "product"}
	SKUCandidates     = []string{"sku", "code", "itemcode"}
	PriceCandidates   = []string{"price", "mrp", "cost"}
	BarcodeCandidates = []string{"barcode", "ean", "code128"}
)

// DetectColumns maps each field to the first header that equals one of its
// candidates, ignoring case. Candidate order wins over header order.
func DetectColumns(headers []string) ColumnMap {
	return ColumnMap{
		Title:   detectHeader(headers, TitleCandidates),
		SKU:     detectHeader(headers, SKUCandidates),
		Price:   detectHeader(headers, PriceCandidates),
		Barcode: detectHeader(headers, BarcodeCandidates),
	}
}

func detectHeader(headers, candidates []string) string {
	for _, c := range candidates {
		for _, h := range headers {
			if strings.EqualFold(h, c) {
				return h
			}
		}
	}
	return ""
}

// With returns a copy of m with field set to column. Unknown fields leave m
// unchanged and report false.
func (m ColumnMap) With(field, column string) (ColumnMap, bool) {
	switch field {
	case FieldTitle:
		m.Title = column
	case FieldSKU:
		m.SKU = column
	case FieldPrice:
		m.Price = column
	case FieldBarcode:
		m.Barcode = column
	default:
		return m, false
	}
	return m, true
}
