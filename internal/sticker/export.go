package sticker

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jszwec/csvutil"

	"sticker-backend/internal/models"
)

// csvRow is one line of the sticker export.
type csvRow struct {
	ID        uint   `csv:"id"`
	Title     string `csv:"title"`
	SKU       string `csv:"sku"`
	Price     string `csv:"price"`
	Barcode   string `csv:"barcode"`
	Format    string `csv:"format"`
	Source    string `csv:"source"`
	Quantity  int    `csv:"quantity"`
	ImageURL  string `csv:"image_url"`
	CreatedAt string `csv:"created_at"`
}

func toCSVRow(r models.StickerRecord) csvRow {
	row := csvRow{
		ID:        r.ID,
		Title:     r.Title,
		SKU:       r.SKU,
		Barcode:   r.Barcode,
		Format:    string(r.Format),
		Source:    string(r.Source),
		Quantity:  r.Quantity,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if r.Price.Valid {
		row.Price = r.Price.Decimal.StringFixed(2)
	}
	if r.ImageURL != nil {
		row.ImageURL = *r.ImageURL
	}
	return row
}

// ExportCSV encodes the stickers as CSV with a header line.
func ExportCSV(recs []models.StickerRecord) ([]byte, error) {
	rows := make([]csvRow, len(recs))
	for i, r := range recs {
		rows[i] = toCSVRow(r)
	}
	return csvutil.Marshal(rows)
}

// GET /api/stickers/export.csv
func ExportCSVHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := List()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch sticker data")
		}
		data, err := ExportCSV(recs)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to export sticker data")
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="stickers.csv"`)
		return c.Send(data)
	}
}
