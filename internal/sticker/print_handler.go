package sticker

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sticker-backend/internal/label"
	"sticker-backend/internal/models"
	"sticker-backend/internal/printing"
	"sticker-backend/internal/render"
)

type printJobRequest struct {
	Barcodes []string      `json:"barcodes"`
	Layout   *label.Layout `json:"layout"`
	Copies   int           `json:"copies"`
}

// POST /api/print/jobs
// Issues a signed link that prints the given saved stickers.
func CreatePrintJobHandler(signer *printing.Signer, baseURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if signer == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Print links are disabled")
		}

		var body printJobRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		barcodes := make([]string, 0, len(body.Barcodes))
		for _, b := range body.Barcodes {
			if b = strings.TrimSpace(b); b != "" {
				barcodes = append(barcodes, b)
			}
		}
		if len(barcodes) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "At least one barcode is required")
		}
		if body.Copies < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Copies cannot be negative")
		}

		layout := label.DefaultLayout()
		if body.Layout != nil {
			layout = *body.Layout
		}

		token, err := signer.Sign(printing.Job{Barcodes: barcodes, Layout: layout, Copies: body.Copies})
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"token": token,
			"url":   strings.TrimRight(baseURL, "/") + "/api/print/" + token,
		})
	}
}

// GET /api/print/:token?autoprint=false
func PrintDocumentHandler(signer *printing.Signer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if signer == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Print links are disabled")
		}

		job, err := signer.Parse(c.Params("token"))
		if err != nil {
			if errors.Is(err, printing.ErrInvalidLink) {
				return fiber.NewError(fiber.StatusBadRequest, printing.ErrInvalidLink.Error())
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		recs, err := ByBarcodes(job.Barcodes)
		if err != nil {
			return storeError(err)
		}

		insts := JobInstances(job, recs)
		if len(insts) == 0 {
			return fiber.NewError(fiber.StatusNotFound, "No saved stickers for this link")
		}

		nodes, err := render.New(job.Layout).Nodes(insts)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		doc, err := printing.Document(nodes, job.Layout, printing.Options{AutoPrint: c.QueryBool("autoprint", true)})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(doc)
	}
}

// JobInstances expands a print job into labels in the job's barcode order.
// Barcodes with no saved sticker are skipped.
func JobInstances(job printing.Job, recs map[string]models.StickerRecord) []label.Instance {
	var out []label.Instance
	for i, b := range job.Barcodes {
		rec, ok := recs[b]
		if !ok {
			continue
		}
		copies := job.Copies
		if copies <= 0 {
			copies = max(rec.Quantity, 1)
		}
		inst := RecordInstance(rec)
		inst.Row = i
		for range copies {
			out = append(out, inst)
		}
	}
	return out
}

// RecordInstance is the label a saved sticker prints as.
func RecordInstance(rec models.StickerRecord) label.Instance {
	item := label.Item{Title: rec.Title, SKU: rec.SKU, Barcode: rec.Barcode}
	if rec.Price.Valid {
		item.Price = rec.Price.Decimal.StringFixed(2)
	}
	format := rec.Format
	if format == "" {
		format = models.FormatCode128
	}
	return label.Instance{Item: item, Format: format, Source: rec.Source}
}
