package sticker

import (
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"sticker-backend/internal/models"
	"sticker-backend/internal/storage"
)

// Sticker store errors go back as 400 with the store's own message.
func storeError(err error) error {
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

// POST /api/stickers/save
func SaveStickerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaveInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if strings.TrimSpace(body.Barcode) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Barcode is required")
		}

		rec, err := Upsert(body)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(fiber.Map{"success": true, "data": []models.StickerRecord{rec}})
	}
}

// GET /api/stickers
func ListStickersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := List()
		if err != nil {
			return storeError(err)
		}
		return c.JSON(fiber.Map{"success": true, "data": recs})
	}
}

// DELETE /api/stickers/:id
func DeleteStickerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := Delete(c.Params("id")); err != nil {
			return storeError(err)
		}
		return c.JSON(fiber.Map{"success": true, "message": "Sticker deleted"})
	}
}

// POST /api/stickers/upload-image
// multipart: file + the SaveInput fields. The image is stored at a key
// derived from the barcode, so a re-upload replaces it.
func UploadImageHandler(bucket storage.Bucket) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
		}

		in := SaveInput{
			Title:    c.FormValue("title"),
			SKU:      c.FormValue("sku"),
			Price:    c.FormValue("price"),
			Barcode:  strings.TrimSpace(c.FormValue("barcode")),
			Format:   c.FormValue("format", string(models.FormatCode128)),
			Source:   c.FormValue("source", string(models.SourceManual)),
			Quantity: c.FormValue("quantity", "1"),
		}
		if in.Barcode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Barcode is required")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to upload sticker image")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to upload sticker image")
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if contentType == "" || contentType == "application/octet-stream" {
			contentType = "image/png"
		}

		key := storage.StickerKey(in.Barcode)
		if err := bucket.Put(c.UserContext(), key, data, contentType); err != nil {
			log.Printf("Image upload failed for %s: %v", in.Barcode, err)
			return storeError(err)
		}
		in.ImageURL = bucket.PublicURL(key)

		rec, err := Upsert(in)
		if err != nil {
			return storeError(err)
		}
		return c.JSON(fiber.Map{
			"success":   true,
			"image_url": in.ImageURL,
			"data":      []models.StickerRecord{rec},
		})
	}
}
