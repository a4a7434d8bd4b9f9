// Package sticker stores generated sticker records and their images, keyed on
// barcode.
package sticker

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm/clause"

	"sticker-backend/internal/audit"
	"sticker-backend/internal/database"
	"sticker-backend/internal/models"
	"sticker-backend/internal/normalize"
)

// SaveInput is the metadata of one sticker as clients send it. Price and
// Quantity arrive as numbers or strings and are normalized on save.
type SaveInput struct {
	Title    string `json:"title"`
	SKU      string `json:"sku"`
	Price    any    `json:"price"`
	Barcode  string `json:"barcode"`
	Format   string `json:"format"`
	Source   string `json:"source"`
	Quantity any    `json:"quantity"`
	ImageURL string `json:"image_url"`
}

func (in SaveInput) record(now time.Time) models.StickerRecord {
	rec := models.StickerRecord{
		Title:     in.Title,
		SKU:       in.SKU,
		Price:     normalize.Number(in.Price),
		Barcode:   strings.TrimSpace(in.Barcode),
		Format:    models.BarcodeFormat(in.Format),
		Source:    models.StickerSource(in.Source),
		Quantity:  normalize.Quantity(in.Quantity),
		CreatedAt: now,
	}
	if in.ImageURL != "" {
		url := in.ImageURL
		rec.ImageURL = &url
	}
	return rec
}

// upsertColumns are overwritten when the barcode already exists. created_at
// is among them so a re-save moves the sticker to the top of the list.
var upsertColumns = []string{"title", "sku", "price", "format", "source", "quantity", "image_url", "created_at"}

// Upsert inserts the sticker or overwrites the row with the same barcode and
// returns the stored row.
func Upsert(in SaveInput) (models.StickerRecord, error) {
	rec := in.record(time.Now())
	if rec.Barcode == "" {
		return models.StickerRecord{}, fmt.Errorf("barcode is required")
	}

	var before *models.StickerRecord
	var existing models.StickerRecord
	if err := database.DB.Where("barcode = ?", rec.Barcode).First(&existing).Error; err == nil {
		before = &existing
	}

	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "barcode"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(&rec).Error
	if err != nil {
		return models.StickerRecord{}, err
	}

	var saved models.StickerRecord
	if err := database.DB.Where("barcode = ?", rec.Barcode).First(&saved).Error; err != nil {
		return models.StickerRecord{}, err
	}

	var beforeSnap any
	if before != nil {
		beforeSnap = *before
	}
	writeLog(saved.ID, models.AuditActionUpsert, fmt.Sprintf("Sticker saved: %s", saved.Barcode), beforeSnap, saved)

	return saved, nil
}

// List returns every sticker, newest first.
func List() ([]models.StickerRecord, error) {
	var recs []models.StickerRecord
	err := database.DB.Order("created_at desc").Order("id desc").Find(&recs).Error
	return recs, err
}

// ByBarcodes returns the stickers with the given barcodes, keyed by barcode.
func ByBarcodes(barcodes []string) (map[string]models.StickerRecord, error) {
	var recs []models.StickerRecord
	if err := database.DB.Where("barcode IN ?", barcodes).Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make(map[string]models.StickerRecord, len(recs))
	for _, r := range recs {
		out[r.Barcode] = r
	}
	return out, nil
}

// Delete removes the sticker with id. A missing row is not an error.
func Delete(id string) error {
	var rec models.StickerRecord
	found := database.DB.First(&rec, "id = ?", id).Error == nil

	if err := database.DB.Delete(&models.StickerRecord{}, "id = ?", id).Error; err != nil {
		return err
	}
	if found {
		writeLog(rec.ID, models.AuditActionDelete, fmt.Sprintf("Sticker deleted: %s", rec.Barcode), rec, nil)
	}
	return nil
}

func writeLog(id uint, action models.AuditAction, desc string, before, after any) {
	if err := audit.WriteLog(audit.LogOptions{
		EntityType:  audit.EntitySticker,
		EntityID:    id,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	}); err != nil {
		log.Printf("[WARN] %v", err)
	}
}
