package audit

import (
	"testing"

	"github.com/shopspring/decimal"

	"sticker-backend/internal/database"
	"sticker-backend/internal/database/dbtest"
	"sticker-backend/internal/models"
)

func lastLog(t *testing.T) models.AuditLog {
	t.Helper()
	var l models.AuditLog
	if err := database.DB.Order("id desc").First(&l).Error; err != nil {
		t.Fatalf("no audit log: %v", err)
	}
	return l
}

func TestUndoUpdateRestoresSnapshot(t *testing.T) {
	dbtest.UseMemory(t)

	p := models.Product{Name: "Tea", Barcode: "111", Price: decimal.NewNullDecimal(decimal.NewFromInt(40))}
	database.DB.Create(&p)
	before := p
	p.Name = "Green tea"
	database.DB.Save(&p)

	if err := WriteLog(LogOptions{EntityType: EntityProduct, EntityID: p.ID, Action: models.AuditActionUpdate, Before: before, After: p}); err != nil {
		t.Fatalf("WriteLog: %v", err)
	}
	if err := UndoLog(lastLog(t).ID); err != nil {
		t.Fatalf("UndoLog: %v", err)
	}

	var got models.Product
	database.DB.First(&got, p.ID)
	if got.Name != "Tea" {
		t.Errorf("name = %q, want Tea", got.Name)
	}
	if undo := lastLog(t); undo.Action != models.AuditActionUndo || !undo.Undone {
		t.Errorf("undo log = %+v", undo)
	}
}

func TestUndoDeleteRecreates(t *testing.T) {
	dbtest.UseMemory(t)

	rec := models.StickerRecord{Barcode: "555", Title: "Rice", Quantity: 2}
	database.DB.Create(&rec)
	database.DB.Delete(&rec)
	WriteLog(LogOptions{EntityType: EntitySticker, EntityID: rec.ID, Action: models.AuditActionDelete, Before: rec})

	if err := UndoLog(lastLog(t).ID); err != nil {
		t.Fatalf("UndoLog: %v", err)
	}

	var got models.StickerRecord
	if err := database.DB.Where("barcode = ?", "555").First(&got).Error; err != nil {
		t.Fatalf("sticker not recreated: %v", err)
	}
	if got.Title != "Rice" || got.Quantity != 2 {
		t.Errorf("recreated = %+v", got)
	}
}

func TestUndoUpsertInsertDeletes(t *testing.T) {
	dbtest.UseMemory(t)

	rec := models.StickerRecord{Barcode: "777", Quantity: 1}
	database.DB.Create(&rec)
	WriteLog(LogOptions{EntityType: EntitySticker, EntityID: rec.ID, Action: models.AuditActionUpsert, After: rec})
	id := lastLog(t).ID

	if err := UndoLog(id); err != nil {
		t.Fatalf("UndoLog: %v", err)
	}
	var n int64
	database.DB.Model(&models.StickerRecord{}).Count(&n)
	if n != 0 {
		t.Errorf("%d stickers left", n)
	}
	if err := UndoLog(id); err != ErrAlreadyUndone {
		t.Errorf("second undo err = %v", err)
	}
}
