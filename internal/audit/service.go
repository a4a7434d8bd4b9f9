package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sticker-backend/internal/database"
	"sticker-backend/internal/models"
)

const (
	EntityProduct = "product"
	EntitySticker = "sticker"
)

var ErrAlreadyUndone = errors.New("this change has already been undone")

type LogOptions struct {
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// Snapshots are JSON text; absent ones are the JSON literal null.
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("could not write audit log: %w", err)
	}
	return nil
}

// UndoLog reverts the change recorded by a log entry and records the undo.
func UndoLog(logID uint) error {
	var entry models.AuditLog
	if err := database.DB.First(&entry, "id = ?", logID).Error; err != nil {
		return fmt.Errorf("log not found: %w", err)
	}

	if entry.IsUndone {
		return ErrAlreadyUndone
	}

	switch entry.Action {
	case models.AuditActionCreate:
		if err := deleteEntity(entry.EntityType, entry.EntityID); err != nil {
			return fmt.Errorf("could not delete entity: %w", err)
		}

	case models.AuditActionUpdate, models.AuditActionUpsert:
		// An upsert without a previous row was an insert.
		if entry.BeforeData == "null" {
			if err := deleteEntity(entry.EntityType, entry.EntityID); err != nil {
				return fmt.Errorf("could not delete entity: %w", err)
			}
			break
		}
		if err := restoreEntity(entry.EntityType, entry.BeforeData); err != nil {
			return fmt.Errorf("could not restore entity: %w", err)
		}

	case models.AuditActionDelete:
		if err := recreateEntity(entry.EntityType, entry.BeforeData); err != nil {
			return fmt.Errorf("could not recreate entity: %w", err)
		}

	default:
		return fmt.Errorf("%s changes cannot be undone", entry.Action)
	}

	now := time.Now()
	entry.IsUndone = true
	entry.UndoneAt = &now
	if err := database.DB.Save(&entry).Error; err != nil {
		return fmt.Errorf("could not update log: %w", err)
	}

	undoEntry := models.AuditLog{
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Action:      models.AuditActionUndo,
		Description: fmt.Sprintf("Undone: %s", entry.Description),
		BeforeData:  entry.AfterData,
		AfterData:   entry.BeforeData,
		Undone:      true,
	}
	if err := database.DB.Create(&undoEntry).Error; err != nil {
		return fmt.Errorf("could not write undo log: %w", err)
	}
	return nil
}

func deleteEntity(entityType string, entityID uint) error {
	switch entityType {
	case EntityProduct:
		return database.DB.Delete(&models.Product{}, "id = ?", entityID).Error
	case EntitySticker:
		return database.DB.Delete(&models.StickerRecord{}, "id = ?", entityID).Error
	default:
		return fmt.Errorf("unknown entity type: %s", entityType)
	}
}

// restoreEntity writes the snapshot back over the row with the same id.
func restoreEntity(entityType, dataJSON string) error {
	switch entityType {
	case EntityProduct:
		var p models.Product
		if err := json.Unmarshal([]byte(dataJSON), &p); err != nil {
			return err
		}
		return database.DB.Save(&p).Error
	case EntitySticker:
		var s models.StickerRecord
		if err := json.Unmarshal([]byte(dataJSON), &s); err != nil {
			return err
		}
		return database.DB.Save(&s).Error
	default:
		return fmt.Errorf("unknown entity type: %s", entityType)
	}
}

// recreateEntity inserts a deleted row again under a new id.
func recreateEntity(entityType, dataJSON string) error {
	switch entityType {
	case EntityProduct:
		var p models.Product
		if err := json.Unmarshal([]byte(dataJSON), &p); err != nil {
			return err
		}
		p.ID = 0
		return database.DB.Create(&p).Error
	case EntitySticker:
		var s models.StickerRecord
		if err := json.Unmarshal([]byte(dataJSON), &s); err != nil {
			return err
		}
		s.ID = 0
		return database.DB.Create(&s).Error
	default:
		return fmt.Errorf("unknown entity type: %s", entityType)
	}
}
