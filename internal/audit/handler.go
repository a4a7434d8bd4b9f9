package audit

import (
	"errors"
	"log"

	"sticker-backend/internal/database"
	"sticker-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?entity_type=product&entity_id=1&limit=100
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}
		if entityID := c.QueryInt("entity_id"); entityID > 0 {
			dbq = dbq.Where("entity_id = ?", entityID)
		}

		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 1000 {
			limit = 100
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at desc").Order("id desc").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list audit logs")
		}
		return c.JSON(logs)
	}
}

// POST /api/audit-logs/:id/undo
func UndoAuditLogHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid log id")
		}

		if err := UndoLog(uint(id)); err != nil {
			switch {
			case database.IsNotFound(err):
				return fiber.NewError(fiber.StatusNotFound, "Audit log not found")
			case errors.Is(err, ErrAlreadyUndone):
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			log.Printf("Undo failed for audit log %d: %v", id, err)
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"success": true, "message": "Change undone"})
	}
}
