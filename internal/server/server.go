// Package server builds the HTTP API.
package server

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"sticker-backend/internal/audit"
	"sticker-backend/internal/catalog"
	"sticker-backend/internal/config"
	"sticker-backend/internal/printing"
	"sticker-backend/internal/sticker"
	"sticker-backend/internal/storage"
)

// Deps are the collaborators the routes need besides the database.
type Deps struct {
	Bucket storage.Bucket
	// FilesRoot is served under storage.FilesPrefix when non-empty.
	FilesRoot string
	// Signer is nil when print links are disabled.
	Signer *printing.Signer
	// AccessLog turns on the request logger.
	AccessLog bool
}

func errorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
		})
	}
	log.Println("Unexpected error:", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Unexpected server error",
	})
}

func NewApp(cfg *config.Config, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
		BodyLimit:    20 * 1024 * 1024,
	})

	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Origins(), ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.FilesRoot != "" {
		app.Static(storage.FilesPrefix, deps.FilesRoot)
	}

	api := app.Group("/api")

	// Products
	api.Get("/products", catalog.ListProductsHandler())
	api.Get("/products/barcode/:barcode", catalog.GetProductByBarcodeHandler())
	api.Get("/products/:id", catalog.GetProductHandler())
	api.Post("/products", catalog.CreateProductHandler())
	api.Put("/products/:id", catalog.UpdateProductHandler())
	api.Delete("/products/:id", catalog.DeleteProductHandler())

	// Stickers
	api.Post("/stickers/save", sticker.SaveStickerHandler())
	api.Post("/stickers/upload-image", sticker.UploadImageHandler(deps.Bucket))
	api.Get("/stickers/export.csv", sticker.ExportCSVHandler())
	api.Get("/stickers", sticker.ListStickersHandler())
	api.Delete("/stickers/:id", sticker.DeleteStickerHandler())

	// Print links
	api.Post("/print/jobs", sticker.CreatePrintJobHandler(deps.Signer, cfg.PublicBaseURL))
	api.Get("/print/:token", sticker.PrintDocumentHandler(deps.Signer))

	// Audit logs
	api.Get("/audit-logs", audit.ListAuditLogsHandler())
	api.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler())

	return app
}
