package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"sticker-backend/internal/audit"
	"sticker-backend/internal/database"
	"sticker-backend/internal/models"
	"sticker-backend/internal/normalize"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductRequest is the body of create and update. Absent fields are left
// alone on update.
type ProductRequest struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Price       json.RawMessage `json:"price"`
	Barcode     *string         `json:"barcode"`
	Category    *string         `json:"category"`
	Stock       *int            `json:"stock"`
}

// price reports the requested price and whether the field was sent at all.
func (r ProductRequest) price() (decimal.NullDecimal, bool, error) {
	if len(r.Price) == 0 {
		return decimal.NullDecimal{}, false, nil
	}
	var v any
	if err := json.Unmarshal(r.Price, &v); err != nil {
		return decimal.NullDecimal{}, true, err
	}
	return normalize.Number(v), true, nil
}

func (r ProductRequest) apply(p *models.Product) error {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Barcode != nil {
		p.Barcode = strings.TrimSpace(*r.Barcode)
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	price, sent, err := r.price()
	if err != nil {
		return err
	}
	if sent {
		p.Price = price
	}
	return nil
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Order("created_at desc").Order("id desc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(products)
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return findProduct(c, "id = ?", id)
	}
}

// GET /api/products/barcode/:barcode
func GetProductByBarcodeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return findProduct(c, "barcode = ?", c.Params("barcode"))
	}
}

func findProduct(c *fiber.Ctx, query string, arg any) error {
	var p models.Product
	if err := database.DB.Where(query, arg).First(&p).Error; err != nil {
		if database.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(p)
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var p models.Product
		if err := body.apply(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid price")
		}
		if p.Name == "" || p.Barcode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and barcode are required")
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		writeLog(p.ID, models.AuditActionCreate, fmt.Sprintf("Product created: %s (%s)", p.Name, p.Barcode), nil, p)
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			if database.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Product not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		before := p

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if err := body.apply(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid price")
		}
		if p.Name == "" || p.Barcode == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and barcode cannot be empty")
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		writeLog(p.ID, models.AuditActionUpdate, fmt.Sprintf("Product updated: %s", p.Name), before, p)
		return c.JSON(p)
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		found := database.DB.First(&p, "id = ?", id).Error == nil

		if err := database.DB.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		if found {
			writeLog(p.ID, models.AuditActionDelete, fmt.Sprintf("Product deleted: %s", p.Name), p, nil)
		}
		return c.JSON(fiber.Map{"message": "Product deleted successfully"})
	}
}

func writeLog(id uint, action models.AuditAction, desc string, before, after any) {
	if err := audit.WriteLog(audit.LogOptions{
		EntityType:  audit.EntityProduct,
		EntityID:    id,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	}); err != nil {
		log.Printf("[WARN] %v", err)
	}
}
