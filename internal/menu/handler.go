package menu

import (
	"log"
	"strings"

	"asador-backend/internal/audit"
	"asador-backend/internal/database"
	"asador-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type MenuResponse struct {
	Categories []models.MenuCategory `json:"categories"`
}

type SaveMenuRequest struct {
	Categories []models.MenuCategory `json:"categories"`
}

type ToggleAvailabilityRequest struct {
	Available *bool `json:"available"`
}

// GET /api/menu
func GetMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cats []models.MenuCategory
		err := database.DB.
			Preload("Items", func(db *gorm.DB) *gorm.DB {
				return db.Order("position asc, id asc")
			}).
			Order("position asc, id asc").
			Find(&cats).Error
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo cargar el menú")
		}
		return c.JSON(MenuResponse{Categories: cats})
	}
}

// PUT /api/menu: reemplaza el menú completo con la versión editada.
func SaveMenuHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SaveMenuRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		for ci := range body.Categories {
			cat := &body.Categories[ci]
			cat.ID = strings.TrimSpace(cat.ID)
			cat.Name = strings.TrimSpace(cat.Name)
			if cat.ID == "" || cat.Name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Toda categoría necesita id y nombre")
			}
			cat.Position = ci
			for ii := range cat.Items {
				it := &cat.Items[ii]
				it.ID = strings.TrimSpace(it.ID)
				it.Name = strings.TrimSpace(it.Name)
				if it.ID == "" || it.Name == "" {
					return fiber.NewError(fiber.StatusBadRequest, "Todo producto necesita id y nombre")
				}
				if it.PricingMode == "" {
					it.PricingMode = models.PricingStandard
				}
				if it.Price < 0 {
					return fiber.NewError(fiber.StatusBadRequest, "El precio no puede ser negativo")
				}
				if it.PricingMode == models.PricingBundle && it.BundleSize < 2 {
					return fiber.NewError(fiber.StatusBadRequest, "Un paquete debe ser de al menos 2 piezas")
				}
				if it.PricingMode == models.PricingMultiOption && len(it.Options) == 0 {
					return fiber.NewError(fiber.StatusBadRequest, "Un producto con opciones necesita al menos una opción")
				}
				it.CategoryID = cat.ID
				it.Position = ii
			}
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("1 = 1").Delete(&models.MenuItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("1 = 1").Delete(&models.MenuCategory{}).Error; err != nil {
				return err
			}
			for _, cat := range body.Categories {
				if err := tx.Create(&cat).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el menú")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			EntityType:  "menu",
			EntityID:    "default",
			Action:      models.AuditActionUpdate,
			Description: "Menú actualizado",
			After:       body.Categories,
		}); logErr != nil {
			log.Printf("No se pudo escribir el audit log: %v", logErr)
		}

		return c.JSON(MenuResponse{Categories: body.Categories})
	}
}

// PATCH /api/menu/items/:id/availability
func ToggleItemAvailabilityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body ToggleAvailabilityRequest
		if err := c.BodyParser(&body); err != nil || body.Available == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Se requiere el campo available")
		}

		var item models.MenuItem
		if err := database.DB.First(&item, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}

		item.Available = *body.Available
		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el producto")
		}

		return c.JSON(item)
	}
}
