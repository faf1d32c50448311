package menu

import (
	"errors"
	"strings"

	"asador-backend/internal/database"
	"asador-backend/internal/models"
	"asador-backend/internal/money"

	"gorm.io/gorm"
)

var ErrItemNotFound = errors.New("producto no encontrado en el menú")

// Catalog resuelve consultas de menú para el motor de ventas. Es de sólo
// lectura; las ediciones pasan por los handlers de administración.
type Catalog struct{}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) GetItem(categoryID, itemID string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := database.DB.First(&item, "id = ? AND category_id = ?", itemID, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindBundleCounterpart busca en la misma categoría un paquete de `quantity`
// piezas del producto (ej. "Taco" -> "Taco (2 pzas)") cuyo precio por pieza sea
// estrictamente menor al precio unitario normal. Si el paquete no abarata, no
// hay promoción que aplicar.
func (c *Catalog) FindBundleCounterpart(categoryID, itemName string, unitPrice float64, quantity int) *models.MenuItem {
	items, err := c.categoryItems(categoryID)
	if err != nil {
		return nil
	}
	return bundleCounterpartIn(items, itemName, unitPrice, quantity)
}

// FindPlainCounterpart busca el producto suelto (precio estándar, disponible)
// con el que se revierte una línea de paquete al bajar a una pieza.
func (c *Catalog) FindPlainCounterpart(categoryID, itemName string) *models.MenuItem {
	items, err := c.categoryItems(categoryID)
	if err != nil {
		return nil
	}
	return plainCounterpartIn(items, itemName)
}

func (c *Catalog) categoryItems(categoryID string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := database.DB.Where("category_id = ?", categoryID).Order("position asc, id asc").Find(&items).Error
	return items, err
}

func bundleCounterpartIn(items []models.MenuItem, itemName string, unitPrice float64, quantity int) *models.MenuItem {
	regular := money.Mul(unitPrice, quantity)
	for i := range items {
		it := &items[i]
		if !it.Available || it.PricingMode != models.PricingBundle || it.BundleSize != quantity {
			continue
		}
		if !strings.HasPrefix(it.Name, itemName) {
			continue
		}
		// El paquete sólo aplica si de verdad sale más barato que N sueltos.
		if money.Less(it.Price, regular) {
			return it
		}
	}
	return nil
}

func plainCounterpartIn(items []models.MenuItem, itemName string) *models.MenuItem {
	for i := range items {
		it := &items[i]
		if !it.Available || it.PricingMode != models.PricingStandard {
			continue
		}
		if it.Name == itemName {
			return it
		}
	}
	return nil
}
