package expense

import (
	"log"
	"strconv"
	"strings"
	"time"

	"asador-backend/internal/audit"
	"asador-backend/internal/database"
	"asador-backend/internal/models"
	"asador-backend/internal/money"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateExpenseRequest struct {
	Date        string  `json:"date"` // "2025-12-09"
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

type UpdateExpenseRequest struct {
	Date        *string  `json:"date"`
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
}

type ExpenseResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
}

func toResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Date:        e.Date.Format("2006-01-02"),
		Description: e.Description,
		Amount:      e.Amount,
		Category:    string(e.Category),
	}
}

// GET /api/expenses?from=...&to=...&category=...
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Expense{})

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from inválido, usa formato YYYY-MM-DD")
			}
			dbq = dbq.Where("date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to inválido, usa formato YYYY-MM-DD")
			}
			dbq = dbq.Where("date <= ?", to)
		}
		if cat := c.Query("category"); cat != "" {
			if !models.ValidExpenseCategory(models.ExpenseCategory(cat)) {
				return fiber.NewError(fiber.StatusBadRequest, "Categoría de gasto desconocida")
			}
			dbq = dbq.Where("category = ?", cat)
		}

		var rows []models.Expense
		if err := dbq.Order("date desc, created_at desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los gastos")
		}

		resp := make([]ExpenseResponse, 0, len(rows))
		for i := range rows {
			resp = append(resp, toResponse(&rows[i]))
		}
		return c.JSON(resp)
	}
}

// POST /api/expenses
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		body.Description = strings.TrimSpace(body.Description)
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El monto debe ser mayor a cero")
		}
		if !models.ValidExpenseCategory(models.ExpenseCategory(body.Category)) {
			return fiber.NewError(fiber.StatusBadRequest, "Categoría de gasto desconocida")
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "La fecha debe tener formato YYYY-MM-DD")
		}

		exp := models.Expense{
			ID:          strconv.FormatInt(time.Now().UnixMilli(), 10),
			Date:        date,
			Description: body.Description,
			Amount:      money.Round2(body.Amount),
			Category:    models.ExpenseCategory(body.Category),
		}
		if err := database.DB.Create(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar el gasto")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionCreate,
			Description: "Gasto registrado: " + string(exp.Category),
			After:       exp,
		}); logErr != nil {
			log.Printf("No se pudo escribir el audit log: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&exp))
	}
}

// PUT /api/expenses/:id
func UpdateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var exp models.Expense
		if err := database.DB.First(&exp, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gasto no encontrado")
		}
		before := exp

		var body UpdateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if body.Date != nil {
			date, err := time.Parse("2006-01-02", *body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "La fecha debe tener formato YYYY-MM-DD")
			}
			exp.Date = date
		}
		if body.Description != nil {
			exp.Description = strings.TrimSpace(*body.Description)
		}
		if body.Amount != nil {
			if *body.Amount <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "El monto debe ser mayor a cero")
			}
			exp.Amount = money.Round2(*body.Amount)
		}
		if body.Category != nil {
			if !models.ValidExpenseCategory(models.ExpenseCategory(*body.Category)) {
				return fiber.NewError(fiber.StatusBadRequest, "Categoría de gasto desconocida")
			}
			exp.Category = models.ExpenseCategory(*body.Category)
		}

		if err := database.DB.Save(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el gasto")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			EntityType:  "expense",
			EntityID:    exp.ID,
			Action:      models.AuditActionUpdate,
			Description: "Gasto actualizado",
			Before:      before,
			After:       exp,
		}); logErr != nil {
			log.Printf("No se pudo escribir el audit log: %v", logErr)
		}

		return c.JSON(toResponse(&exp))
	}
}

// DELETE /api/expenses/:id
func DeleteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var exp models.Expense
		if err := database.DB.First(&exp, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "Gasto no encontrado")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el gasto")
		}

		if err := database.DB.Delete(&models.Expense{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el gasto")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			EntityType:  "expense",
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "Gasto eliminado",
			Before:      exp,
		}); logErr != nil {
			log.Printf("No se pudo escribir el audit log: %v", logErr)
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
