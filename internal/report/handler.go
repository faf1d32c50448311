package report

import (
	"fmt"
	"time"

	"asador-backend/internal/database"
	"asador-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SummaryResponse struct {
	Period string    `json:"period"`
	From   time.Time `json:"from,omitempty"`
	To     time.Time `json:"to,omitempty"`
	Summary
}

// resolveRange acepta ?period=month o un rango explícito ?from=...&to=...
func resolveRange(c *fiber.Ctx) (Period, time.Time, time.Time, bool, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr != "" || toStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return "", time.Time{}, time.Time{}, false, fiber.NewError(fiber.StatusBadRequest, "from inválido, usa formato YYYY-MM-DD")
		}
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return "", time.Time{}, time.Time{}, false, fiber.NewError(fiber.StatusBadRequest, "to inválido, usa formato YYYY-MM-DD")
		}
		return "custom", from, to.AddDate(0, 0, 1).Add(-time.Nanosecond), true, nil
	}

	period := Period(c.Query("period", string(PeriodMonth)))
	if period == PeriodAll {
		return period, time.Time{}, time.Time{}, false, nil
	}
	start, end, ok := PeriodRange(period, time.Now())
	if !ok {
		return "", time.Time{}, time.Time{}, false, fiber.NewError(fiber.StatusBadRequest, "Periodo desconocido")
	}
	return period, start, end, true, nil
}

func fetchRows(bounded bool, from, to time.Time) ([]models.ClosedSale, []models.Expense, error) {
	salesQ := database.DB.Model(&models.ClosedSale{}).Order("closed_at desc")
	expensesQ := database.DB.Model(&models.Expense{}).Order("date desc")
	if bounded {
		salesQ = salesQ.Where("closed_at BETWEEN ? AND ?", from, to)
		expensesQ = expensesQ.Where("date BETWEEN ? AND ?", from, to)
	}

	var sales []models.ClosedSale
	if err := salesQ.Find(&sales).Error; err != nil {
		return nil, nil, err
	}
	var expenses []models.Expense
	if err := expensesQ.Find(&expenses).Error; err != nil {
		return nil, nil, err
	}
	return sales, expenses, nil
}

// GET /api/reports/summary?period=month
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period, from, to, bounded, err := resolveRange(c)
		if err != nil {
			return err
		}

		sales, expenses, err := fetchRows(bounded, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo calcular el resumen")
		}

		resp := SummaryResponse{
			Period:  string(period),
			Summary: Summarize(sales, expenses),
		}
		if bounded {
			resp.From = from
			resp.To = to
		}
		return c.JSON(resp)
	}
}

// GET /api/reports/export?period=month: descarga el reporte CSV.
func ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period, from, to, bounded, err := resolveRange(c)
		if err != nil {
			return err
		}

		sales, expenses, err := fetchRows(bounded, from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el reporte")
		}

		now := time.Now()
		csv := BuildCSV(sales, expenses, now.Format("02/01/2006 15:04"))
		filename := fmt.Sprintf("reporte_%s_%s.csv", period, now.Format("2006-01-02"))

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.SendString(csv)
	}
}
