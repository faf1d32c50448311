package sales

import (
	"errors"
	"log"

	"asador-backend/internal/audit"
	"asador-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CloseSaleRequest struct {
	SaleID           string             `json:"sale_id"`
	Tip              float64            `json:"tip"`
	PaymentBreakdown map[string]float64 `json:"payment_breakdown"`
}

type ReopenSaleRequest struct {
	SaleID string `json:"sale_id"`
}

func mapServiceError(c *fiber.Ctx, err error) error {
	var verr *ValidationError
	var perr *PaymentMismatchError
	switch {
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Reason)
	case errors.As(err, &perr):
		// El monto firmado le dice a la caja cuánto falta (o sobra).
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      perr.Error(),
			"difference": perr.Difference,
		})
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Venta no encontrada")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo completar la operación")
	}
}

func writeAudit(opts audit.LogOptions) {
	if err := audit.WriteLog(opts); err != nil {
		log.Printf("No se pudo escribir el audit log: %v", err)
	}
}

// GET /api/sales-active
func ListActiveHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.ListActive()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las ventas activas")
		}
		return c.JSON(out)
	}
}

// GET /api/sales-closed?limit=100
func ListClosedHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		if limit < 0 {
			limit = 0
		}
		out, err := svc.ListClosed(limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar las ventas cerradas")
		}
		return c.JSON(out)
	}
}

// POST /api/sales-closed: cierra una venta activa con desglose de pago.
func CloseHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CloseSaleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.SaleID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "sale_id es obligatorio")
		}

		breakdown := make(models.PaymentBreakdown, len(body.PaymentBreakdown))
		for method, amount := range body.PaymentBreakdown {
			breakdown[models.PaymentMethod(method)] = amount
		}

		closed, err := svc.Close(body.SaleID, body.Tip, breakdown)
		if err != nil {
			return mapServiceError(c, err)
		}

		writeAudit(audit.LogOptions{
			EntityType:  "sale",
			EntityID:    closed.ID,
			Action:      models.AuditActionClose,
			Description: "Venta cerrada - Pago: " + string(closed.PaymentMethod),
			After:       closed,
		})

		return c.JSON(closed)
	}
}

// POST /api/sales-active/reopen: regresa una venta cerrada a activas.
func ReopenHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ReopenSaleRequest
		if err := c.BodyParser(&body); err != nil || body.SaleID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "sale_id es obligatorio")
		}

		reopened, err := svc.Reopen(body.SaleID)
		if err != nil {
			return mapServiceError(c, err)
		}

		writeAudit(audit.LogOptions{
			EntityType:  "sale",
			EntityID:    reopened.ID,
			Action:      models.AuditActionReopen,
			Description: "Venta reabierta",
			After:       reopened,
		})

		return c.JSON(reopened)
	}
}

// DELETE /api/sales-active/:id
func DeleteActiveHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := svc.DeleteActive(id); err != nil {
			return mapServiceError(c, err)
		}

		writeAudit(audit.LogOptions{
			EntityType:  "sale",
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "Venta activa eliminada",
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DELETE /api/sales-closed/:id
func DeleteClosedHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := svc.DeleteClosed(id); err != nil {
			return mapServiceError(c, err)
		}

		writeAudit(audit.LogOptions{
			EntityType:  "sale",
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "Venta cerrada eliminada",
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}
