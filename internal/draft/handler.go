package draft

import (
	"errors"

	"asador-backend/internal/menu"
	"asador-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// DefaultTerminal se usa cuando el cliente no manda X-Terminal-ID; un puesto
// con una sola caja nunca necesita más.
const DefaultTerminal = "caja"

// Saver persiste el borrador como venta activa al guardarlo.
type Saver interface {
	Create(items models.SaleItems, total, deliveryFee float64) (*models.ActiveSale, error)
}

type AddItemRequest struct {
	CategoryID string   `json:"category_id"`
	ItemID     string   `json:"item_id"`
	Amount     *float64 `json:"amount,omitempty"`
	Option     string   `json:"option,omitempty"`
}

type ClearDraftRequest struct {
	Confirm bool `json:"confirm"`
}

type DraftResponse struct {
	Items   []Line   `json:"items"`
	Total   float64  `json:"total"`
	Notices []Notice `json:"notices,omitempty"`
}

func terminalID(c *fiber.Ctx) string {
	if id := c.Get("X-Terminal-ID"); id != "" {
		return id
	}
	return DefaultTerminal
}

func respond(c *fiber.Ctx, d *Draft, notifier Notifier) error {
	notices := d.DrainNotices()
	if notifier != nil {
		for _, n := range notices {
			notifier.Notify(n.Message, n.Level)
		}
	}
	return c.JSON(DraftResponse{
		Items:   d.Lines(),
		Total:   d.Total(),
		Notices: notices,
	})
}

func mapEngineError(err error) error {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.NewError(fiber.StatusBadRequest, verr.Reason)
	case errors.Is(err, menu.ErrItemNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado en el menú")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar la venta actual")
	}
}

// GET /api/draft
func GetDraftHandler(mgr *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return respond(c, mgr.Get(terminalID(c)), nil)
	}
}

// POST /api/draft/items
func AddItemHandler(mgr *Manager, notifier Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		if body.CategoryID == "" || body.ItemID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "category_id e item_id son obligatorios")
		}

		d := mgr.Get(terminalID(c))
		if _, err := d.AddItem(body.CategoryID, body.ItemID, AddOptions{Amount: body.Amount, Option: body.Option}); err != nil {
			return mapEngineError(err)
		}
		return respond(c, d, notifier)
	}
}

// POST /api/draft/items/:lineId/increment
func IncrementItemHandler(mgr *Manager, notifier Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := mgr.Get(terminalID(c))
		if _, err := d.IncrementLine(c.Params("lineId")); err != nil {
			return mapEngineError(err)
		}
		return respond(c, d, notifier)
	}
}

// POST /api/draft/items/:lineId/decrement
func DecrementItemHandler(mgr *Manager, notifier Notifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := mgr.Get(terminalID(c))
		if _, err := d.DecrementLine(c.Params("lineId")); err != nil {
			return mapEngineError(err)
		}
		return respond(c, d, notifier)
	}
}

// DELETE /api/draft/items/:lineId
func RemoveItemHandler(mgr *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := mgr.Get(terminalID(c))
		if err := d.RemoveLine(c.Params("lineId")); err != nil {
			return mapEngineError(err)
		}
		return respond(c, d, nil)
	}
}

// DELETE /api/draft: con líneas capturadas exige confirmación explícita.
func ClearDraftHandler(mgr *Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := mgr.Get(terminalID(c))

		if !d.IsEmpty() {
			var body ClearDraftRequest
			_ = c.BodyParser(&body)
			if !body.Confirm && c.Query("confirm") != "true" {
				return fiber.NewError(fiber.StatusConflict, "La venta actual tiene items; confirma antes de limpiar")
			}
		}

		d.Clear()
		return respond(c, d, nil)
	}
}

// POST /api/draft/save: convierte el borrador en venta activa y lo vacía.
func SaveDraftHandler(mgr *Manager, saver Saver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		d := mgr.Get(terminalID(c))
		if d.IsEmpty() {
			return fiber.NewError(fiber.StatusBadRequest, "Agrega al menos un item a la venta")
		}

		items, total := d.Snapshot()
		sale, err := saver.Create(items, total, 0)
		if err != nil {
			// El borrador se conserva: el cajero no pierde la captura y puede
			// reintentar.
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la venta")
		}

		d.Clear()
		return c.Status(fiber.StatusCreated).JSON(sale)
	}
}
