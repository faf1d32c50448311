package sales

import (
	"strconv"
	"time"

	"asador-backend/internal/models"
	"asador-backend/internal/money"
)

// Service gobierna el ciclo de vida de una venta persistida:
// activa -> cerrada (con conciliación de pago) y de vuelta con reabrir.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// newSaleID genera un folio derivado del reloj. Ordenable por tiempo y más que
// suficiente para una sola caja.
func (s *Service) newSaleID() string {
	return strconv.FormatInt(s.now().UnixMilli(), 10)
}

func (s *Service) ListActive() ([]models.ActiveSale, error) {
	return s.store.ListActive()
}

func (s *Service) ListClosed(limit int) ([]models.ClosedSale, error) {
	return s.store.ListClosed(limit)
}

// Create persiste el borrador como venta activa.
func (s *Service) Create(items models.SaleItems, total, deliveryFee float64) (*models.ActiveSale, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Reason: "una venta necesita al menos un item"}
	}
	sale := &models.ActiveSale{
		ID:          s.newSaleID(),
		Items:       items,
		Total:       money.Round2(total),
		DeliveryFee: money.Round2(deliveryFee),
		CreatedAt:   s.now(),
	}
	if err := s.store.InsertActive(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// Close cierra la venta si el dinero entregado cubre exactamente
// total + propina (con tolerancia de un centavo). Si no cuadra, la venta
// permanece activa sin mutación alguna.
func (s *Service) Close(id string, tip float64, breakdown models.PaymentBreakdown) (*models.ClosedSale, error) {
	if tip < 0 {
		return nil, &ValidationError{Reason: "la propina no puede ser negativa"}
	}
	for method, amount := range breakdown {
		if !models.ValidPaymentMethod(method) {
			return nil, &ValidationError{Reason: "método de pago desconocido: " + string(method)}
		}
		if amount < 0 {
			return nil, &ValidationError{Reason: "los montos de pago no pueden ser negativos"}
		}
	}

	active, err := s.store.GetActive(id)
	if err != nil {
		return nil, err
	}

	required := money.Add(active.Total, tip)
	amounts := make([]float64, 0, len(breakdown))
	for _, amount := range breakdown {
		amounts = append(amounts, amount)
	}
	paid := money.Sum(amounts...)

	if !money.EqualWithin(paid, required) {
		return nil, &PaymentMismatchError{Difference: money.Sub(required, paid)}
	}

	return s.store.MoveActiveToClosed(id, CloseFields{
		PaymentMethod:    PrimaryMethod(breakdown),
		PaymentBreakdown: normalizeBreakdown(breakdown),
		Tip:              money.Round2(tip),
		ClosedAt:         s.now(),
	})
}

// Reopen regresa una venta cerrada a la partición activa. La fecha de creación
// se reinicia y los campos de pago se descartan.
func (s *Service) Reopen(id string) (*models.ActiveSale, error) {
	return s.store.MoveClosedToActive(id, s.now())
}

func (s *Service) DeleteActive(id string) error {
	return s.store.DeleteActive(id)
}

func (s *Service) DeleteClosed(id string) error {
	return s.store.DeleteClosed(id)
}

// PrimaryMethod elige el método con mayor monto; los empates los gana el orden
// declarado (Efectivo > Transferencia > Otro).
func PrimaryMethod(breakdown models.PaymentBreakdown) models.PaymentMethod {
	best := models.PaymentCash
	bestAmount := -1.0
	for _, method := range models.PaymentMethods {
		if amount := breakdown[method]; amount > bestAmount {
			best = method
			bestAmount = amount
		}
	}
	return best
}

// normalizeBreakdown deja los tres métodos presentes y redondeados, como
// espera el reporteo.
func normalizeBreakdown(breakdown models.PaymentBreakdown) models.PaymentBreakdown {
	out := make(models.PaymentBreakdown, len(models.PaymentMethods))
	for _, method := range models.PaymentMethods {
		out[method] = money.Round2(breakdown[method])
	}
	return out
}
