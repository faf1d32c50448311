package sales

import (
	"errors"
	"fmt"
)

// ErrNotFound: la venta no está en la partición esperada (ya se cerró, se
// reabrió o se eliminó desde otra sesión).
var ErrNotFound = errors.New("venta no encontrada")

// ValidationError rechaza la operación sin tocar la venta.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// PaymentMismatchError: el dinero entregado no cubre exactamente total más
// propina. Difference es lo requerido menos lo pagado: positivo falta dinero,
// negativo sobra.
type PaymentMismatchError struct {
	Difference float64
}

func (e *PaymentMismatchError) Error() string {
	if e.Difference > 0 {
		return fmt.Sprintf("el pago no cuadra: faltan $%.2f", e.Difference)
	}
	return fmt.Sprintf("el pago no cuadra: sobran $%.2f", -e.Difference)
}
