// Package money concentra la aritmética de dinero en MXN con dos decimales.
// Los modelos guardan float64 (como llegan del JSON); toda operación pasa por
// decimal para no acumular errores de punto flotante.
package money

import "github.com/shopspring/decimal"

// Epsilon es la tolerancia al comparar pagos contra el total (centavos de redondeo).
const Epsilon = 0.01

var epsilon = decimal.NewFromFloat(Epsilon)

// Round2 redondea a dos decimales.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Add suma a+b a dos decimales.
func Add(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Round(2).Float64()
	return f
}

// Sub resta a-b a dos decimales.
func Sub(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2).Float64()
	return f
}

// Mul multiplica un precio unitario por una cantidad de piezas.
func Mul(price float64, qty int) float64 {
	f, _ := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty))).Round(2).Float64()
	return f
}

// Sum suma una lista de montos a dos decimales.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Round(2).Float64()
	return f
}

// EqualWithin reporta si a y b difieren en menos de Epsilon.
func EqualWithin(a, b float64) bool {
	diff := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Abs()
	return diff.LessThanOrEqual(epsilon)
}

// Less reporta si a < b en sentido estricto (sin tolerancia).
func Less(a, b float64) bool {
	return decimal.NewFromFloat(a).LessThan(decimal.NewFromFloat(b))
}
