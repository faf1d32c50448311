package report

import (
	"fmt"
	"strings"

	"asador-backend/internal/models"
)

// BuildCSV arma el reporte descargable con las mismas secciones que usa la
// contadora: resumen ejecutivo, ventas por método de pago, detalle de ventas y
// detalle de gastos.
func BuildCSV(sales []models.ClosedSale, expenses []models.Expense, generatedAt string) string {
	summary := Summarize(sales, expenses)

	var b strings.Builder
	b.WriteString("=== REPORTE ASADOR CALLEJERO ===\n")
	fmt.Fprintf(&b, "Fecha de generación: %s\n\n", generatedAt)

	b.WriteString("=== RESUMEN EJECUTIVO ===\n")
	b.WriteString("Concepto,Monto\n")
	fmt.Fprintf(&b, "Ingresos Totales,$%.2f\n", summary.Revenue)
	fmt.Fprintf(&b, "Propinas,$%.2f\n", summary.Tips)
	fmt.Fprintf(&b, "Gastos Totales,$%.2f\n", summary.Expenses)
	fmt.Fprintf(&b, "Ganancia Neta,$%.2f\n\n", summary.NetProfit)

	b.WriteString("=== VENTAS POR MÉTODO DE PAGO ===\n")
	b.WriteString("Método,Monto\n")
	for _, method := range models.PaymentMethods {
		fmt.Fprintf(&b, "%s,$%.2f\n", method, summary.Payments[method])
	}
	b.WriteString("\n")

	b.WriteString("=== DETALLE DE VENTAS ===\n")
	b.WriteString("Fecha,Hora,Método de Pago,Items,Propina,Total\n")
	for i := range sales {
		sale := &sales[i]
		names := make([]string, 0, len(sale.Items))
		for _, item := range sale.Items {
			names = append(names, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
		}
		fmt.Fprintf(&b, "%s,%s,%s,%s,$%.2f,$%.2f\n",
			sale.ClosedAt.Format("02/01/2006"),
			sale.ClosedAt.Format("15:04"),
			sale.PaymentMethod,
			csvQuote(strings.Join(names, "; ")),
			sale.Tip,
			sale.Total,
		)
	}
	b.WriteString("\n")

	b.WriteString("=== DETALLE DE GASTOS ===\n")
	b.WriteString("Fecha,Categoría,Descripción,Monto\n")
	for i := range expenses {
		e := &expenses[i]
		fmt.Fprintf(&b, "%s,%s,%s,$%.2f\n",
			e.Date.Format("02/01/2006"),
			categoryLabel(e.Category),
			csvQuote(e.Description),
			e.Amount,
		)
	}

	return b.String()
}

func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

var categoryLabels = map[models.ExpenseCategory]string{
	models.ExpenseIngredients: "Ingredientes",
	models.ExpenseGas:         "Gas",
	models.ExpenseTransport:   "Transporte",
	models.ExpenseSalaries:    "Salarios",
	models.ExpenseRent:        "Renta",
	models.ExpenseServices:    "Servicios",
	models.ExpenseOther:       "Otros",
}

func categoryLabel(c models.ExpenseCategory) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}
