package report

import (
	"strings"
	"testing"
	"time"

	"asador-backend/internal/models"
)

func TestBuildCSVSections(t *testing.T) {
	sales := []models.ClosedSale{
		{
			ID:            "1",
			Total:         200,
			Tip:           20,
			PaymentMethod: models.PaymentCash,
			Items: models.SaleItems{
				{Name: "Taco de Asada", Quantity: 4, Subtotal: 180},
			},
			ClosedAt: time.Date(2026, time.March, 14, 18, 30, 0, 0, time.UTC),
		},
	}
	expenses := []models.Expense{
		{ID: "e1", Date: time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC), Description: "Carne, cebolla", Amount: 80, Category: models.ExpenseIngredients},
	}

	csv := BuildCSV(sales, expenses, "14/03/2026 19:00")

	for _, section := range []string{
		"=== REPORTE ASADOR CALLEJERO ===",
		"=== RESUMEN EJECUTIVO ===",
		"=== VENTAS POR MÉTODO DE PAGO ===",
		"=== DETALLE DE VENTAS ===",
		"=== DETALLE DE GASTOS ===",
	} {
		if !strings.Contains(csv, section) {
			t.Fatalf("falta la sección %q", section)
		}
	}

	if !strings.Contains(csv, "Ingresos Totales,$200.00") {
		t.Fatalf("resumen sin ingresos:\n%s", csv)
	}
	if !strings.Contains(csv, `14/03/2026,18:30,Efectivo,"Taco de Asada x4",$20.00,$200.00`) {
		t.Fatalf("detalle de venta mal formado:\n%s", csv)
	}
	// La descripción lleva comillas porque contiene coma.
	if !strings.Contains(csv, `12/03/2026,Ingredientes,"Carne, cebolla",$80.00`) {
		t.Fatalf("detalle de gasto mal formado:\n%s", csv)
	}
}
