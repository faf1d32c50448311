package menu

import (
	"testing"

	"asador-backend/internal/models"
)

func categoryFixture() []models.MenuItem {
	return []models.MenuItem{
		{ID: "taco", Name: "Taco de Asada", Price: 50, Available: true, PricingMode: models.PricingStandard},
		{ID: "taco-par", Name: "Taco de Asada (2 pzas)", Price: 90, Available: true, PricingMode: models.PricingBundle, BundleSize: 2},
		{ID: "pastor", Name: "Taco de Pastor", Price: 45, Available: true, PricingMode: models.PricingStandard},
		{ID: "pastor-par", Name: "Taco de Pastor (2 pzas)", Price: 95, Available: true, PricingMode: models.PricingBundle, BundleSize: 2},
		{ID: "costilla", Name: "Costilla", Price: 70, Available: false, PricingMode: models.PricingStandard},
		{ID: "costilla-par", Name: "Costilla (2 pzas)", Price: 120, Available: false, PricingMode: models.PricingBundle, BundleSize: 2},
	}
}

func TestBundleCounterpartMatch(t *testing.T) {
	items := categoryFixture()

	got := bundleCounterpartIn(items, "Taco de Asada", 50, 2)
	if got == nil || got.ID != "taco-par" {
		t.Fatalf("esperaba el par del taco de asada, obtuve %+v", got)
	}
}

func TestBundleCounterpartMustBeCheaper(t *testing.T) {
	// El par de pastor (95) sale más caro que dos sueltos (90): no hay promoción.
	items := categoryFixture()

	if got := bundleCounterpartIn(items, "Taco de Pastor", 45, 2); got != nil {
		t.Fatalf("un paquete que no abarata no debe aplicar, obtuve %+v", got)
	}
}

func TestBundleCounterpartIgnoresUnavailable(t *testing.T) {
	items := categoryFixture()

	if got := bundleCounterpartIn(items, "Costilla", 70, 2); got != nil {
		t.Fatalf("un paquete no disponible no debe aplicar, obtuve %+v", got)
	}
}

func TestBundleCounterpartChecksSize(t *testing.T) {
	items := categoryFixture()

	if got := bundleCounterpartIn(items, "Taco de Asada", 50, 3); got != nil {
		t.Fatalf("no hay paquete de 3 piezas, obtuve %+v", got)
	}
}

func TestBundleCounterpartRequiresNamePrefix(t *testing.T) {
	items := categoryFixture()

	if got := bundleCounterpartIn(items, "Quesadilla", 40, 2); got != nil {
		t.Fatalf("el paquete debe compartir nombre con el producto, obtuve %+v", got)
	}
}

func TestPlainCounterpart(t *testing.T) {
	items := categoryFixture()

	got := plainCounterpartIn(items, "Taco de Asada")
	if got == nil || got.ID != "taco" {
		t.Fatalf("esperaba el taco suelto, obtuve %+v", got)
	}
	if plainCounterpartIn(items, "Costilla") != nil {
		t.Fatalf("un producto no disponible no cuenta como contraparte")
	}
	if plainCounterpartIn(items, "Taco de Asada (2 pzas)") != nil {
		t.Fatalf("un paquete no es contraparte suelta")
	}
}
