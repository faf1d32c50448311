package draft

import (
	"testing"

	"asador-backend/internal/models"
)

// fakeCatalog sirve el menú desde memoria para probar el motor sin base de datos.
type fakeCatalog struct {
	items map[string][]models.MenuItem // por categoría
}

func (f *fakeCatalog) GetItem(categoryID, itemID string) (*models.MenuItem, error) {
	for i := range f.items[categoryID] {
		if f.items[categoryID][i].ID == itemID {
			return &f.items[categoryID][i], nil
		}
	}
	return nil, &ValidationError{Reason: "producto no encontrado"}
}

func (f *fakeCatalog) FindBundleCounterpart(categoryID, itemName string, unitPrice float64, quantity int) *models.MenuItem {
	for i := range f.items[categoryID] {
		it := &f.items[categoryID][i]
		if it.Available && it.PricingMode == models.PricingBundle && it.BundleSize == quantity &&
			len(it.Name) >= len(itemName) && it.Name[:len(itemName)] == itemName &&
			it.Price < unitPrice*float64(quantity) {
			return it
		}
	}
	return nil
}

func (f *fakeCatalog) FindPlainCounterpart(categoryID, itemName string) *models.MenuItem {
	for i := range f.items[categoryID] {
		it := &f.items[categoryID][i]
		if it.Available && it.PricingMode == models.PricingStandard && it.Name == itemName {
			return it
		}
	}
	return nil
}

func tacosCatalog() *fakeCatalog {
	return &fakeCatalog{items: map[string][]models.MenuItem{
		"tacos": {
			{ID: "taco", CategoryID: "tacos", Name: "Taco de Asada", Price: 50, Available: true, PricingMode: models.PricingStandard},
			{ID: "taco-par", CategoryID: "tacos", Name: "Taco de Asada (2 pzas)", Price: 90, Available: true, PricingMode: models.PricingBundle, BundleSize: 2},
			{ID: "quesadilla", CategoryID: "tacos", Name: "Quesadilla", Price: 40, Available: true, PricingMode: models.PricingStandard},
			{ID: "agotado", CategoryID: "tacos", Name: "Costilla", Price: 70, Available: false, PricingMode: models.PricingStandard},
		},
		"charolas": {
			{ID: "charola", CategoryID: "charolas", Name: "Charola Combinada", Available: true, PricingMode: models.PricingMultiOption, Options: models.PriceOptions{
				{Name: "Chica", Price: 120},
				{Name: "Grande", Price: 240},
			}},
		},
		"servicios": {
			{ID: "envio", CategoryID: "servicios", Name: "Servicio a Domicilio", Available: true, PricingMode: models.PricingCustomAmount},
		},
	}}
}

func mustAdd(t *testing.T, d *Draft, categoryID, itemID string, opts AddOptions) *Line {
	t.Helper()
	line, err := d.AddItem(categoryID, itemID, opts)
	if err != nil {
		t.Fatalf("AddItem(%s/%s): %v", categoryID, itemID, err)
	}
	return line
}

func TestAddStandardItem(t *testing.T) {
	d := New(tacosCatalog())

	line := mustAdd(t, d, "tacos", "taco", AddOptions{})
	if line.Quantity != 1 || line.Subtotal != 50 {
		t.Fatalf("línea inicial: qty=%d subtotal=%.2f, esperaba 1 y 50", line.Quantity, line.Subtotal)
	}
	if d.Total() != 50 {
		t.Fatalf("total = %.2f, esperaba 50", d.Total())
	}
}

func TestAddSameItemMergesLine(t *testing.T) {
	d := New(tacosCatalog())

	first := mustAdd(t, d, "tacos", "quesadilla", AddOptions{})
	second := mustAdd(t, d, "tacos", "quesadilla", AddOptions{})

	if first.LineID != second.LineID {
		t.Fatalf("agregar el mismo producto debe incrementar la línea existente")
	}
	if len(d.Lines()) != 1 {
		t.Fatalf("líneas = %d, esperaba 1", len(d.Lines()))
	}
	if second.Quantity != 2 || second.Subtotal != 80 {
		t.Fatalf("qty=%d subtotal=%.2f, esperaba 2 y 80", second.Quantity, second.Subtotal)
	}
}

func TestAddUnavailableItem(t *testing.T) {
	d := New(tacosCatalog())

	if _, err := d.AddItem("tacos", "agotado", AddOptions{}); err == nil {
		t.Fatalf("un producto no disponible debe rechazarse")
	}
	if !d.IsEmpty() {
		t.Fatalf("el borrador debe quedar intacto tras un rechazo")
	}
}

func TestPairPromotionAppliesAtTwo(t *testing.T) {
	d := New(tacosCatalog())

	mustAdd(t, d, "tacos", "taco", AddOptions{})
	line := mustAdd(t, d, "tacos", "taco", AddOptions{})

	if !line.IsBundle {
		t.Fatalf("la segunda pieza debe activar la promoción por par")
	}
	if line.Subtotal != 90 {
		t.Fatalf("subtotal = %.2f, esperaba el precio del par 90", line.Subtotal)
	}
	if line.BundleDiscount != 10 {
		t.Fatalf("descuento = %.2f, esperaba 10", line.BundleDiscount)
	}
	notices := d.DrainNotices()
	if len(notices) != 1 || notices[0].Level != "success" {
		t.Fatalf("esperaba un aviso de promoción, obtuve %v", notices)
	}
	if len(d.DrainNotices()) != 0 {
		t.Fatalf("los avisos deben entregarse una sola vez")
	}
}

func TestOddAndEvenQuantities(t *testing.T) {
	// Unitario 50, par 90: 1->50, 2->90, 3->140, 4->180.
	d := New(tacosCatalog())
	want := []float64{50, 90, 140, 180}

	var line *Line
	for i, expected := range want {
		line = mustAdd(t, d, "tacos", "taco", AddOptions{})
		if line.Subtotal != expected {
			t.Fatalf("con %d piezas subtotal = %.2f, esperaba %.2f", i+1, line.Subtotal, expected)
		}
	}
	if line.BundleDiscount != 20 {
		t.Fatalf("descuento con 4 piezas = %.2f, esperaba 20", line.BundleDiscount)
	}
}

func TestNoPromotionWithoutCheaperBundle(t *testing.T) {
	// La quesadilla no tiene paquete: dos piezas se cobran a 2x unitario.
	d := New(tacosCatalog())

	mustAdd(t, d, "tacos", "quesadilla", AddOptions{})
	line := mustAdd(t, d, "tacos", "quesadilla", AddOptions{})

	if line.IsBundle || line.Subtotal != 80 {
		t.Fatalf("sin paquete el subtotal debe ser 80, obtuve %.2f (bundle=%v)", line.Subtotal, line.IsBundle)
	}
	if len(d.DrainNotices()) != 0 {
		t.Fatalf("no debe haber avisos sin promoción")
	}
}

func TestDecrementUndoesPromotion(t *testing.T) {
	d := New(tacosCatalog())

	mustAdd(t, d, "tacos", "taco", AddOptions{})
	line := mustAdd(t, d, "tacos", "taco", AddOptions{})
	d.DrainNotices()

	line, err := d.DecrementLine(line.LineID)
	if err != nil {
		t.Fatalf("DecrementLine: %v", err)
	}
	if line.IsBundle || line.PairPrice != 0 || line.BundleDiscount != 0 {
		t.Fatalf("al bajar a una pieza deben limpiarse los campos de paquete: %+v", line)
	}
	if line.Quantity != 1 || line.Subtotal != 50 || line.UnitPrice != 50 {
		t.Fatalf("una pieza suelta vale 50, obtuve qty=%d subtotal=%.2f unit=%.2f", line.Quantity, line.Subtotal, line.UnitPrice)
	}
}

func TestDecrementWithoutPlainCounterpartHalvesPair(t *testing.T) {
	// El taco suelto se agota después de aplicarse la promoción: al deshacer el
	// par la pieza se cobra a la mitad del precio del paquete.
	cat := tacosCatalog()
	d := New(cat)

	mustAdd(t, d, "tacos", "taco", AddOptions{})
	line := mustAdd(t, d, "tacos", "taco", AddOptions{})
	d.DrainNotices()

	cat.items["tacos"][0].Available = false

	line, err := d.DecrementLine(line.LineID)
	if err != nil {
		t.Fatalf("DecrementLine: %v", err)
	}
	if line.Quantity != 1 || line.Subtotal != 45 || line.UnitPrice != 45 {
		t.Fatalf("sin producto suelto la pieza vale la mitad del par (45): %+v", line)
	}
	if line.IsBundle || line.PairPrice != 0 || line.BundleDiscount != 0 {
		t.Fatalf("deben limpiarse los campos de paquete: %+v", line)
	}
}

func TestDecrementFromThreePieces(t *testing.T) {
	d := New(tacosCatalog())

	var line *Line
	for i := 0; i < 3; i++ {
		line = mustAdd(t, d, "tacos", "taco", AddOptions{})
	}

	line, err := d.DecrementLine(line.LineID)
	if err != nil {
		t.Fatalf("DecrementLine: %v", err)
	}
	if line.Quantity != 2 || line.Subtotal != 90 || !line.IsBundle {
		t.Fatalf("3->2 piezas debe quedar en el precio del par: %+v", line)
	}
}

func TestDecrementLastPieceRemovesLine(t *testing.T) {
	d := New(tacosCatalog())

	line := mustAdd(t, d, "tacos", "quesadilla", AddOptions{})
	got, err := d.DecrementLine(line.LineID)
	if err != nil {
		t.Fatalf("DecrementLine: %v", err)
	}
	if got != nil {
		t.Fatalf("bajar la última pieza debe eliminar la línea")
	}
	if !d.IsEmpty() || d.Total() != 0 {
		t.Fatalf("el borrador debe quedar vacío, total=%.2f", d.Total())
	}
}

func TestCustomAmountLines(t *testing.T) {
	d := New(tacosCatalog())

	if _, err := d.AddItem("servicios", "envio", AddOptions{}); err == nil {
		t.Fatalf("custom_amount sin monto debe rechazarse")
	}
	zero := 0.0
	if _, err := d.AddItem("servicios", "envio", AddOptions{Amount: &zero}); err == nil {
		t.Fatalf("monto cero debe rechazarse")
	}

	a, b := 40.0, 55.0
	mustAdd(t, d, "servicios", "envio", AddOptions{Amount: &a})
	mustAdd(t, d, "servicios", "envio", AddOptions{Amount: &b})

	if len(d.Lines()) != 2 {
		t.Fatalf("cada monto capturado es una línea aparte, obtuve %d", len(d.Lines()))
	}
	if d.Total() != 95 {
		t.Fatalf("total = %.2f, esperaba 95", d.Total())
	}
}

func TestMultiOptionNaming(t *testing.T) {
	d := New(tacosCatalog())

	if _, err := d.AddItem("charolas", "charola", AddOptions{Option: "Jumbo"}); err == nil {
		t.Fatalf("una opción inexistente debe rechazarse")
	}

	chica := mustAdd(t, d, "charolas", "charola", AddOptions{Option: "Chica"})
	grande := mustAdd(t, d, "charolas", "charola", AddOptions{Option: "Grande"})

	if chica.Name != "Charola Combinada (Chica)" {
		t.Fatalf("nombre = %q", chica.Name)
	}
	if chica.LineID == grande.LineID {
		t.Fatalf("opciones distintas no deben combinarse en una línea")
	}
	if d.Total() != 360 {
		t.Fatalf("total = %.2f, esperaba 360", d.Total())
	}
}

func TestTotalMatchesSumOfSubtotals(t *testing.T) {
	d := New(tacosCatalog())

	mustAdd(t, d, "tacos", "taco", AddOptions{})
	mustAdd(t, d, "tacos", "taco", AddOptions{})
	mustAdd(t, d, "tacos", "quesadilla", AddOptions{})
	fee := 30.0
	mustAdd(t, d, "servicios", "envio", AddOptions{Amount: &fee})

	var sum float64
	for _, l := range d.Lines() {
		sum += l.Subtotal
	}
	if d.Total() != sum {
		t.Fatalf("total %.2f != suma de subtotales %.2f", d.Total(), sum)
	}
}

func TestUnknownLineOperations(t *testing.T) {
	d := New(tacosCatalog())

	if _, err := d.IncrementLine("no-existe"); err != ErrLineNotFound {
		t.Fatalf("IncrementLine: esperaba ErrLineNotFound, obtuve %v", err)
	}
	if _, err := d.DecrementLine("no-existe"); err != ErrLineNotFound {
		t.Fatalf("DecrementLine: esperaba ErrLineNotFound, obtuve %v", err)
	}
	if err := d.RemoveLine("no-existe"); err != ErrLineNotFound {
		t.Fatalf("RemoveLine: esperaba ErrLineNotFound, obtuve %v", err)
	}
}

func TestSnapshotFreezesLines(t *testing.T) {
	d := New(tacosCatalog())

	mustAdd(t, d, "tacos", "taco", AddOptions{})
	mustAdd(t, d, "tacos", "taco", AddOptions{})

	items, total := d.Snapshot()
	if len(items) != 1 || total != 90 {
		t.Fatalf("snapshot: %d items total=%.2f, esperaba 1 y 90", len(items), total)
	}
	if !items[0].IsBundle || items[0].BundleDiscount != 10 {
		t.Fatalf("el snapshot debe conservar el estado de la promoción: %+v", items[0])
	}
}
