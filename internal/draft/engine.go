// Package draft implementa la venta en curso: una lista mutable de líneas que
// el cajero arma antes de guardarla como venta activa. Aquí vive la detección
// de paquetes (promoción por par) y la contabilidad de descuentos.
package draft

import (
	"fmt"

	"asador-backend/internal/models"
	"asador-backend/internal/money"

	"github.com/google/uuid"
)

// Catalog es la vista de sólo lectura del menú que necesita el motor.
type Catalog interface {
	GetItem(categoryID, itemID string) (*models.MenuItem, error)
	FindBundleCounterpart(categoryID, itemName string, unitPrice float64, quantity int) *models.MenuItem
	FindPlainCounterpart(categoryID, itemName string) *models.MenuItem
}

// Notifier recibe los avisos que genera el motor (ej. promoción aplicada).
// La capa que lo invoca decide cómo mostrarlos; el motor nunca bloquea
// esperando al usuario.
type Notifier interface {
	Notify(message, level string)
}

// NotifierFunc adapta una función a Notifier.
type NotifierFunc func(message, level string)

func (f NotifierFunc) Notify(message, level string) { f(message, level) }

type Notice struct {
	Message string `json:"message"`
	Level   string `json:"level"`
}

// ValidationError rechaza una operación sin mutar el borrador.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var ErrLineNotFound = &ValidationError{Reason: "la línea no existe en la venta actual"}

// Line es una línea del borrador. UnitPrice siempre es el precio por pieza
// suelta; cuando hay paquete aplicado, PairPrice guarda el precio del par y el
// subtotal se calcula por pares completos más piezas sueltas.
type Line struct {
	LineID         string             `json:"line_id"`
	SourceItemID   string             `json:"source_item_id"`
	CategoryID     string             `json:"category_id"`
	Name           string             `json:"name"`
	Mode           models.PricingMode `json:"-"`
	UnitPrice      float64            `json:"unit_price"`
	Quantity       int                `json:"quantity"`
	Subtotal       float64            `json:"subtotal"`
	IsBundle       bool               `json:"is_bundle,omitempty"`
	PairPrice      float64            `json:"pair_price,omitempty"`
	BundleDiscount float64            `json:"bundle_discount,omitempty"`
}

// AddOptions acompaña a AddItem para los modos de precio que piden datos extra.
type AddOptions struct {
	Amount *float64 // monto capturado, obligatorio para custom_amount
	Option string   // nombre de la opción elegida para multi_option
}

// Draft es la venta en curso de una terminal. No lleva candados: cada terminal
// tiene exactamente un escritor.
type Draft struct {
	catalog Catalog
	lines   []*Line
	pending []Notice
}

func New(catalog Catalog) *Draft {
	return &Draft{catalog: catalog}
}

// Lines regresa una copia de las líneas en orden de captura.
func (d *Draft) Lines() []Line {
	out := make([]Line, 0, len(d.lines))
	for _, l := range d.lines {
		out = append(out, *l)
	}
	return out
}

// Total se recalcula siempre a partir de los subtotales; nunca se cachea.
func (d *Draft) Total() float64 {
	subtotals := make([]float64, 0, len(d.lines))
	for _, l := range d.lines {
		subtotals = append(subtotals, l.Subtotal)
	}
	return money.Sum(subtotals...)
}

func (d *Draft) IsEmpty() bool {
	return len(d.lines) == 0
}

// DrainNotices entrega y limpia los avisos acumulados desde la última llamada.
func (d *Draft) DrainNotices() []Notice {
	out := d.pending
	d.pending = nil
	return out
}

func (d *Draft) notify(message, level string) {
	d.pending = append(d.pending, Notice{Message: message, Level: level})
}

// AddItem agrega un producto del menú al borrador según su modo de precio.
func (d *Draft) AddItem(categoryID, itemID string, opts AddOptions) (*Line, error) {
	item, err := d.catalog.GetItem(categoryID, itemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, &ValidationError{Reason: fmt.Sprintf("%s no está disponible", item.Name)}
	}

	switch item.PricingMode {
	case models.PricingCustomAmount:
		// Cada captura es una línea aparte: dos envíos de $40 y $55 no se
		// combinan.
		if opts.Amount == nil || *opts.Amount <= 0 {
			return nil, &ValidationError{Reason: "Ingresa un monto mayor a cero"}
		}
		amount := money.Round2(*opts.Amount)
		line := d.newLine(item, categoryID, item.Name, amount)
		return line, nil

	case models.PricingMultiOption:
		opt := findOption(item.Options, opts.Option)
		if opt == nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("Elige una opción válida para %s", item.Name)}
		}
		name := fmt.Sprintf("%s (%s)", item.Name, opt.Name)
		line := d.newLine(item, categoryID, name, money.Round2(opt.Price))
		return line, nil

	default:
		// standard y bundle directo: si el producto ya está en la venta se
		// incrementa su línea (lo que puede disparar la promoción por par).
		for _, l := range d.lines {
			if l.SourceItemID == item.ID && l.Mode == item.PricingMode {
				return d.IncrementLine(l.LineID)
			}
		}
		line := d.newLine(item, categoryID, item.Name, money.Round2(item.Price))
		return line, nil
	}
}

func (d *Draft) newLine(item *models.MenuItem, categoryID, name string, unitPrice float64) *Line {
	line := &Line{
		LineID:       uuid.NewString(),
		SourceItemID: item.ID,
		CategoryID:   categoryID,
		Name:         name,
		Mode:         item.PricingMode,
		UnitPrice:    unitPrice,
		Quantity:     1,
		Subtotal:     unitPrice,
	}
	d.lines = append(d.lines, line)
	return line
}

// IncrementLine sube la cantidad en uno y aplica la promoción por par cuando
// corresponde. El descuento sólo existe en cantidades pares; la pieza non
// siempre se cobra a precio unitario.
func (d *Draft) IncrementLine(lineID string) (*Line, error) {
	line := d.find(lineID)
	if line == nil {
		return nil, ErrLineNotFound
	}

	newQty := line.Quantity + 1

	if newQty == 2 && !line.IsBundle && line.Mode == models.PricingStandard {
		if bundle := d.catalog.FindBundleCounterpart(line.CategoryID, line.Name, line.UnitPrice, 2); bundle != nil {
			line.IsBundle = true
			line.PairPrice = money.Round2(bundle.Price)
			line.Quantity = 2
			line.Subtotal = line.PairPrice
			line.BundleDiscount = money.Sub(money.Mul(line.UnitPrice, 2), line.PairPrice)
			d.notify(fmt.Sprintf("Promoción aplicada: %s, ahorras $%.2f", bundle.Name, line.BundleDiscount), "success")
			return line, nil
		}
	}

	line.Quantity = newQty
	if line.IsBundle {
		recalcBundle(line)
		if newQty%2 == 0 {
			// Se acaba de completar un par nuevo.
			d.notify(fmt.Sprintf("Promoción aplicada: %s, ahorras $%.2f", line.Name, line.BundleDiscount), "success")
		}
	} else {
		line.Subtotal = money.Mul(line.UnitPrice, line.Quantity)
	}
	return line, nil
}

// DecrementLine baja la cantidad en uno. Regresa nil cuando la línea se
// eliminó por llegar a cero.
func (d *Draft) DecrementLine(lineID string) (*Line, error) {
	line := d.find(lineID)
	if line == nil {
		return nil, ErrLineNotFound
	}

	switch {
	case line.Quantity == 2 && line.IsBundle:
		// Se deshace el paquete: vuelve a ser una pieza suelta a precio normal.
		// Si el producto suelto ya no está en el menú, la mitad del par es el
		// mejor precio conocido.
		price := money.Round2(line.PairPrice / 2)
		if plain := d.catalog.FindPlainCounterpart(line.CategoryID, line.Name); plain != nil {
			price = money.Round2(plain.Price)
		}
		line.Quantity = 1
		line.UnitPrice = price
		line.Subtotal = price
		line.IsBundle = false
		line.PairPrice = 0
		line.BundleDiscount = 0
		return line, nil

	case line.Quantity > 1:
		line.Quantity--
		if line.IsBundle {
			recalcBundle(line)
		} else {
			line.Subtotal = money.Mul(line.UnitPrice, line.Quantity)
		}
		return line, nil

	default:
		// La última pieza: la línea desaparece.
		if err := d.RemoveLine(lineID); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

// RemoveLine elimina la línea sin importar la cantidad.
func (d *Draft) RemoveLine(lineID string) error {
	for i, l := range d.lines {
		if l.LineID == lineID {
			d.lines = append(d.lines[:i], d.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Clear vacía el borrador. Confirmar con el usuario cuando hay líneas es
// responsabilidad del que llama.
func (d *Draft) Clear() {
	d.lines = nil
	d.pending = nil
}

// Snapshot congela las líneas en el formato persistible de la venta.
func (d *Draft) Snapshot() (models.SaleItems, float64) {
	items := make(models.SaleItems, 0, len(d.lines))
	for _, l := range d.lines {
		items = append(items, models.SaleItem{
			LineID:         l.LineID,
			SourceItemID:   l.SourceItemID,
			CategoryID:     l.CategoryID,
			Name:           l.Name,
			UnitPrice:      l.UnitPrice,
			Quantity:       l.Quantity,
			Subtotal:       l.Subtotal,
			IsBundle:       l.IsBundle,
			BundleDiscount: l.BundleDiscount,
		})
	}
	return items, d.Total()
}

func (d *Draft) find(lineID string) *Line {
	for _, l := range d.lines {
		if l.LineID == lineID {
			return l
		}
	}
	return nil
}

// recalcBundle aplica la fórmula de pares completos más piezas sueltas.
func recalcBundle(line *Line) {
	pairs := line.Quantity / 2
	singles := line.Quantity % 2
	line.Subtotal = money.Add(money.Mul(line.PairPrice, pairs), money.Mul(line.UnitPrice, singles))
	line.BundleDiscount = money.Sub(money.Mul(line.UnitPrice, line.Quantity), line.Subtotal)
}

func findOption(options models.PriceOptions, name string) *models.PriceOption {
	for i := range options {
		if options[i].Name == name {
			return &options[i]
		}
	}
	return nil
}
