package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Efectivo"
	PaymentTransfer PaymentMethod = "Transferencia"
	PaymentOther    PaymentMethod = "Otro"
)

// PaymentMethods en orden de prioridad: al repartir un pago empatado gana el
// método que aparece primero.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentTransfer, PaymentOther}

func ValidPaymentMethod(m PaymentMethod) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

type PaymentBreakdown map[PaymentMethod]float64

func (b PaymentBreakdown) Value() (driver.Value, error) {
	if len(b) == 0 {
		return "{}", nil
	}
	raw, err := json.Marshal(b)
	return string(raw), err
}

func (b *PaymentBreakdown) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	case nil:
		*b = nil
		return nil
	}
	return fmt.Errorf("tipo inesperado para PaymentBreakdown: %T", src)
}

// SaleItem es la foto de una línea del borrador al momento de guardar la venta.
type SaleItem struct {
	LineID         string  `json:"line_id"`
	SourceItemID   string  `json:"source_item_id"`
	CategoryID     string  `json:"category_id"`
	Name           string  `json:"name"`
	UnitPrice      float64 `json:"unit_price"`
	Quantity       int     `json:"quantity"`
	Subtotal       float64 `json:"subtotal"`
	IsBundle       bool    `json:"is_bundle,omitempty"`
	BundleDiscount float64 `json:"bundle_discount,omitempty"`
}

type SaleItems []SaleItem

func (s SaleItems) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(s)
	return string(raw), err
}

func (s *SaleItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = nil
		return nil
	}
	return fmt.Errorf("tipo inesperado para SaleItems: %T", src)
}

// ActiveSale y ClosedSale son las dos particiones de una venta persistida.
// Una venta vive exactamente en una de las dos tablas; cerrar y reabrir la
// mueven de una a otra dentro de una transacción.
type ActiveSale struct {
	ID          string    `gorm:"primaryKey;size:30" json:"id"`
	Items       SaleItems `gorm:"type:jsonb;not null" json:"items"`
	Total       float64   `gorm:"not null" json:"total"`
	DeliveryFee float64   `json:"delivery_fee"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

type ClosedSale struct {
	ID            string        `gorm:"primaryKey;size:30" json:"id"`
	Items         SaleItems     `gorm:"type:jsonb;not null" json:"items"`
	Total         float64       `gorm:"not null" json:"total"`
	DeliveryFee   float64       `json:"delivery_fee"`
	PaymentMethod PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	// Desglose por método cuando el cliente paga dividido; la suma debe cubrir
	// total + propina.
	PaymentBreakdown PaymentBreakdown `gorm:"type:jsonb" json:"payment_breakdown"`
	Tip              float64          `json:"tip"`
	CreatedAt        time.Time        `json:"created_at"`
	ClosedAt         time.Time        `gorm:"index" json:"closed_at"`
}
