package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type PricingMode string

const (
	PricingStandard     PricingMode = "standard"      // precio fijo por pieza
	PricingCustomAmount PricingMode = "custom_amount" // el cajero captura el monto (ej. envío)
	PricingMultiOption  PricingMode = "multi_option"  // varias presentaciones con precio propio
	PricingBundle       PricingMode = "bundle"        // paquete de N piezas a precio promocional
)

type PriceOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type PriceOptions []PriceOption

func (o PriceOptions) Value() (driver.Value, error) {
	if len(o) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(o)
	return string(b), err
}

func (o *PriceOptions) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	case nil:
		*o = nil
		return nil
	}
	return fmt.Errorf("tipo inesperado para PriceOptions: %T", src)
}

type MenuCategory struct {
	ID        string     `gorm:"primaryKey;size:50" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Position  int        `json:"position"`
	Items     []MenuItem `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

type MenuItem struct {
	ID          string      `gorm:"primaryKey;size:50" json:"id"`
	CategoryID  string      `gorm:"size:50;index;not null" json:"category_id"`
	Name        string      `gorm:"size:100;not null" json:"name"`
	Price       float64     `json:"price"`
	Available   bool        `gorm:"not null;default:true" json:"available"`
	PricingMode PricingMode `gorm:"size:20;not null;default:standard" json:"pricing_mode"`
	// BundleSize sólo aplica cuando PricingMode == bundle (ej. "2 pzas" => 2).
	BundleSize int          `json:"bundle_size,omitempty"`
	Options    PriceOptions `gorm:"type:jsonb" json:"options,omitempty"`
	Note       string       `gorm:"size:255" json:"note,omitempty"`
	Position   int          `json:"position"`
	CreatedAt  time.Time    `json:"-"`
	UpdatedAt  time.Time    `json:"-"`
}
