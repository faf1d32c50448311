package sales

import (
	"errors"
	"time"

	"asador-backend/internal/models"

	"gorm.io/gorm"
)

// CloseFields son los datos de pago que se fijan al cerrar, todos juntos.
type CloseFields struct {
	PaymentMethod    models.PaymentMethod
	PaymentBreakdown models.PaymentBreakdown
	Tip              float64
	ClosedAt         time.Time
}

// Store abstrae las dos particiones de ventas. Mover una venta entre
// particiones es todo-o-nada: ningún lector la ve en ambas ni en ninguna.
type Store interface {
	ListActive() ([]models.ActiveSale, error)
	ListClosed(limit int) ([]models.ClosedSale, error)
	GetActive(id string) (*models.ActiveSale, error)
	InsertActive(sale *models.ActiveSale) error
	DeleteActive(id string) error
	MoveActiveToClosed(id string, fields CloseFields) (*models.ClosedSale, error)
	MoveClosedToActive(id string, reopenedAt time.Time) (*models.ActiveSale, error)
	DeleteClosed(id string) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListActive() ([]models.ActiveSale, error) {
	var out []models.ActiveSale
	err := s.db.Order("created_at desc").Find(&out).Error
	return out, err
}

func (s *GormStore) ListClosed(limit int) ([]models.ClosedSale, error) {
	dbq := s.db.Order("closed_at desc")
	if limit > 0 {
		dbq = dbq.Limit(limit)
	}
	var out []models.ClosedSale
	err := dbq.Find(&out).Error
	return out, err
}

func (s *GormStore) GetActive(id string) (*models.ActiveSale, error) {
	var sale models.ActiveSale
	err := s.db.First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (s *GormStore) InsertActive(sale *models.ActiveSale) error {
	return s.db.Create(sale).Error
}

func (s *GormStore) DeleteActive(id string) error {
	res := s.db.Delete(&models.ActiveSale{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	// Borrar un id que ya no está es NotFound, no un éxito silencioso.
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MoveActiveToClosed mueve la venta a la partición de cerradas. La presencia
// se verifica dentro de la transacción: dos cierres concurrentes del mismo id
// no pueden ganar los dos.
func (s *GormStore) MoveActiveToClosed(id string, fields CloseFields) (*models.ClosedSale, error) {
	var closed models.ClosedSale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var active models.ActiveSale
		if err := tx.First(&active, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		closed = models.ClosedSale{
			ID:               active.ID,
			Items:            active.Items,
			Total:            active.Total,
			DeliveryFee:      active.DeliveryFee,
			PaymentMethod:    fields.PaymentMethod,
			PaymentBreakdown: fields.PaymentBreakdown,
			Tip:              fields.Tip,
			CreatedAt:        active.CreatedAt,
			ClosedAt:         fields.ClosedAt,
		}
		if err := tx.Create(&closed).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.ActiveSale{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &closed, nil
}

// MoveClosedToActive es el inverso exacto de MoveActiveToClosed para la
// membresía de particiones. La fecha de creación se reinicia: una venta
// reabierta cuenta como recién activa, y los campos de pago no viajan.
func (s *GormStore) MoveClosedToActive(id string, reopenedAt time.Time) (*models.ActiveSale, error) {
	var reopened models.ActiveSale
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var closed models.ClosedSale
		if err := tx.First(&closed, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		reopened = models.ActiveSale{
			ID:          closed.ID,
			Items:       closed.Items,
			Total:       closed.Total,
			DeliveryFee: closed.DeliveryFee,
			CreatedAt:   reopenedAt,
		}
		if err := tx.Create(&reopened).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.ClosedSale{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reopened, nil
}

func (s *GormStore) DeleteClosed(id string) error {
	res := s.db.Delete(&models.ClosedSale{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
