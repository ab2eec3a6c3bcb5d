package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/taellinglin/LingTreasury/internal/model"
)

// SerialNumberRepository defines serial index persistence operations.
type SerialNumberRepository interface {
	Create(ctx context.Context, serial *model.SerialNumber) error
	FindActiveBySerial(ctx context.Context, serial string) (*model.SerialNumber, error)
	Deactivate(ctx context.Context, serial string) error
}

type serialNumberRepository struct {
	db *gorm.DB
}

// NewSerialNumberRepository creates a new serial number repository.
func NewSerialNumberRepository(db *gorm.DB) SerialNumberRepository {
	return &serialNumberRepository{db: db}
}

// Create persists a new serial index row.
func (r *serialNumberRepository) Create(ctx context.Context, serial *model.SerialNumber) error {
	return r.db.WithContext(ctx).Create(serial).Error
}

// FindActiveBySerial looks up an active serial by exact string, with its
// linked banknote preloaded when one exists.
func (r *serialNumberRepository) FindActiveBySerial(ctx context.Context, serial string) (*model.SerialNumber, error) {
	var record model.SerialNumber
	err := r.db.WithContext(ctx).
		Preload("Banknote").
		Where("serial = ? AND is_active = ?", serial, true).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Deactivate marks a serial inactive. Superseded serials are kept for the
// audit trail rather than deleted.
func (r *serialNumberRepository) Deactivate(ctx context.Context, serial string) error {
	return r.db.WithContext(ctx).Model(&model.SerialNumber{}).
		Where("serial = ?", serial).
		Update("is_active", false).Error
}
