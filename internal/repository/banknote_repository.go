package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/taellinglin/LingTreasury/internal/model"
)

// Minted pairs a banknote row with its serial index row. Serial is nil when
// the serial string was already indexed by an earlier note in the same batch
// (a back side borrowing its front's serial).
type Minted struct {
	Note   *model.Banknote
	Serial *model.SerialNumber
}

// BanknoteRepository defines banknote persistence operations.
type BanknoteRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Banknote, error)
	Update(ctx context.Context, note *model.Banknote) error
	ListByUser(ctx context.Context, userID uint) ([]model.Banknote, error)
	ListPublicByUser(ctx context.Context, userID uint) ([]model.Banknote, error)
	HasAny(ctx context.Context, userID uint) (bool, error)
	// CreateMintedBatch persists ingested notes and their serial index rows
	// in one transaction, linking each serial to its note once the note's ID
	// is assigned.
	CreateMintedBatch(ctx context.Context, batch []Minted) error
}

type banknoteRepository struct {
	db *gorm.DB
}

// NewBanknoteRepository creates a new banknote repository.
func NewBanknoteRepository(db *gorm.DB) BanknoteRepository {
	return &banknoteRepository{db: db}
}

// FindByID finds a banknote by ID.
func (r *banknoteRepository) FindByID(ctx context.Context, id uint) (*model.Banknote, error) {
	var note model.Banknote
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// Update updates an existing banknote.
func (r *banknoteRepository) Update(ctx context.Context, note *model.Banknote) error {
	return r.db.WithContext(ctx).Save(note).Error
}

// ListByUser lists all of a user's banknotes in insertion order.
func (r *banknoteRepository) ListByUser(ctx context.Context, userID uint) ([]model.Banknote, error) {
	var notes []model.Banknote
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// ListPublicByUser lists only the publicly visible banknotes.
func (r *banknoteRepository) ListPublicByUser(ctx context.Context, userID uint) ([]model.Banknote, error) {
	var notes []model.Banknote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_public = ?", userID, true).
		Order("id").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// HasAny reports whether the user owns any banknotes.
func (r *banknoteRepository) HasAny(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Banknote{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateMintedBatch creates notes and serial rows within one transaction.
// The (serial_number, side) unique index rejects duplicates, rolling the
// whole batch back.
func (r *banknoteRepository) CreateMintedBatch(ctx context.Context, batch []Minted) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, minted := range batch {
			if err := tx.Create(minted.Note).Error; err != nil {
				return fmt.Errorf("create banknote %s/%s: %w", minted.Note.SerialNumber, minted.Note.Side, err)
			}
			if minted.Serial == nil {
				continue
			}
			minted.Serial.BanknoteID = &minted.Note.ID
			if err := tx.Create(minted.Serial).Error; err != nil {
				return fmt.Errorf("create serial %s: %w", minted.Serial.Serial, err)
			}
		}
		return nil
	})
}
