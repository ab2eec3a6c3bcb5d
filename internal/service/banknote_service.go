package service

import (
	"context"

	"gorm.io/gorm"

	apperrors "github.com/taellinglin/LingTreasury/internal/errors"
	"github.com/taellinglin/LingTreasury/internal/model"
	"github.com/taellinglin/LingTreasury/internal/repository"
)

// BanknoteService handles owner-facing banknote operations.
type BanknoteService interface {
	// ToggleVisibility flips a note between public and private. Only the
	// owner may do this.
	ToggleVisibility(ctx context.Context, noteID, userID uint) (*model.Banknote, error)
}

type banknoteService struct {
	notes repository.BanknoteRepository
}

// NewBanknoteService creates a new banknote service.
func NewBanknoteService(notes repository.BanknoteRepository) BanknoteService {
	return &banknoteService{notes: notes}
}

// ToggleVisibility flips the is_public flag after an ownership check.
func (s *banknoteService) ToggleVisibility(ctx context.Context, noteID, userID uint) (*model.Banknote, error) {
	note, err := s.notes.FindByID(ctx, noteID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrBanknoteNotFound
		}
		return nil, err
	}
	if note.UserID != userID {
		return nil, apperrors.ErrNotOwner
	}

	note.IsPublic = !note.IsPublic
	if err := s.notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}
