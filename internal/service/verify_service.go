package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/taellinglin/LingTreasury/internal/model"
	"github.com/taellinglin/LingTreasury/internal/repository"
	"github.com/taellinglin/LingTreasury/internal/serial"
)

// VerifyResult is the outcome of a serial verification: the structural
// validation plus the registered banknote when the serial resolves. The two
// checks are independent; a structurally valid serial may still resolve to
// nothing.
type VerifyResult struct {
	Validation serial.Validation `json:"validation"`
	Banknote   *model.Banknote   `json:"banknote,omitempty"`
	Owner      string            `json:"owner,omitempty"`
}

// VerifyService resolves user-submitted serial numbers.
type VerifyService interface {
	Verify(ctx context.Context, serialInput string) (*VerifyResult, error)
}

type verifyService struct {
	serials repository.SerialNumberRepository
	users   repository.UserRepository
}

// NewVerifyService creates a new verification service.
func NewVerifyService(serials repository.SerialNumberRepository, users repository.UserRepository) VerifyService {
	return &verifyService{serials: serials, users: users}
}

// Verify validates the serial grammar, then looks up an active registry
// entry by the exact string. Inactive or absent serials yield no banknote
// even when the grammar check passes.
func (s *verifyService) Verify(ctx context.Context, serialInput string) (*VerifyResult, error) {
	result := &VerifyResult{Validation: serial.Validate(serialInput)}
	if !result.Validation.Valid {
		return result, nil
	}

	record, err := s.serials.FindActiveBySerial(ctx, serialInput)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return result, nil
		}
		return nil, err
	}

	result.Banknote = record.Banknote
	if owner, err := s.users.FindByID(ctx, record.UserID); err == nil {
		result.Owner = owner.Username
	}
	return result, nil
}
