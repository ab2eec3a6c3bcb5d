package service

import (
	"context"
	"time"

	"github.com/taellinglin/LingTreasury/internal/model"
	"github.com/taellinglin/LingTreasury/internal/repository"
)

const (
	// generationCooldown is the gate actually enforced before a new attempt
	// may start.
	generationCooldown = 7 * 24 * time.Hour
	// generationHorizonDays is the wait reported to users, not the wait
	// enforced. The two values differ.
	generationHorizonDays = 365
)

// EligibilityPolicy decides whether a user may start a new generation.
// It has no side effects and is safe to call repeatedly.
type EligibilityPolicy struct {
	tasks repository.TaskRepository
}

// NewEligibilityPolicy creates an eligibility policy over the task ledger.
func NewEligibilityPolicy(tasks repository.TaskRepository) *EligibilityPolicy {
	return &EligibilityPolicy{tasks: tasks}
}

// CanGenerate returns true iff no successful generation happened within the
// cooldown window and no task of the user is still processing.
func (p *EligibilityPolicy) CanGenerate(ctx context.Context, user *model.User) (bool, error) {
	if user.LastGeneration != nil && time.Since(*user.LastGeneration) < generationCooldown {
		return false, nil
	}
	processing, err := p.tasks.HasProcessing(ctx, user.ID)
	if err != nil {
		return false, err
	}
	return !processing, nil
}

// DaysUntilNextGeneration reports the remaining wait on the reporting
// horizon, clamped to zero. Users with no prior generation wait zero days.
func (p *EligibilityPolicy) DaysUntilNextGeneration(user *model.User) int {
	if user.LastGeneration == nil {
		return 0
	}
	next := user.LastGeneration.AddDate(0, 0, generationHorizonDays)
	days := int(time.Until(next).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
