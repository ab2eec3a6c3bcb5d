package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/taellinglin/LingTreasury/internal/errors"
	"github.com/taellinglin/LingTreasury/internal/model"
	"github.com/taellinglin/LingTreasury/internal/pipeline"
	"github.com/taellinglin/LingTreasury/internal/repository"
)

const (
	startMessage   = "Starting generation..."
	successMessage = "Banknotes generated successfully! 111,111,111 Luna Coin added to your balance."
)

// generationReward is the fixed amount credited per successful generation.
var generationReward = decimal.NewFromInt(111111111)

// Ingestor turns the pipeline's output directory into database records.
type Ingestor interface {
	Ingest(ctx context.Context, userID uint, identity string) error
}

// GenerationService owns the asynchronous generation-task subsystem: the
// trigger path and the background worker running one attempt end-to-end.
type GenerationService interface {
	// Trigger starts a generation attempt for the user and returns
	// immediately. The attempt itself runs on a background goroutine.
	Trigger(ctx context.Context, user *model.User) error
	RecentTasks(ctx context.Context, userID uint, limit int) ([]model.GenerationTask, error)
	DaysUntilNext(user *model.User) int
}

type generationService struct {
	users   repository.UserRepository
	tasks   repository.TaskRepository
	policy  *EligibilityPolicy
	guard   *Guard
	runner  pipeline.Runner
	ingest  Ingestor
	timeout time.Duration
}

// NewGenerationService creates a generation service.
func NewGenerationService(
	users repository.UserRepository,
	tasks repository.TaskRepository,
	policy *EligibilityPolicy,
	guard *Guard,
	runner pipeline.Runner,
	ingest Ingestor,
	timeout time.Duration,
) GenerationService {
	return &generationService{
		users:   users,
		tasks:   tasks,
		policy:  policy,
		guard:   guard,
		runner:  runner,
		ingest:  ingest,
		timeout: timeout,
	}
}

// Trigger checks eligibility and spawns the worker. The guard slot is
// claimed before the ledger check so the two act as one critical section
// per user: two near-simultaneous triggers cannot both pass the policy.
func (s *generationService) Trigger(ctx context.Context, user *model.User) error {
	if !s.guard.TryRegister(user.ID) {
		return apperrors.ErrGenerationInFlight
	}

	ok, err := s.policy.CanGenerate(ctx, user)
	if err != nil {
		s.guard.Release(user.ID)
		return err
	}
	if !ok {
		s.guard.Release(user.ID)
		return apperrors.ErrGenerationCooldown
	}

	go s.runAttempt(user.ID, user.Username)
	return nil
}

// RecentTasks returns the user's audit trail, newest first.
func (s *generationService) RecentTasks(ctx context.Context, userID uint, limit int) ([]model.GenerationTask, error) {
	return s.tasks.ListRecentByUser(ctx, userID, limit)
}

// DaysUntilNext reports the wait shown to the user.
func (s *generationService) DaysUntilNext(user *model.User) int {
	return s.policy.DaysUntilNextGeneration(user)
}

// runAttempt executes one generation attempt end-to-end. Every exit path
// releases the guard slot; every fault after the task row exists lands in a
// terminal failed status instead of escaping.
func (s *generationService) runAttempt(userID uint, identity string) {
	defer s.guard.Release(userID)
	ctx := context.Background()

	task := &model.GenerationTask{
		UserID:  userID,
		Status:  model.TaskStatusProcessing,
		Message: startMessage,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		log.Printf("generation: create task for user %d: %v", userID, err)
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			s.finishTask(ctx, task, model.TaskStatusFailed,
				fmt.Sprintf("Banknote generation error: %v", rec))
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.runner.Run(runCtx, identity)
	switch {
	case errors.Is(err, pipeline.ErrTimeout):
		s.finishTask(ctx, task, model.TaskStatusFailed,
			fmt.Sprintf("Generation timed out after %s", s.timeout))
	case err != nil:
		s.finishTask(ctx, task, model.TaskStatusFailed,
			"Banknote generation error: "+err.Error())
	case result.ExitCode != 0:
		s.finishTask(ctx, task, model.TaskStatusFailed,
			"Banknote generation failed: "+result.Output)
	default:
		s.completeAttempt(ctx, task, userID, identity)
	}
}

// completeAttempt ingests the pipeline output and grants the reward. The
// reward is credited strictly after ingestion succeeds: an ingestion fault
// must not advance last_generation or the balance.
func (s *generationService) completeAttempt(ctx context.Context, task *model.GenerationTask, userID uint, identity string) {
	if err := s.ingest.Ingest(ctx, userID, identity); err != nil {
		s.finishTask(ctx, task, model.TaskStatusFailed,
			"Banknote generation error: "+err.Error())
		return
	}

	if err := s.users.CreditGeneration(ctx, userID, generationReward, time.Now().UTC()); err != nil {
		s.finishTask(ctx, task, model.TaskStatusFailed,
			"Banknote generation error: "+err.Error())
		return
	}

	s.finishTask(ctx, task, model.TaskStatusCompleted, successMessage)
}

// finishTask stamps the terminal status, message, and completion time in one
// update. CompletedAt is set exactly once, here.
func (s *generationService) finishTask(ctx context.Context, task *model.GenerationTask, status model.TaskStatus, message string) {
	now := time.Now().UTC()
	task.Status = status
	task.Message = message
	task.CompletedAt = &now
	if err := s.tasks.Update(ctx, task); err != nil {
		log.Printf("generation: finalize task %d: %v", task.ID, err)
	}
}
