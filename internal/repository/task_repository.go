package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/taellinglin/LingTreasury/internal/model"
)

// TaskRepository defines generation-task ledger operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.GenerationTask) error
	Update(ctx context.Context, task *model.GenerationTask) error
	HasProcessing(ctx context.Context, userID uint) (bool, error)
	ListRecentByUser(ctx context.Context, userID uint, limit int) ([]model.GenerationTask, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new generation-task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create persists a new task row.
func (r *taskRepository) Create(ctx context.Context, task *model.GenerationTask) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Update updates an existing task row.
func (r *taskRepository) Update(ctx context.Context, task *model.GenerationTask) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// HasProcessing reports whether the user holds a task still in processing
// status. This is the durable half of the single-flight discipline: it
// survives process restarts, unlike the in-memory guard.
func (r *taskRepository) HasProcessing(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.GenerationTask{}).
		Where("user_id = ? AND status = ?", userID, model.TaskStatusProcessing).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListRecentByUser returns the most recent tasks newest-first.
func (r *taskRepository) ListRecentByUser(ctx context.Context, userID uint, limit int) ([]model.GenerationTask, error) {
	var tasks []model.GenerationTask
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
