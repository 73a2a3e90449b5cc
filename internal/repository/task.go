package repository

import (
	"context"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type TaskRepository interface {
	Create(ctx context.Context, data *entity.Task) error
	Update(ctx context.Context, id string, updates map[string]any) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	GetActiveList(ctx context.Context) ([]entity.Task, error)

	CreateStep(ctx context.Context, data *entity.TaskStep) error
	GetStepByID(ctx context.Context, id string) (*entity.TaskStep, error)
	GetStepsByTaskID(ctx context.Context, taskID string) ([]entity.TaskStep, error)

	// GetOrCreateUserTask is the lazy-creation constructor for per-account
	// claim state. The insert is idempotent on the composite primary key, so
	// two concurrent first claims resolve to the same row.
	GetOrCreateUserTask(ctx context.Context, userID, taskID string) (*entity.UserTask, error)
	GetUserTasks(ctx context.Context, userID string) ([]entity.UserTask, error)
	UpdateUserTask(ctx context.Context, userID, taskID string, updates map[string]any) error
	CreateUserTaskClaim(ctx context.Context, data *entity.UserTaskClaim) error

	CreateUserTaskStep(ctx context.Context, data *entity.UserTaskStep) error
	GetUserTaskSteps(ctx context.Context, userID string) ([]entity.UserTaskStep, error)
}

type taskRepository struct{}

func NewTaskRepository() TaskRepository {
	return &taskRepository{}
}

func (r *taskRepository) Create(ctx context.Context, data *entity.Task) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *taskRepository) Update(ctx context.Context, id string, updates map[string]any) error {
	return xcontext.DB(ctx).
		Model(&entity.Task{}).
		Where("id=?", id).
		Updates(updates).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	var record entity.Task
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *taskRepository) GetActiveList(ctx context.Context) ([]entity.Task, error) {
	var records []entity.Task
	err := xcontext.DB(ctx).
		Where("is_active=?", true).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *taskRepository) CreateStep(ctx context.Context, data *entity.TaskStep) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *taskRepository) GetStepByID(ctx context.Context, id string) (*entity.TaskStep, error) {
	var record entity.TaskStep
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *taskRepository) GetStepsByTaskID(ctx context.Context, taskID string) ([]entity.TaskStep, error) {
	var records []entity.TaskStep
	err := xcontext.DB(ctx).
		Where("task_id=?", taskID).
		Order("position ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *taskRepository) GetOrCreateUserTask(
	ctx context.Context, userID, taskID string,
) (*entity.UserTask, error) {
	err := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.UserTask{UserID: userID, TaskID: taskID}).Error
	if err != nil && !IsUniqueViolation(err) {
		return nil, err
	}

	var record entity.UserTask
	err = xcontext.DB(ctx).
		Where("user_id=? AND task_id=?", userID, taskID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *taskRepository) UpdateUserTask(
	ctx context.Context, userID, taskID string, updates map[string]any,
) error {
	return xcontext.DB(ctx).
		Model(&entity.UserTask{}).
		Where("user_id=? AND task_id=?", userID, taskID).
		Updates(updates).Error
}

func (r *taskRepository) CreateUserTaskClaim(ctx context.Context, data *entity.UserTaskClaim) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *taskRepository) GetUserTasks(ctx context.Context, userID string) ([]entity.UserTask, error) {
	var records []entity.UserTask
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *taskRepository) CreateUserTaskStep(ctx context.Context, data *entity.UserTaskStep) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *taskRepository) GetUserTaskSteps(ctx context.Context, userID string) ([]entity.UserTaskStep, error) {
	var records []entity.UserTaskStep
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
