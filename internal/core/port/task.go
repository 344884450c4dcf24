package port

import (
	"context"

	"taskapp/internal/core/domain"
)

type TaskRepository interface {
	GetAllByUser(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error)
	GetByID(ctx context.Context, id int) (domain.Task, error)
	Create(ctx context.Context, task domain.Task) (domain.Task, error)
	Update(ctx context.Context, task domain.Task) (domain.Task, error)
	Delete(ctx context.Context, id int) error
}

type TaskService interface {
	List(ctx context.Context, authUserID, userID string, filter domain.TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, authUserID, userID string, task domain.Task) (domain.Task, error)
	Get(ctx context.Context, authUserID, userID string, taskID int) (domain.Task, error)
	Update(ctx context.Context, authUserID, userID string, taskID int, patch domain.TaskPatch) (domain.Task, error)
	Delete(ctx context.Context, authUserID, userID string, taskID int) error
	ToggleCompletion(ctx context.Context, authUserID, userID string, taskID int) (domain.Task, error)
}
