package service

import (
	"context"
	"log/slog"
	"time"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
)

type TaskService struct {
	repo port.TaskRepository
}

func NewTaskService(repo port.TaskRepository) *TaskService {
	return &TaskService{repo}
}

// allow is the ownership gate: the identity from the token must match
// the identity in the resource path before anything touches storage.
func (ts *TaskService) allow(authUserID, userID string) error {
	if authUserID != userID {
		return domain.ErrForbidden
	}

	return nil
}

// owned applies the not-found rule: a task that exists but belongs to
// someone else is reported exactly like a task that does not exist.
// Storage failures are not masked, they surface as-is.
func (ts *TaskService) owned(ctx context.Context, userID string, taskID int) (domain.Task, error) {
	task, err := ts.repo.GetByID(ctx, taskID)

	if err != nil {
		return domain.Task{}, err
	}

	if !task.BelongsToUser(userID) {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	return task, nil
}

func (ts *TaskService) List(ctx context.Context, authUserID, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	if err := ts.allow(authUserID, userID); err != nil {
		return nil, err
	}

	return ts.repo.GetAllByUser(ctx, userID, filter)
}

func (ts *TaskService) Create(ctx context.Context, authUserID, userID string, task domain.Task) (domain.Task, error) {
	if err := ts.allow(authUserID, userID); err != nil {
		return domain.Task{}, err
	}

	now := time.Now()

	newTask := domain.Task{
		UserID:      userID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved, err := ts.repo.Create(ctx, newTask)

	if err != nil {
		slog.Error("Task#Create", "error", err, "title", newTask.Title)
		return domain.Task{}, err
	}

	return saved, nil
}

func (ts *TaskService) Get(ctx context.Context, authUserID, userID string, taskID int) (domain.Task, error) {
	if err := ts.allow(authUserID, userID); err != nil {
		return domain.Task{}, err
	}

	return ts.owned(ctx, userID, taskID)
}

func (ts *TaskService) Update(ctx context.Context, authUserID, userID string, taskID int, patch domain.TaskPatch) (domain.Task, error) {
	if err := ts.allow(authUserID, userID); err != nil {
		return domain.Task{}, err
	}

	task, err := ts.owned(ctx, userID, taskID)

	if err != nil {
		return domain.Task{}, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}

	if patch.Description != nil {
		task.Description = patch.Description
	}

	task.UpdatedAt = time.Now()

	return ts.repo.Update(ctx, task)
}

func (ts *TaskService) Delete(ctx context.Context, authUserID, userID string, taskID int) error {
	if err := ts.allow(authUserID, userID); err != nil {
		return err
	}

	if _, err := ts.owned(ctx, userID, taskID); err != nil {
		return err
	}

	return ts.repo.Delete(ctx, taskID)
}

func (ts *TaskService) ToggleCompletion(ctx context.Context, authUserID, userID string, taskID int) (domain.Task, error) {
	if err := ts.allow(authUserID, userID); err != nil {
		return domain.Task{}, err
	}

	task, err := ts.owned(ctx, userID, taskID)

	if err != nil {
		return domain.Task{}, err
	}

	task.Completed = !task.Completed
	task.UpdatedAt = time.Now()

	return ts.repo.Update(ctx, task)
}
