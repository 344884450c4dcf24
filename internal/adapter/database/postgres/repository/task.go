package repository

import (
	"context"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"taskapp/internal/adapter/database/postgres"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	"taskapp/pkg/tracing"
)

type TaskRepository struct {
	db *postgres.DB
}

func NewTaskRepository(db *postgres.DB) port.TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = "id, user_id, title, description, completed, created_at, updated_at"

func (tr *TaskRepository) GetAllByUser(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.task.GetAllByUser", []attribute.KeyValue{
		attribute.String("db.table", "tasks"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("user.id", userID),
		attribute.String("task.filter", string(filter)),
	})

	defer span.End()

	query := tr.db.QueryBuilder.Select(taskColumns).
		From("tasks").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at ASC, id ASC")

	switch filter {
	case domain.TaskFilterPending:
		query = query.Where(sq.Eq{"completed": false})
	case domain.TaskFilterCompleted:
		query = query.Where(sq.Eq{"completed": true})
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		tracing.AddSpanError(span, err)
		return nil, err
	}

	rows, err := tr.db.Query(ctx, stmt, args...)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Error fetching tasks", "error", err)
		return nil, err
	}

	defer rows.Close()

	tasks := []domain.Task{}

	for rows.Next() {
		var task domain.Task

		err = rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)

		if err != nil {
			tracing.AddSpanError(span, err)
			return nil, err
		}

		tasks = append(tasks, task)
	}

	span.SetAttributes(attribute.Int("db.rows_returned", len(tasks)))

	return tasks, rows.Err()
}

func (tr *TaskRepository) GetByID(ctx context.Context, id int) (domain.Task, error) {
	stmt, args, err := tr.db.QueryBuilder.Select(taskColumns).
		From("tasks").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	var task domain.Task

	err = tr.db.QueryRow(ctx, stmt, args...).
		Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt, &task.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if err != nil {
		return domain.Task{}, err
	}

	return task, nil
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	stmt, args, err := tr.db.QueryBuilder.Insert("tasks").
		Columns("user_id", "title", "description", "completed", "created_at", "updated_at").
		Values(task.UserID, task.Title, task.Description, task.Completed, task.CreatedAt, task.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	var id int

	if err := tr.db.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		slog.Error("Insert failed", "error", err)
		return domain.Task{}, err
	}

	return tr.GetByID(ctx, id)
}

func (tr *TaskRepository) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	stmt, args, err := tr.db.QueryBuilder.Update("tasks").
		SetMap(task.ToMap()).
		Where(sq.Eq{"id": task.ID}).
		ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	result, err := tr.db.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Update failed", "error", err, "id", task.ID)
		return domain.Task{}, err
	}

	if result.RowsAffected() == 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	return tr.GetByID(ctx, task.ID)
}

func (tr *TaskRepository) Delete(ctx context.Context, id int) error {
	stmt, args, err := tr.db.QueryBuilder.Delete("tasks").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.Exec(ctx, stmt, args...)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}
