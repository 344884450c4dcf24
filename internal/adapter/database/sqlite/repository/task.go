package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"

	"taskapp/internal/adapter/database/sqlite"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	"taskapp/pkg/tracing"
)

type TaskRepository struct {
	db      *sqlite.DB
	scanner *sqlite.Scanner
}

func NewTaskRepository(db *sqlite.DB) port.TaskRepository {
	return &TaskRepository{
		db:      db,
		scanner: sqlite.NewScanner(),
	}
}

func (tr *TaskRepository) GetAllByUser(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.task.GetAllByUser", []attribute.KeyValue{
		attribute.String("db.table", "tasks"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("user.id", userID),
		attribute.String("task.filter", string(filter)),
	})

	defer span.End()

	query := tr.db.QueryBuilder.Select("*").
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

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Error fetching tasks", "error", err)
		return nil, err
	}

	defer rows.Close()

	tasks := []domain.Task{}
	err = tr.scanner.ScanRowsToSlice(rows, &tasks)

	if err != nil {
		tracing.AddSpanError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("db.rows_returned", len(tasks)))

	return tasks, nil
}

func (tr *TaskRepository) GetByID(ctx context.Context, id int) (domain.Task, error) {
	query := tr.db.QueryBuilder.Select("*").
		From("tasks").
		Where(sq.Eq{"id": id}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return domain.Task{}, err
	}

	defer rows.Close()

	var task domain.Task
	err = tr.scanner.ScanRowToStruct(rows, &task)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if err != nil {
		slog.Error("Error getting task by id", "error", err)
		return domain.Task{}, err
	}

	return task, nil
}

func (tr *TaskRepository) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	ctx, span := tracing.CreateChildSpan(ctx, "db.task.Create", []attribute.KeyValue{
		attribute.String("db.table", "tasks"),
		attribute.String("db.operation", "INSERT"),
		attribute.String("user.id", task.UserID),
	})

	defer span.End()

	query, args, err := tr.db.QueryBuilder.Insert("tasks").
		Columns("user_id", "title", "description", "completed", "created_at", "updated_at").
		Values(task.UserID, task.Title, task.Description, task.Completed, task.CreatedAt, task.UpdatedAt).
		ToSql()

	if err != nil {
		tracing.AddSpanError(span, err)
		return domain.Task{}, err
	}

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		tracing.AddSpanError(span, err)
		slog.Error("Insert failed", "error", err)
		return domain.Task{}, err
	}

	id, err := result.LastInsertId()

	if err != nil {
		tracing.AddSpanError(span, err)
		return domain.Task{}, err
	}

	span.SetAttributes(attribute.Int("task.id", int(id)))

	return tr.GetByID(ctx, int(id))
}

func (tr *TaskRepository) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	query, args, err := tr.db.QueryBuilder.Update("tasks").
		SetMap(task.ToMap()).
		Where(sq.Eq{"id": task.ID}).
		ToSql()

	if err != nil {
		return domain.Task{}, err
	}

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		slog.Error("Update failed", "error", err, "id", task.ID)
		return domain.Task{}, err
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	return tr.GetByID(ctx, task.ID)
}

func (tr *TaskRepository) Delete(ctx context.Context, id int) error {
	query, args, err := tr.db.QueryBuilder.Delete("tasks").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.ExecContext(ctx, query, args...)

	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}
