package domain

import (
	"time"
)

type TaskFilter string

const (
	TaskFilterAll       TaskFilter = "all"
	TaskFilterPending   TaskFilter = "pending"
	TaskFilterCompleted TaskFilter = "completed"
)

// ParseTaskFilter is forgiving: anything other than the two known
// status values, empty string included, selects all tasks.
func ParseTaskFilter(status string) TaskFilter {
	switch status {
	case "pending":
		return TaskFilterPending
	case "completed":
		return TaskFilterCompleted
	default:
		return TaskFilterAll
	}
}

type Task struct {
	ID          int     `db:"id"`
	UserID      string  `db:"user_id"`
	Title       string  `validate:"required,min=1,max=200"`
	Description *string `db:"description"`
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch carries the fields of a partial update. A nil field
// leaves the stored value unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
}

func (t *Task) BelongsToUser(userID string) bool {
	return t.UserID == userID
}

func (t *Task) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"title":       t.Title,
		"description": t.Description,
		"completed":   t.Completed,
		"updated_at":  t.UpdatedAt,
	}
}
