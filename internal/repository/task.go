package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tasklight/tasklight/internal/model"
)

// ErrTaskNotFound is returned when no task matches both the task ID and
// the owner. A task owned by another user is indistinguishable from a
// nonexistent one.
var ErrTaskNotFound = errors.New("task not found")

// CreateTask inserts a new task into the database.
func (r *Repository) CreateTask(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (id, text, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Text,
		task.OwnerID,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// ListTasksByOwner returns every task owned by ownerID in insertion order.
// Task IDs are ULIDs, so ordering by ID is ordering by creation time.
// An empty result is valid, not an error.
func (r *Repository) ListTasksByOwner(ctx context.Context, ownerID string) ([]*model.Task, error) {
	query := `
		SELECT id, text, owner_id, created_at, updated_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*model.Task, 0)
	for rows.Next() {
		var task model.Task
		if err := rows.Scan(
			&task.ID,
			&task.Text,
			&task.OwnerID,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTaskText replaces the text of the task matching id AND ownerID
// and returns the updated row. Returns ErrTaskNotFound when no row
// matches both.
func (r *Repository) UpdateTaskText(ctx context.Context, id, ownerID, text string) (*model.Task, error) {
	query := `
		UPDATE tasks
		SET text = $3, updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING id, text, owner_id, created_at, updated_at
	`

	var task model.Task
	err := r.pool.QueryRow(ctx, query, id, ownerID, text).Scan(
		&task.ID,
		&task.Text,
		&task.OwnerID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return &task, nil
}

// DeleteTask deletes the task matching id AND ownerID. Returns the number
// of rows deleted; deleting a missing or foreign task is not an error.
func (r *Repository) DeleteTask(ctx context.Context, id, ownerID string) (int64, error) {
	query := `
		DELETE FROM tasks
		WHERE id = $1 AND owner_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}

	return tag.RowsAffected(), nil
}
