// Package service provides business logic for the application.
package service

import (
	"context"

	"github.com/tasklight/tasklight/internal/model"
)

// UserStore is the persistence surface the auth service depends on.
// Implemented by *repository.Repository; tests provide in-memory fakes.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// TaskStore is the persistence surface the task service depends on.
// Every lookup and mutation filters by both task ID and owner.
type TaskStore interface {
	CreateTask(ctx context.Context, task *model.Task) error
	ListTasksByOwner(ctx context.Context, ownerID string) ([]*model.Task, error)
	UpdateTaskText(ctx context.Context, id, ownerID, text string) (*model.Task, error)
	DeleteTask(ctx context.Context, id, ownerID string) (int64, error)
}
