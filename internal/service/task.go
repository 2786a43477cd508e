package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tasklight/tasklight/internal/metrics"
	"github.com/tasklight/tasklight/internal/model"
	"github.com/tasklight/tasklight/internal/repository"
)

// Task service errors.
var (
	ErrEmptyText    = errors.New("task text must not be empty")
	ErrTextTooLong  = errors.New("task text exceeds maximum length")
	ErrTaskNotFound = errors.New("task not found")
)

// maxTaskTextLength bounds task text to keep rows small.
const maxTaskTextLength = 4096

// TaskService handles task business logic scoped to the owning user.
type TaskService struct {
	tasks   TaskStore
	metrics metrics.Recorder
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks TaskStore, recorder metrics.Recorder) *TaskService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TaskService{
		tasks:   tasks,
		metrics: recorder,
	}
}

// List returns all tasks owned by ownerID in insertion order.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]*model.Task, error) {
	tasks, err := s.tasks.ListTasksByOwner(ctx, ownerID)
	if err != nil {
		s.metrics.RecordTaskOp("list", "error")
		return nil, err
	}

	s.metrics.RecordTaskOp("list", "success")
	return tasks, nil
}

// Create persists a new task bound to ownerID. Text is validated
// server-side: empty or whitespace-only text is rejected.
func (s *TaskService) Create(ctx context.Context, ownerID, text string) (*model.Task, error) {
	text = strings.TrimSpace(text)
	if err := validateText(text); err != nil {
		s.metrics.RecordTaskOp("create", "invalid_input")
		return nil, err
	}

	now := time.Now()
	task := &model.Task{
		// ULIDs sort by creation time, so insertion order falls out of
		// ordering by ID.
		ID:        ulid.Make().String(),
		Text:      text,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.tasks.CreateTask(ctx, task); err != nil {
		s.metrics.RecordTaskOp("create", "error")
		return nil, err
	}

	s.metrics.RecordTaskOp("create", "success")
	return task, nil
}

// Update replaces the text of the task matching id AND ownerID.
// A task owned by another user fails with ErrTaskNotFound, exactly like a
// nonexistent one, so task IDs cannot be probed across users.
func (s *TaskService) Update(ctx context.Context, ownerID, id, text string) (*model.Task, error) {
	text = strings.TrimSpace(text)
	if err := validateText(text); err != nil {
		s.metrics.RecordTaskOp("update", "invalid_input")
		return nil, err
	}

	task, err := s.tasks.UpdateTaskText(ctx, id, ownerID, text)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			s.metrics.RecordTaskOp("update", "not_found")
			return nil, ErrTaskNotFound
		}
		s.metrics.RecordTaskOp("update", "error")
		return nil, err
	}

	s.metrics.RecordTaskOp("update", "success")
	return task, nil
}

// Delete removes the task matching id AND ownerID. Deleting a missing or
// foreign task succeeds without effect; the operation is idempotent.
func (s *TaskService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.tasks.DeleteTask(ctx, id, ownerID); err != nil {
		s.metrics.RecordTaskOp("delete", "error")
		return err
	}

	s.metrics.RecordTaskOp("delete", "success")
	return nil
}

// validateText rejects empty and oversized task text.
func validateText(text string) error {
	if text == "" {
		return ErrEmptyText
	}
	if len(text) > maxTaskTextLength {
		return ErrTextTooLong
	}
	return nil
}
