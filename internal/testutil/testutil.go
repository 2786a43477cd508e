// Package testutil provides shared test helpers and in-memory fakes.
package testutil

import (
	"context"
	"os"
	"sort"
	"sync"
	"testing"

	"github.com/tasklight/tasklight/internal/model"
	"github.com/tasklight/tasklight/internal/repository"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// MemStore is an in-memory implementation of the service store interfaces.
// It mirrors the repository's semantics: unique usernames and emails, and
// task lookups that always filter by both ID and owner.
type MemStore struct {
	mu    sync.Mutex
	users map[string]*model.User
	tasks map[string]*model.Task

	// FailNext forces the next call to return this error, simulating a
	// store failure.
	FailNext error
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		users: make(map[string]*model.User),
		tasks: make(map[string]*model.Task),
	}
}

func (m *MemStore) takeErr() error {
	err := m.FailNext
	m.FailNext = nil
	return err
}

// CreateUser stores a user, enforcing username and email uniqueness.
func (m *MemStore) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return err
	}

	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrUserExists
		}
	}

	cp := *user
	m.users[user.ID] = &cp
	return nil
}

// GetUserByUsername returns the user with the given username.
func (m *MemStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// UserCount returns the number of stored users.
func (m *MemStore) UserCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// CreateTask stores a task.
func (m *MemStore) CreateTask(ctx context.Context, task *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return err
	}

	cp := *task
	m.tasks[task.ID] = &cp
	return nil
}

// ListTasksByOwner returns the owner's tasks ordered by ID.
func (m *MemStore) ListTasksByOwner(ctx context.Context, ownerID string) ([]*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	out := make([]*model.Task, 0)
	for _, task := range m.tasks {
		if task.OwnerID == ownerID {
			cp := *task
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateTaskText updates the task matching id AND ownerID.
func (m *MemStore) UpdateTaskText(ctx context.Context, id, ownerID, text string) (*model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return nil, err
	}

	task, ok := m.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, repository.ErrTaskNotFound
	}

	task.Text = text
	cp := *task
	return &cp, nil
}

// DeleteTask removes the task matching id AND ownerID.
func (m *MemStore) DeleteTask(ctx context.Context, id, ownerID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeErr(); err != nil {
		return 0, err
	}

	task, ok := m.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return 0, nil
	}

	delete(m.tasks, id)
	return 1, nil
}
