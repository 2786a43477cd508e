package dto

import (
	"time"

	"github.com/tasklight/tasklight/internal/model"
)

// TaskRequest is the body for POST /tasks and PUT /tasks/{id}.
type TaskRequest struct {
	Text string `json:"text"`
}

// TaskResponse is the API representation of a task.
type TaskResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToTaskResponse converts a task model to its API representation.
func ToTaskResponse(task *model.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Text:      task.Text,
		OwnerID:   task.OwnerID,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

// ToTaskListResponse converts a slice of tasks, never returning nil so the
// empty list serializes as [] rather than null.
func ToTaskListResponse(tasks []*model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, ToTaskResponse(task))
	}
	return out
}
