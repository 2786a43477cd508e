package model

import "time"

// Task is a single to-do item owned by exactly one user.
// OwnerID is immutable after creation; every read and mutation
// filters by both task ID and owner.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
