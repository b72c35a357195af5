// Package store provides persistence for tasks.
package store

import (
	"context"
	"time"

	"github.com/devdash/devdash/internal/task/models"
)

// Store defines the persistence operations for tasks. Every operation is
// scoped to the owning user; a task belonging to someone else behaves as if
// it does not exist.
type Store interface {
	// ListTasks returns the user's tasks, newest first.
	ListTasks(ctx context.Context, userID string) ([]*models.Task, error)

	// CreateTask inserts a new task. An empty ID is assigned a UUID.
	CreateTask(ctx context.Context, task *models.Task) error

	// GetTask retrieves a task by ID for the given user.
	GetTask(ctx context.Context, id, userID string) (*models.Task, error)

	// UpdateTask persists a modified task, matching on ID and owner.
	UpdateTask(ctx context.Context, task *models.Task) error

	// DeleteTask removes a task by ID for the given user.
	DeleteTask(ctx context.Context, id, userID string) error

	// CountCompletedSince counts the user's tasks that are completed and
	// were last updated at or after the given time.
	CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error)
}
