package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/task/models"
)

// MemoryStore is an in-memory task store for tests.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]*models.Task
}

// NewMemoryStore creates an empty in-memory task store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tasks: make(map[string]*models.Task)}
}

// ListTasks returns the user's tasks, newest first
func (s *MemoryStore) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*models.Task, 0)
	for _, task := range s.tasks {
		if task.UserID == userID {
			clone := *task
			tasks = append(tasks, &clone)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// CreateTask inserts a new task
func (s *MemoryStore) CreateTask(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Tags == nil {
		task.Tags = models.TagList{}
	}

	clone := *task
	s.tasks[task.ID] = &clone
	return nil
}

// GetTask retrieves a task by ID for the given user
func (s *MemoryStore) GetTask(ctx context.Context, id, userID string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return nil, apperrors.NotFound("task", id)
	}
	clone := *task
	return &clone, nil
}

// UpdateTask persists a modified task, matching on ID and owner
func (s *MemoryStore) UpdateTask(ctx context.Context, task *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return apperrors.NotFound("task", task.ID)
	}
	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = time.Now().UTC()

	clone := *task
	s.tasks[task.ID] = &clone
	return nil
}

// DeleteTask removes a task by ID for the given user
func (s *MemoryStore) DeleteTask(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok || task.UserID != userID {
		return apperrors.NotFound("task", id)
	}
	delete(s.tasks, id)
	return nil
}

// CountCompletedSince counts completed tasks updated at or after the given time
func (s *MemoryStore) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, task := range s.tasks {
		if task.UserID == userID && task.Completed && !task.UpdatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}
