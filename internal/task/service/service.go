// Package service implements task business logic on top of the store.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/common/optional"
	"github.com/devdash/devdash/internal/events"
	"github.com/devdash/devdash/internal/events/bus"
	"github.com/devdash/devdash/internal/task/models"
	"github.com/devdash/devdash/internal/task/store"
)

// Service owns task operations. Ownership is stamped from the authenticated
// user; callers can never act on another user's tasks.
type Service struct {
	store  store.Store
	bus    bus.EventBus
	logger *logger.Logger
}

// NewService creates a task service.
func NewService(st store.Store, eventBus bus.EventBus, log *logger.Logger) *Service {
	return &Service{store: st, bus: eventBus, logger: log}
}

// CreateParams holds the fields accepted when creating a task.
type CreateParams struct {
	Title       string
	Description string
	Priority    string
	Deadline    *time.Time
	Tags        []string
}

// UpdateParams holds the fields accepted when updating a task. Pointer and
// optional fields that are absent leave the stored value untouched; explicit
// nulls clear the nullable fields.
type UpdateParams struct {
	Title       *string
	Description optional.Field[string]
	Priority    *string
	Completed   *bool
	Deadline    optional.Field[time.Time]
	TimeSpent   *int
	Tags        optional.Field[[]string]
}

// List returns the user's tasks, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]*models.Task, error) {
	return s.store.ListTasks(ctx, userID)
}

// Create inserts a new task owned by the given user.
func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*models.Task, error) {
	if params.Title == "" {
		return nil, apperrors.ValidationError("title", "must not be empty")
	}
	priority := params.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := &models.Task{
		UserID:      userID,
		Title:       params.Title,
		Description: params.Description,
		Priority:    priority,
		Deadline:    params.Deadline,
		Tags:        models.TagList(params.Tags),
	}
	if task.Tags == nil {
		task.Tags = models.TagList{}
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, apperrors.From(err, "failed to create task")
	}

	s.publish(ctx, events.SubjectTaskCreated, task)
	s.logger.Info("Task created",
		zap.String("task_id", task.ID),
		zap.String("user_id", userID))
	return task, nil
}

// Update applies a partial update to the user's task.
func (s *Service) Update(ctx context.Context, id, userID string, params UpdateParams) (*models.Task, error) {
	task, err := s.store.GetTask(ctx, id, userID)
	if err != nil {
		return nil, apperrors.From(err, "failed to load task")
	}

	if params.Title != nil {
		if *params.Title == "" {
			return nil, apperrors.ValidationError("title", "must not be empty")
		}
		task.Title = *params.Title
	}
	if params.Description.IsSet() {
		desc, _ := params.Description.Value()
		task.Description = desc
	}
	if params.Priority != nil {
		task.Priority = *params.Priority
	}
	if params.Completed != nil {
		task.Completed = *params.Completed
	}
	if params.Deadline.IsSet() {
		if deadline, ok := params.Deadline.Value(); ok {
			task.Deadline = &deadline
		} else {
			task.Deadline = nil
		}
	}
	if params.TimeSpent != nil {
		task.TimeSpent = *params.TimeSpent
	}
	if params.Tags.IsSet() {
		tags, _ := params.Tags.Value()
		task.Tags = models.TagList(tags)
		if task.Tags == nil {
			task.Tags = models.TagList{}
		}
	}

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, apperrors.From(err, "failed to update task")
	}

	s.publish(ctx, events.SubjectTaskUpdated, task)
	return task, nil
}

// Delete removes the user's task.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if err := s.store.DeleteTask(ctx, id, userID); err != nil {
		return apperrors.From(err, "failed to delete task")
	}

	s.publish(ctx, events.SubjectTaskDeleted, &models.Task{ID: id, UserID: userID})
	s.logger.Info("Task deleted",
		zap.String("task_id", id),
		zap.String("user_id", userID))
	return nil
}

func (s *Service) publish(ctx context.Context, subject string, task *models.Task) {
	event := bus.NewEvent(subject, events.SourceBackend, map[string]interface{}{
		"task_id": task.ID,
		"user_id": task.UserID,
	})
	if err := s.bus.Publish(ctx, subject, event); err != nil {
		s.logger.Warn("Failed to publish task event",
			zap.String("subject", subject),
			zap.Error(err))
	}
}
