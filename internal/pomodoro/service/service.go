// Package service implements pomodoro session business logic.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/events"
	"github.com/devdash/devdash/internal/events/bus"
	"github.com/devdash/devdash/internal/pomodoro/models"
	"github.com/devdash/devdash/internal/pomodoro/store"
)

// Service owns pomodoro session operations.
type Service struct {
	store  store.Store
	bus    bus.EventBus
	logger *logger.Logger
}

// NewService creates a pomodoro service.
func NewService(st store.Store, eventBus bus.EventBus, log *logger.Logger) *Service {
	return &Service{store: st, bus: eventBus, logger: log}
}

// CreateParams holds the fields accepted when recording a session.
type CreateParams struct {
	Duration    int
	SessionType string
	TaskID      *string
	StartedAt   *time.Time
}

// UpdateParams holds the completion fields. Everything else about a session
// is immutable once recorded.
type UpdateParams struct {
	Completed   *bool
	CompletedAt *time.Time
}

// List returns the user's sessions, most recently started first.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]*models.Session, error) {
	return s.store.ListSessions(ctx, userID, limit)
}

// Create records a new session for the user.
func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*models.Session, error) {
	if params.Duration <= 0 {
		return nil, apperrors.ValidationError("duration", "must be a positive number of minutes")
	}

	session := &models.Session{
		UserID:      userID,
		Duration:    params.Duration,
		SessionType: params.SessionType,
		TaskID:      params.TaskID,
	}
	if params.StartedAt != nil {
		session.StartedAt = *params.StartedAt
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, apperrors.From(err, "failed to create session")
	}

	s.publish(ctx, events.SubjectPomodoroStarted, session)
	s.logger.Info("Pomodoro session recorded",
		zap.String("session_id", session.ID),
		zap.String("user_id", userID),
		zap.Int("duration", session.Duration))
	return session, nil
}

// Update applies completion changes to the user's session.
func (s *Service) Update(ctx context.Context, id, userID string, params UpdateParams) (*models.Session, error) {
	session, err := s.store.GetSession(ctx, id, userID)
	if err != nil {
		return nil, apperrors.From(err, "failed to load session")
	}

	if params.Completed != nil {
		session.Completed = *params.Completed
		if session.Completed && params.CompletedAt == nil && session.CompletedAt == nil {
			now := time.Now().UTC()
			session.CompletedAt = &now
		}
	}
	if params.CompletedAt != nil {
		session.CompletedAt = params.CompletedAt
	}

	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, apperrors.From(err, "failed to update session")
	}

	if session.Completed {
		s.publish(ctx, events.SubjectPomodoroCompleted, session)
	}
	return session, nil
}

func (s *Service) publish(ctx context.Context, subject string, session *models.Session) {
	event := bus.NewEvent(subject, events.SourceBackend, map[string]interface{}{
		"session_id": session.ID,
		"user_id":    session.UserID,
		"duration":   session.Duration,
	})
	if err := s.bus.Publish(ctx, subject, event); err != nil {
		s.logger.Warn("Failed to publish session event",
			zap.String("subject", subject),
			zap.Error(err))
	}
}
