// Package service implements the GitHub stats listing and sync.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/events"
	"github.com/devdash/devdash/internal/events/bus"
	"github.com/devdash/devdash/internal/github"
	"github.com/devdash/devdash/internal/github/models"
	"github.com/devdash/devdash/internal/github/store"
)

// syncWindowDays is the number of calendar days a sync covers, including today.
const syncWindowDays = 30

// Service owns GitHub stats operations.
type Service struct {
	store  store.Store
	source github.ActivitySource
	bus    bus.EventBus
	logger *logger.Logger
}

// NewService creates a GitHub stats service.
func NewService(st store.Store, source github.ActivitySource, eventBus bus.EventBus, log *logger.Logger) *Service {
	return &Service{store: st, source: source, bus: eventBus, logger: log}
}

// List returns the user's daily rows, optionally bounded by inclusive dates.
func (s *Service) List(ctx context.Context, userID string, start, end *models.Date) ([]*models.Stats, error) {
	return s.store.ListStats(ctx, userID, start, end)
}

// Sync fills in the trailing 30 calendar days for the user, skipping days
// that already have a row. The existence checks and the batch insert are not
// atomic with each other, so two concurrent syncs can both pass the checks
// and insert duplicate days; the writes themselves commit as one batch, so a
// storage failure persists nothing. Returns the number of days inserted.
func (s *Service) Sync(ctx context.Context, userID, username string) (int, error) {
	today := models.NewDate(time.Now())

	var rows []*models.Stats
	for i := 0; i < syncWindowDays; i++ {
		day := models.NewDate(today.AddDate(0, 0, -i))

		exists, err := s.store.HasStatsForDate(ctx, userID, day)
		if err != nil {
			return 0, apperrors.From(err, "failed to check existing stats")
		}
		if exists {
			continue
		}

		activity, err := s.source.FetchDay(ctx, username, day.Time)
		if err != nil {
			return 0, apperrors.From(err, "failed to fetch activity")
		}

		rows = append(rows, &models.Stats{
			UserID:       userID,
			Date:         day,
			Commits:      activity.Commits,
			LinesAdded:   activity.LinesAdded,
			LinesRemoved: activity.LinesRemoved,
			PullRequests: activity.PullRequests,
			Issues:       activity.Issues,
			Repositories: models.RepositoryList(activity.Repositories),
		})
	}

	if err := s.store.CreateStatsBatch(ctx, rows); err != nil {
		return 0, apperrors.From(err, "failed to store stats")
	}
	inserted := len(rows)

	event := bus.NewEvent(events.SubjectGitHubSynced, events.SourceBackend, map[string]interface{}{
		"user_id":  userID,
		"inserted": inserted,
	})
	if err := s.bus.Publish(ctx, events.SubjectGitHubSynced, event); err != nil {
		s.logger.Warn("Failed to publish sync event", zap.Error(err))
	}

	s.logger.Info("GitHub stats synced",
		zap.String("user_id", userID),
		zap.Int("inserted", inserted))
	return inserted, nil
}
