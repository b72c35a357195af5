// Package service implements the rule-based insight generator.
package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/events"
	"github.com/devdash/devdash/internal/events/bus"
	"github.com/devdash/devdash/internal/insights/models"
	"github.com/devdash/devdash/internal/insights/store"
	pomodoromodels "github.com/devdash/devdash/internal/pomodoro/models"
	pomodorostore "github.com/devdash/devdash/internal/pomodoro/store"
)

// analysisWindow is how many recent sessions the generator looks at.
const analysisWindow = 50

// Service owns insight operations.
type Service struct {
	store    store.Store
	sessions pomodorostore.Store
	bus      bus.EventBus
	logger   *logger.Logger
}

// NewService creates an insight service.
func NewService(st store.Store, sessions pomodorostore.Store, eventBus bus.EventBus, log *logger.Logger) *Service {
	return &Service{store: st, sessions: sessions, bus: eventBus, logger: log}
}

// List returns the user's insights, newest first.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]*models.Insight, error) {
	return s.store.ListInsights(ctx, userID, limit)
}

// Generate runs the heuristics over the user's 50 most recent sessions and
// appends every insight they produce in one batch; a storage failure
// persists none of them. There is no deduplication against earlier runs.
// Returns the number of insights generated.
func (s *Service) Generate(ctx context.Context, userID string) (int, error) {
	sessions, err := s.sessions.ListSessions(ctx, userID, analysisWindow)
	if err != nil {
		return 0, apperrors.From(err, "failed to load sessions")
	}

	var insights []*models.Insight
	if len(sessions) > 0 {
		if insight := peakHours(sessions); insight != nil {
			insights = append(insights, insight)
		}
		if insight := focusTrend(sessions); insight != nil {
			insights = append(insights, insight)
		}
		if insight := breakReminder(sessions); insight != nil {
			insights = append(insights, insight)
		}
	}

	for _, insight := range insights {
		insight.UserID = userID
	}
	if err := s.store.CreateInsightsBatch(ctx, insights); err != nil {
		return 0, apperrors.From(err, "failed to store insights")
	}

	if len(insights) > 0 {
		event := bus.NewEvent(events.SubjectInsightGenerated, events.SourceBackend, map[string]interface{}{
			"user_id": userID,
			"count":   len(insights),
		})
		if err := s.bus.Publish(ctx, events.SubjectInsightGenerated, event); err != nil {
			s.logger.Warn("Failed to publish insight event", zap.Error(err))
		}
	}

	s.logger.Info("Insights generated",
		zap.String("user_id", userID),
		zap.Int("count", len(insights)))
	return len(insights), nil
}

// peakHours finds the hour of day with the most session starts. Ties break
// on whichever hour the map iteration reaches first.
func peakHours(sessions []*pomodoromodels.Session) *models.Insight {
	hourCounts := make(map[int]int)
	for _, session := range sessions {
		hourCounts[session.StartedAt.Hour()]++
	}
	if len(hourCounts) == 0 {
		return nil
	}

	peakHour, peakCount := -1, 0
	for hour, count := range hourCounts {
		if count > peakCount {
			peakHour, peakCount = hour, count
		}
	}
	percentage := int(math.Round(float64(peakCount) / float64(len(sessions)) * 100))

	return &models.Insight{
		Type:        models.TypePeakHours,
		Title:       "Peak Productivity Hours",
		Description: fmt.Sprintf("You're most productive around %d:00 with %d%% of your sessions.", peakHour, percentage),
		Confidence:  85,
		Actionable:  true,
	}
}

// focusTrend reports on the average length of the user's recently completed
// sessions, if there are enough of them to say anything.
func focusTrend(sessions []*pomodoromodels.Session) *models.Insight {
	window := sessions
	if len(window) > 10 {
		window = window[:10]
	}
	var completed []*pomodoromodels.Session
	for _, session := range window {
		if session.Completed {
			completed = append(completed, session)
		}
	}
	if len(completed) < 5 {
		return nil
	}

	total := 0
	for _, session := range completed {
		total += session.Duration
	}
	avg := float64(total) / float64(len(completed))

	if avg > 20 {
		return &models.Insight{
			Type:        models.TypeFocusTrend,
			Title:       "Strong Focus Sessions",
			Description: fmt.Sprintf("Your average session length is %.1f minutes. Excellent focus!", avg),
			Confidence:  90,
			Actionable:  true,
		}
	}
	return &models.Insight{
		Type:        models.TypeFocusTrend,
		Title:       "Consider Longer Sessions",
		Description: fmt.Sprintf("Your average session is %.1f minutes. Try extending to 25-minute sessions.", avg),
		Confidence:  80,
		Actionable:  true,
	}
}

// breakReminder fires when the three most recent completed work sessions all
// started within a three hour span.
func breakReminder(sessions []*pomodoromodels.Session) *models.Insight {
	var work []*pomodoromodels.Session
	for _, session := range sessions {
		if session.SessionType == pomodoromodels.SessionTypeWork && session.Completed {
			work = append(work, session)
		}
	}
	if len(work) < 3 {
		return nil
	}

	// Sessions are newest first; work[0] is the most recent start.
	span := work[0].StartedAt.Sub(work[2].StartedAt)
	if span.Hours() >= 3 {
		return nil
	}

	return &models.Insight{
		Type:        models.TypeBreakReminder,
		Title:       "Take a Break",
		Description: "You've had several focused sessions recently. Consider taking a longer break.",
		Confidence:  85,
		Actionable:  true,
	}
}
