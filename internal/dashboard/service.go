// Package dashboard aggregates per-user activity into the stats card the
// frontend shows on its landing view.
package dashboard

import (
	"context"
	"math"
	"time"

	apperrors "github.com/devdash/devdash/internal/common/errors"
	pomodorostore "github.com/devdash/devdash/internal/pomodoro/store"
	taskstore "github.com/devdash/devdash/internal/task/store"
)

// Stats is the dashboard rollup. The commit counts and streak are
// placeholders until the real GitHub integration lands; the frontend depends
// on these exact keys.
type Stats struct {
	TodayCommits   int     `json:"todayCommits"`
	TodayFocusTime float64 `json:"todayFocusTime"` // hours
	WeekCommits    int     `json:"weekCommits"`
	WeekFocusTime  float64 `json:"weekFocusTime"` // hours
	WeekTasks      int     `json:"weekTasks"`
	Streak         int     `json:"streak"`
}

const (
	placeholderTodayCommits = 5
	placeholderWeekCommits  = 25
	placeholderStreak       = 7
)

// Service computes dashboard rollups.
type Service struct {
	sessions pomodorostore.Store
	tasks    taskstore.Store
}

// NewService creates a dashboard service.
func NewService(sessions pomodorostore.Store, tasks taskstore.Store) *Service {
	return &Service{sessions: sessions, tasks: tasks}
}

// Stats returns the user's rollup for the current calendar day and the
// trailing seven days.
func (s *Service) Stats(ctx context.Context, userID string) (*Stats, error) {
	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	tomorrow := todayStart.AddDate(0, 0, 1)
	weekAgo := todayStart.AddDate(0, 0, -7)

	todayMinutes, err := s.sessions.CompletedDurationSum(ctx, userID, todayStart, tomorrow)
	if err != nil {
		return nil, apperrors.From(err, "failed to sum today's focus time")
	}
	weekMinutes, err := s.sessions.CompletedDurationSum(ctx, userID, weekAgo, tomorrow)
	if err != nil {
		return nil, apperrors.From(err, "failed to sum the week's focus time")
	}
	weekTasks, err := s.tasks.CountCompletedSince(ctx, userID, weekAgo)
	if err != nil {
		return nil, apperrors.From(err, "failed to count the week's tasks")
	}

	return &Stats{
		TodayCommits:   placeholderTodayCommits,
		TodayFocusTime: minutesToHours(todayMinutes),
		WeekCommits:    placeholderWeekCommits,
		WeekFocusTime:  minutesToHours(weekMinutes),
		WeekTasks:      weekTasks,
		Streak:         placeholderStreak,
	}, nil
}

// minutesToHours converts focus minutes to hours rounded to two decimals.
func minutesToHours(minutes int) float64 {
	if minutes == 0 {
		return 0
	}
	return math.Round(float64(minutes)/60*100) / 100
}
