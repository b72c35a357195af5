package dashboard

import (
	"context"
	"testing"
	"time"

	pomodoromodels "github.com/devdash/devdash/internal/pomodoro/models"
	pomodorostore "github.com/devdash/devdash/internal/pomodoro/store"
	taskmodels "github.com/devdash/devdash/internal/task/models"
	taskstore "github.com/devdash/devdash/internal/task/store"
)

func TestStatsZeroActivity(t *testing.T) {
	svc := NewService(pomodorostore.NewMemoryStore(), taskstore.NewMemoryStore())

	stats, err := svc.Stats(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TodayFocusTime != 0 || stats.WeekFocusTime != 0 || stats.WeekTasks != 0 {
		t.Errorf("expected zero focus/tasks, got %+v", stats)
	}
	// Placeholder values until the GitHub integration is real.
	if stats.TodayCommits != 5 || stats.WeekCommits != 25 || stats.Streak != 7 {
		t.Errorf("unexpected placeholder values: %+v", stats)
	}
}

func TestStatsFocusRollup(t *testing.T) {
	sessions := pomodorostore.NewMemoryStore()
	tasks := taskstore.NewMemoryStore()
	svc := NewService(sessions, tasks)
	ctx := context.Background()

	now := time.Now().UTC()
	seed := func(startedAt time.Time, duration int, completed bool) {
		session := &pomodoromodels.Session{
			UserID:    "user-1",
			Duration:  duration,
			StartedAt: startedAt,
		}
		if err := sessions.CreateSession(ctx, session); err != nil {
			t.Fatalf("seed session: %v", err)
		}
		if completed {
			session.Completed = true
			done := startedAt.Add(time.Duration(duration) * time.Minute)
			session.CompletedAt = &done
			if err := sessions.UpdateSession(ctx, session); err != nil {
				t.Fatalf("complete session: %v", err)
			}
		}
	}

	todayNoon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.UTC)
	seed(todayNoon, 30, true)                    // today, counted twice (day + week)
	seed(todayNoon, 25, false)                   // incomplete, ignored
	seed(todayNoon.AddDate(0, 0, -3), 45, true)  // this week only
	seed(todayNoon.AddDate(0, 0, -10), 60, true) // outside the window

	task := &taskmodels.Task{UserID: "user-1", Title: "done", Priority: taskmodels.PriorityMedium}
	if err := tasks.CreateTask(ctx, task); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	task.Completed = true
	if err := tasks.UpdateTask(ctx, task); err != nil {
		t.Fatalf("complete task: %v", err)
	}

	stats, err := svc.Stats(ctx, "user-1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TodayFocusTime != 0.5 {
		t.Errorf("expected 0.5 hours today, got %v", stats.TodayFocusTime)
	}
	if stats.WeekFocusTime != 1.25 {
		t.Errorf("expected 1.25 hours this week, got %v", stats.WeekFocusTime)
	}
	if stats.WeekTasks != 1 {
		t.Errorf("expected 1 completed task this week, got %d", stats.WeekTasks)
	}
}
