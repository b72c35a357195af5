package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/events/bus"
	"github.com/devdash/devdash/internal/insights/models"
	"github.com/devdash/devdash/internal/insights/store"
	pomodoromodels "github.com/devdash/devdash/internal/pomodoro/models"
	pomodorostore "github.com/devdash/devdash/internal/pomodoro/store"
)

func newService(t *testing.T) (*Service, *pomodorostore.MemoryStore, *store.MemoryStore) {
	t.Helper()
	log := logger.Default()
	sessions := pomodorostore.NewMemoryStore()
	insights := store.NewMemoryStore()
	svc := NewService(insights, sessions, bus.NewMemoryEventBus(log), log)
	return svc, sessions, insights
}

func seedSession(t *testing.T, st *pomodorostore.MemoryStore, userID string, duration int, completed bool, startedAt time.Time) {
	t.Helper()
	session := &pomodoromodels.Session{
		UserID:      userID,
		Duration:    duration,
		Completed:   completed,
		SessionType: pomodoromodels.SessionTypeWork,
		StartedAt:   startedAt,
	}
	if err := st.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	if completed {
		done := startedAt.Add(time.Duration(duration) * time.Minute)
		session.CompletedAt = &done
		if err := st.UpdateSession(context.Background(), session); err != nil {
			t.Fatalf("complete session: %v", err)
		}
	}
}

func TestGenerateNoSessions(t *testing.T) {
	svc, _, insights := newService(t)

	count, err := svc.Generate(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 insights with no sessions, got %d", count)
	}

	stored, _ := insights.ListInsights(context.Background(), "user-1", 0)
	if len(stored) != 0 {
		t.Errorf("expected nothing stored, got %d", len(stored))
	}
}

func TestGenerateStrongFocusScenario(t *testing.T) {
	svc, sessions, insights := newService(t)
	ctx := context.Background()

	// Ten completed sessions all starting in the 9 o'clock hour on distinct
	// days: durations [30 30 30 30 30 30 30 30 30 5] give a 27.5 minute
	// average over the 10-session window.
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		seedSession(t, sessions, "user-1", 30, true, base.AddDate(0, 0, i))
	}
	seedSession(t, sessions, "user-1", 5, true, base.AddDate(0, 0, 9))

	count, err := svc.Generate(ctx, "user-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	stored, _ := insights.ListInsights(ctx, "user-1", 0)
	if len(stored) != count {
		t.Fatalf("count %d does not match stored %d", count, len(stored))
	}

	byType := make(map[string]*models.Insight)
	for _, insight := range stored {
		byType[insight.Type] = insight
	}

	peak, ok := byType[models.TypePeakHours]
	if !ok {
		t.Fatal("expected a peak_hours insight")
	}
	if peak.Confidence != 85 {
		t.Errorf("peak confidence: expected 85, got %d", peak.Confidence)
	}
	if !strings.Contains(peak.Description, "around 9:00") || !strings.Contains(peak.Description, "100%") {
		t.Errorf("unexpected peak description: %q", peak.Description)
	}

	focus, ok := byType[models.TypeFocusTrend]
	if !ok {
		t.Fatal("expected a focus_trend insight")
	}
	if focus.Title != "Strong Focus Sessions" {
		t.Errorf("expected strong focus title, got %q", focus.Title)
	}
	if focus.Confidence != 90 {
		t.Errorf("focus confidence: expected 90, got %d", focus.Confidence)
	}
	if !strings.Contains(focus.Description, "27.5 minutes") {
		t.Errorf("unexpected focus description: %q", focus.Description)
	}

	// Work sessions are a day apart, so no break reminder.
	if _, ok := byType[models.TypeBreakReminder]; ok {
		t.Error("did not expect a break_reminder insight")
	}
}

func TestGenerateConsiderLongerSessions(t *testing.T) {
	svc, sessions, insights := newService(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 14, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		seedSession(t, sessions, "user-1", 10, true, base.AddDate(0, 0, i))
	}

	if _, err := svc.Generate(ctx, "user-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	stored, _ := insights.ListInsights(ctx, "user-1", 0)
	var focus *models.Insight
	for _, insight := range stored {
		if insight.Type == models.TypeFocusTrend {
			focus = insight
		}
	}
	if focus == nil {
		t.Fatal("expected a focus_trend insight")
	}
	if focus.Title != "Consider Longer Sessions" || focus.Confidence != 80 {
		t.Errorf("unexpected focus insight: %+v", focus)
	}
	if !strings.Contains(focus.Description, "10.0 minutes") {
		t.Errorf("unexpected focus description: %q", focus.Description)
	}
}

func TestGenerateBreakReminder(t *testing.T) {
	svc, sessions, insights := newService(t)
	ctx := context.Background()

	// Three completed work sessions within one hour.
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedSession(t, sessions, "user-1", 25, true, base.Add(time.Duration(i)*30*time.Minute))
	}

	if _, err := svc.Generate(ctx, "user-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	stored, _ := insights.ListInsights(ctx, "user-1", 0)
	found := false
	for _, insight := range stored {
		if insight.Type == models.TypeBreakReminder {
			found = true
			if insight.Title != "Take a Break" || insight.Confidence != 85 {
				t.Errorf("unexpected break insight: %+v", insight)
			}
		}
	}
	if !found {
		t.Error("expected a break_reminder insight")
	}
}

// failingInsightStore rejects batch writes, standing in for a storage outage.
type failingInsightStore struct {
	*store.MemoryStore
}

func (s *failingInsightStore) CreateInsightsBatch(ctx context.Context, insights []*models.Insight) error {
	return errors.New("write failed")
}

func TestGeneratePersistsNothingOnStoreFailure(t *testing.T) {
	log := logger.Default()
	sessions := pomodorostore.NewMemoryStore()
	insights := &failingInsightStore{MemoryStore: store.NewMemoryStore()}
	svc := NewService(insights, sessions, bus.NewMemoryEventBus(log), log)
	ctx := context.Background()

	// Enough activity for the heuristics to produce insights.
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		seedSession(t, sessions, "user-1", 25, true, base.Add(time.Duration(i)*30*time.Minute))
	}

	count, err := svc.Generate(ctx, "user-1")
	if err == nil {
		t.Fatal("expected generate to fail")
	}
	if count != 0 {
		t.Errorf("expected 0 generated on failure, got %d", count)
	}

	stored, listErr := insights.ListInsights(ctx, "user-1", 0)
	if listErr != nil {
		t.Fatalf("list: %v", listErr)
	}
	if len(stored) != 0 {
		t.Errorf("expected no insights persisted after a failed generate, got %d", len(stored))
	}
}

func TestGenerateAppendsWithoutDedup(t *testing.T) {
	svc, sessions, insights := newService(t)
	ctx := context.Background()

	seedSession(t, sessions, "user-1", 25, false, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))

	first, err := svc.Generate(ctx, "user-1")
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	second, err := svc.Generate(ctx, "user-1")
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}

	stored, _ := insights.ListInsights(ctx, "user-1", 0)
	if len(stored) != first+second {
		t.Errorf("expected %d stored insights, got %d", first+second, len(stored))
	}
}
