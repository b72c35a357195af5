package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/devdash/devdash/internal/db"
	"github.com/devdash/devdash/internal/insights/models"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	pool, err := db.OpenSQLitePool(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(func() { _ = pool.Close() })

	store, err := NewSQLStore(pool)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestSQLStoreBatchInserts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	insights := []*models.Insight{
		{UserID: "user-1", Type: models.TypePeakHours, Title: "Peak Productivity Hours", Confidence: 85, Actionable: true},
		{UserID: "user-1", Type: models.TypeFocusTrend, Title: "Strong Focus Sessions", Confidence: 90, Actionable: true},
	}
	if err := store.CreateInsightsBatch(ctx, insights); err != nil {
		t.Fatalf("batch: %v", err)
	}

	got, err := store.ListInsights(ctx, "user-1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 insights, got %d", len(got))
	}
}

func TestSQLStoreBatchRollsBackOnFailure(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seeded := &models.Insight{ID: "existing", UserID: "user-1", Type: models.TypePeakHours, Title: "Peak Productivity Hours"}
	if err := store.CreateInsight(ctx, seeded); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// The second insight collides with the seeded primary key, failing the
	// batch after the first row was already written inside the transaction.
	insights := []*models.Insight{
		{UserID: "user-1", Type: models.TypeFocusTrend, Title: "Strong Focus Sessions"},
		{ID: "existing", UserID: "user-1", Type: models.TypeBreakReminder, Title: "Take a Break"},
	}
	if err := store.CreateInsightsBatch(ctx, insights); err == nil {
		t.Fatal("expected batch to fail on duplicate id")
	}

	got, err := store.ListInsights(ctx, "user-1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected only the seeded insight after rollback, got %d", len(got))
	}
	if got[0].ID != "existing" {
		t.Errorf("seeded insight changed: %+v", got[0])
	}
}
