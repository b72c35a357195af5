package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/events/bus"
	"github.com/devdash/devdash/internal/github"
	"github.com/devdash/devdash/internal/github/models"
	"github.com/devdash/devdash/internal/github/store"
)

func newService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()
	log := logger.Default()
	st := store.NewMemoryStore()
	svc := NewService(st, github.NewSampleSource(), bus.NewMemoryEventBus(log), log)
	return svc, st
}

func TestSyncFillsThirtyDays(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	inserted, err := svc.Sync(ctx, "user-1", "octocat")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if inserted != 30 {
		t.Errorf("expected 30 inserted days, got %d", inserted)
	}

	rows, err := st.ListStats(ctx, "user-1", nil, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 30 {
		t.Fatalf("expected 30 rows, got %d", len(rows))
	}
	if !rows[0].Date.Equal(models.NewDate(time.Now()).Time) {
		t.Errorf("expected newest row to be today, got %s", rows[0].Date)
	}
	for _, row := range rows {
		if row.Commits < 0 || row.Commits > 10 {
			t.Errorf("commits out of range: %d", row.Commits)
		}
		if len(row.Repositories) != 2 {
			t.Errorf("expected two placeholder repositories, got %v", row.Repositories)
		}
	}
}

func TestSyncSkipsExistingDays(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	if _, err := svc.Sync(ctx, "user-1", "octocat"); err != nil {
		t.Fatalf("first sync: %v", err)
	}
	inserted, err := svc.Sync(ctx, "user-1", "octocat")
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if inserted != 0 {
		t.Errorf("expected second sync to insert nothing, got %d", inserted)
	}

	rows, _ := st.ListStats(ctx, "user-1", nil, nil)
	if len(rows) != 30 {
		t.Errorf("expected 30 rows after double sync, got %d", len(rows))
	}
}

func TestStoreAllowsDuplicateDays(t *testing.T) {
	// The existence check is application-level only; the store itself
	// accepts duplicate (user, date) rows, which is what makes concurrent
	// syncs able to double-insert.
	_, st := newService(t)
	ctx := context.Background()

	day := models.NewDate(time.Now())
	for i := 0; i < 2; i++ {
		if err := st.CreateStats(ctx, &models.Stats{UserID: "user-1", Date: day, Commits: i}); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	rows, err := st.ListStats(ctx, "user-1", nil, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected duplicate rows to be accepted, got %d", len(rows))
	}
}

// failingStatsStore rejects batch writes, standing in for a storage outage.
type failingStatsStore struct {
	*store.MemoryStore
}

func (s *failingStatsStore) CreateStatsBatch(ctx context.Context, rows []*models.Stats) error {
	return errors.New("write failed")
}

func TestSyncPersistsNothingOnStoreFailure(t *testing.T) {
	log := logger.Default()
	st := &failingStatsStore{MemoryStore: store.NewMemoryStore()}
	svc := NewService(st, github.NewSampleSource(), bus.NewMemoryEventBus(log), log)
	ctx := context.Background()

	inserted, err := svc.Sync(ctx, "user-1", "octocat")
	if err == nil {
		t.Fatal("expected sync to fail")
	}
	if inserted != 0 {
		t.Errorf("expected 0 inserted on failure, got %d", inserted)
	}

	rows, listErr := st.ListStats(ctx, "user-1", nil, nil)
	if listErr != nil {
		t.Fatalf("list: %v", listErr)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows persisted after a failed sync, got %d", len(rows))
	}
}

func TestSyncScopedToUser(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()

	if _, err := svc.Sync(ctx, "user-1", "octocat"); err != nil {
		t.Fatalf("sync: %v", err)
	}

	rows, _ := st.ListStats(ctx, "user-2", nil, nil)
	if len(rows) != 0 {
		t.Errorf("expected no rows for another user, got %d", len(rows))
	}
}
