package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devdash/devdash/internal/github/models"
)

// MemoryStore is an in-memory stats store for tests. Like the SQL store it
// enforces no uniqueness on (user, date).
type MemoryStore struct {
	mu   sync.RWMutex
	rows []*models.Stats
}

// NewMemoryStore creates an empty in-memory stats store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ListStats returns the user's rows ordered by date descending
func (s *MemoryStore) ListStats(ctx context.Context, userID string, start, end *models.Date) ([]*models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make([]*models.Stats, 0)
	for _, row := range s.rows {
		if row.UserID != userID {
			continue
		}
		if start != nil && row.Date.Before(start.Time) {
			continue
		}
		if end != nil && row.Date.After(end.Time) {
			continue
		}
		clone := *row
		stats = append(stats, &clone)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Date.After(stats[j].Date.Time)
	})
	return stats, nil
}

// CreateStats inserts a row
func (s *MemoryStore) CreateStats(ctx context.Context, stats *models.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stats.ID == "" {
		stats.ID = uuid.New().String()
	}
	stats.CreatedAt = time.Now().UTC()
	if stats.Repositories == nil {
		stats.Repositories = models.RepositoryList{}
	}

	clone := *stats
	s.rows = append(s.rows, &clone)
	return nil
}

// CreateStatsBatch inserts all rows or none. Clones are staged before any
// are appended so a partial batch is never visible.
func (s *MemoryStore) CreateStatsBatch(ctx context.Context, rows []*models.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make([]*models.Stats, 0, len(rows))
	for _, stats := range rows {
		if stats.ID == "" {
			stats.ID = uuid.New().String()
		}
		stats.CreatedAt = time.Now().UTC()
		if stats.Repositories == nil {
			stats.Repositories = models.RepositoryList{}
		}
		clone := *stats
		staged = append(staged, &clone)
	}
	s.rows = append(s.rows, staged...)
	return nil
}

// HasStatsForDate reports whether the user already has a row for the day
func (s *MemoryStore) HasStatsForDate(ctx context.Context, userID string, date models.Date) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.rows {
		if row.UserID == userID && row.Date.Equal(date.Time) {
			return true, nil
		}
	}
	return false, nil
}
