package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devdash/devdash/internal/insights/models"
)

// MemoryStore is an in-memory insight store for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	insights []*models.Insight
}

// NewMemoryStore creates an empty in-memory insight store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ListInsights returns the user's insights, newest first
func (s *MemoryStore) ListInsights(ctx context.Context, userID string, limit int) ([]*models.Insight, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	insights := make([]*models.Insight, 0)
	for _, insight := range s.insights {
		if insight.UserID == userID {
			clone := *insight
			insights = append(insights, &clone)
		}
	}
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].CreatedAt.After(insights[j].CreatedAt)
	})
	if len(insights) > limit {
		insights = insights[:limit]
	}
	return insights, nil
}

// CreateInsight inserts a new insight
func (s *MemoryStore) CreateInsight(ctx context.Context, insight *models.Insight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if insight.ID == "" {
		insight.ID = uuid.New().String()
	}
	insight.CreatedAt = time.Now().UTC()

	clone := *insight
	s.insights = append(s.insights, &clone)
	return nil
}

// CreateInsightsBatch inserts all insights or none. Clones are staged before
// any are appended so a partial batch is never visible.
func (s *MemoryStore) CreateInsightsBatch(ctx context.Context, insights []*models.Insight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make([]*models.Insight, 0, len(insights))
	for _, insight := range insights {
		if insight.ID == "" {
			insight.ID = uuid.New().String()
		}
		insight.CreatedAt = time.Now().UTC()
		clone := *insight
		staged = append(staged, &clone)
	}
	s.insights = append(s.insights, staged...)
	return nil
}
