package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/pomodoro/models"
)

// MemoryStore is an in-memory session store for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.Session)}
}

// ListSessions returns the user's sessions, most recently started first
func (s *MemoryStore) ListSessions(ctx context.Context, userID string, limit int) ([]*models.Session, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]*models.Session, 0)
	for _, session := range s.sessions {
		if session.UserID == userID {
			clone := *session
			sessions = append(sessions, &clone)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

// CreateSession inserts a new session
func (s *MemoryStore) CreateSession(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now().UTC()
	}
	if session.SessionType == "" {
		session.SessionType = models.SessionTypeWork
	}

	clone := *session
	s.sessions[session.ID] = &clone
	return nil
}

// GetSession retrieves a session by ID for the given user
func (s *MemoryStore) GetSession(ctx context.Context, id, userID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok || session.UserID != userID {
		return nil, apperrors.NotFound("session", id)
	}
	clone := *session
	return &clone, nil
}

// UpdateSession persists completion changes, matching on ID and owner
func (s *MemoryStore) UpdateSession(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[session.ID]
	if !ok || existing.UserID != session.UserID {
		return apperrors.NotFound("session", session.ID)
	}
	existing.Completed = session.Completed
	existing.CompletedAt = session.CompletedAt

	clone := *existing
	*session = clone
	return nil
}

// CompletedDurationSum sums completed session minutes started within [from, to)
func (s *MemoryStore) CompletedDurationSum(ctx context.Context, userID string, from, to time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, session := range s.sessions {
		if session.UserID != userID || !session.Completed {
			continue
		}
		if session.StartedAt.Before(from) || !session.StartedAt.Before(to) {
			continue
		}
		total += session.Duration
	}
	return total, nil
}
