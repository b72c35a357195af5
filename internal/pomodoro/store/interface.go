// Package store provides persistence for pomodoro sessions.
package store

import (
	"context"
	"time"

	"github.com/devdash/devdash/internal/pomodoro/models"
)

// DefaultListLimit caps session listings when no limit is requested.
const DefaultListLimit = 50

// Store defines the persistence operations for pomodoro sessions. Every
// operation is scoped to the owning user.
type Store interface {
	// ListSessions returns the user's sessions, most recently started
	// first. A non-positive limit falls back to DefaultListLimit.
	ListSessions(ctx context.Context, userID string, limit int) ([]*models.Session, error)

	// CreateSession inserts a new session. An empty ID is assigned a UUID
	// and a zero StartedAt defaults to the current time.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session by ID for the given user.
	GetSession(ctx context.Context, id, userID string) (*models.Session, error)

	// UpdateSession persists completion changes to the user's session.
	// Only Completed and CompletedAt are written; the rest of the row is
	// immutable once recorded.
	UpdateSession(ctx context.Context, session *models.Session) error

	// CompletedDurationSum sums the duration in minutes of the user's
	// completed sessions started within [from, to).
	CompletedDurationSum(ctx context.Context, userID string, from, to time.Time) (int, error)
}
