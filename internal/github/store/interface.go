// Package store provides persistence for daily GitHub activity rows.
package store

import (
	"context"

	"github.com/devdash/devdash/internal/github/models"
)

// Store defines the persistence operations for GitHub stats. The table has
// no uniqueness constraint on (user, date); callers check HasStatsForDate
// before inserting.
type Store interface {
	// ListStats returns the user's rows ordered by date descending. Nil
	// bounds are open; start and end are inclusive.
	ListStats(ctx context.Context, userID string, start, end *models.Date) ([]*models.Stats, error)

	// CreateStats inserts a row. An empty ID is assigned a UUID.
	CreateStats(ctx context.Context, stats *models.Stats) error

	// CreateStatsBatch inserts all rows or none of them. A failure on any
	// row leaves the store unchanged.
	CreateStatsBatch(ctx context.Context, rows []*models.Stats) error

	// HasStatsForDate reports whether the user already has a row for the
	// given day.
	HasStatsForDate(ctx context.Context, userID string, date models.Date) (bool, error)
}
