// Package store provides persistence for generated insights.
package store

import (
	"context"

	"github.com/devdash/devdash/internal/insights/models"
)

// DefaultListLimit caps insight listings when no limit is requested.
const DefaultListLimit = 10

// Store defines the persistence operations for insights.
type Store interface {
	// ListInsights returns the user's insights, newest first. A
	// non-positive limit falls back to DefaultListLimit.
	ListInsights(ctx context.Context, userID string, limit int) ([]*models.Insight, error)

	// CreateInsight inserts a new insight. An empty ID is assigned a UUID.
	CreateInsight(ctx context.Context, insight *models.Insight) error

	// CreateInsightsBatch inserts all insights or none of them. A failure
	// on any row leaves the store unchanged.
	CreateInsightsBatch(ctx context.Context, insights []*models.Insight) error
}
