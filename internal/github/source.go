// Package github provides the GitHub activity sync.
//
// The real GitHub API integration is not wired up yet; SampleSource stands in
// for it and fabricates plausible daily numbers.
package github

import (
	"context"
	"math/rand"
	"time"

	"github.com/devdash/devdash/internal/github/models"
)

// ActivitySource reports a user's GitHub activity for a single day.
type ActivitySource interface {
	FetchDay(ctx context.Context, username string, day time.Time) (*models.DayActivity, error)
}

// SampleSource fabricates activity numbers in place of the GitHub API.
type SampleSource struct{}

// NewSampleSource creates a placeholder source.
func NewSampleSource() *SampleSource {
	return &SampleSource{}
}

// FetchDay implements ActivitySource with random counts and a fixed
// repository list.
func (s *SampleSource) FetchDay(ctx context.Context, username string, day time.Time) (*models.DayActivity, error) {
	return &models.DayActivity{
		Commits:      rand.Intn(11),  // 0-10
		LinesAdded:   rand.Intn(501), // 0-500
		LinesRemoved: rand.Intn(201), // 0-200
		PullRequests: rand.Intn(4),   // 0-3
		Issues:       rand.Intn(3),   // 0-2
		Repositories: []string{"project-1", "project-2"},
	}, nil
}
