// Package models defines productivity insight domain entities.
package models

import "time"

// Insight types produced by the generator.
const (
	TypePeakHours     = "peak_hours"
	TypeFocusTrend    = "focus_trend"
	TypeBreakReminder = "break_reminder"
)

// Insight is a generated observation about a user's work patterns. Insights
// are write-once; generating again appends new rows without deduplication.
type Insight struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Confidence  int       `json:"confidence"`
	Actionable  bool      `json:"actionable"`
	CreatedAt   time.Time `json:"created_at"`
}
