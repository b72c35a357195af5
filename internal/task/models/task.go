// Package models defines task domain entities.
package models

import (
	"encoding/json"
	"time"
)

// Task priorities. The priority is stored as free text; unknown values are
// kept as-is.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a to-do item owned by a single user.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Completed   bool       `json:"completed"`
	Deadline    *time.Time `json:"deadline"`
	TimeSpent   int        `json:"time_spent"` // minutes
	Tags        TagList    `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TagList is a list of free-form labels stored as a JSON text column.
type TagList []string

// Encode serializes the list for storage. A nil list encodes as [].
func (t TagList) Encode() string {
	if t == nil {
		t = TagList{}
	}
	data, err := json.Marshal(t)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// DecodeTagList parses a stored tag column. Corrupt or empty input degrades
// to an empty list rather than an error.
func DecodeTagList(raw string) TagList {
	if raw == "" {
		return TagList{}
	}
	var tags TagList
	if err := json.Unmarshal([]byte(raw), &tags); err != nil || tags == nil {
		return TagList{}
	}
	return tags
}
