// Package models defines pomodoro session domain entities.
package models

import "time"

// Session types. Stored as free text; unknown values are kept as-is.
const (
	SessionTypeWork  = "work"
	SessionTypeBreak = "break"
)

// Session is a single pomodoro timer run owned by a user. Once recorded,
// only the completion fields change.
type Session struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Duration    int        `json:"duration"` // minutes
	Completed   bool       `json:"completed"`
	SessionType string     `json:"session_type"`
	TaskID      *string    `json:"task_id"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}
