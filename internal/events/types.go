// Package events defines the subjects published on the DevDash event bus.
package events

// Event source identifier for events produced by this backend.
const SourceBackend = "devdash-backend"

// Task lifecycle subjects.
const (
	SubjectTaskCreated = "task.created"
	SubjectTaskUpdated = "task.updated"
	SubjectTaskDeleted = "task.deleted"
)

// Pomodoro session subjects.
const (
	SubjectPomodoroStarted   = "pomodoro.started"
	SubjectPomodoroCompleted = "pomodoro.completed"
)

// GitHub activity subjects.
const (
	SubjectGitHubSynced = "github.synced"
)

// Insight subjects.
const (
	SubjectInsightGenerated = "insight.generated"
)

// SubjectAll matches every subject published by the backend.
const SubjectAll = ">"
