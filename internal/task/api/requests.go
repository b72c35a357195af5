package api

import (
	"time"

	"github.com/devdash/devdash/internal/common/optional"
	"github.com/devdash/devdash/internal/task/service"
)

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Deadline    *time.Time `json:"deadline"`
	Tags        []string   `json:"tags"`
}

// UpdateTaskRequest is the payload for partially updating a task. Fields that
// are absent are left untouched; explicit nulls clear the nullable fields.
type UpdateTaskRequest struct {
	Title       *string                   `json:"title"`
	Description optional.Field[string]    `json:"description"`
	Priority    *string                   `json:"priority"`
	Completed   *bool                     `json:"completed"`
	Deadline    optional.Field[time.Time] `json:"deadline"`
	TimeSpent   *int                      `json:"time_spent"`
	Tags        optional.Field[[]string]  `json:"tags"`
}

func (r *CreateTaskRequest) toParams() service.CreateParams {
	return service.CreateParams{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Deadline:    r.Deadline,
		Tags:        r.Tags,
	}
}

func (r *UpdateTaskRequest) toParams() service.UpdateParams {
	return service.UpdateParams{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Completed:   r.Completed,
		Deadline:    r.Deadline,
		TimeSpent:   r.TimeSpent,
		Tags:        r.Tags,
	}
}
