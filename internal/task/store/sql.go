package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/db"
	"github.com/devdash/devdash/internal/db/dialect"
	"github.com/devdash/devdash/internal/task/models"
)

// SQLStore provides task storage on SQLite or PostgreSQL.
type SQLStore struct {
	pool *db.Pool
}

// NewSQLStore creates a task store and initializes its schema.
func NewSQLStore(pool *db.Pool) (*SQLStore, error) {
	s := &SQLStore{pool: pool}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks schema: %w", err)
	}
	return s, nil
}

func (s *SQLStore) initSchema() error {
	ts := dialect.Timestamp(s.pool.DriverName())
	_, err := s.pool.Writer().Exec(fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT DEFAULT '',
		priority TEXT DEFAULT 'medium',
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		deadline %s,
		time_spent INTEGER NOT NULL DEFAULT 0,
		tags TEXT DEFAULT '[]',
		created_at %s NOT NULL,
		updated_at %s NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_user_created ON tasks(user_id, created_at);
	`, ts, ts, ts))
	return err
}

// ListTasks returns the user's tasks, newest first
func (s *SQLStore) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	r := s.pool.Reader()
	rows, err := r.QueryContext(ctx, r.Rebind(`
		SELECT id, user_id, title, description, priority, completed, deadline, time_spent, tags, created_at, updated_at
		FROM tasks WHERE user_id = ? ORDER BY created_at DESC
	`), userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanTasks(rows)
}

// CreateTask inserts a new task
func (s *SQLStore) CreateTask(ctx context.Context, task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	w := s.pool.Writer()
	_, err := w.ExecContext(ctx, w.Rebind(`
		INSERT INTO tasks (id, user_id, title, description, priority, completed, deadline, time_spent, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), task.ID, task.UserID, task.Title, task.Description, task.Priority, task.Completed, task.Deadline, task.TimeSpent, task.Tags.Encode(), task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetTask retrieves a task by ID for the given user
func (s *SQLStore) GetTask(ctx context.Context, id, userID string) (*models.Task, error) {
	r := s.pool.Reader()
	task, err := scanTask(r.QueryRowContext(ctx, r.Rebind(`
		SELECT id, user_id, title, description, priority, completed, deadline, time_spent, tags, created_at, updated_at
		FROM tasks WHERE id = ? AND user_id = ?
	`), id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("task", id)
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask persists a modified task, matching on ID and owner
func (s *SQLStore) UpdateTask(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now().UTC()

	w := s.pool.Writer()
	result, err := w.ExecContext(ctx, w.Rebind(`
		UPDATE tasks SET title = ?, description = ?, priority = ?, completed = ?, deadline = ?, time_spent = ?, tags = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`), task.Title, task.Description, task.Priority, task.Completed, task.Deadline, task.TimeSpent, task.Tags.Encode(), task.UpdatedAt, task.ID, task.UserID)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NotFound("task", task.ID)
	}
	return nil
}

// DeleteTask removes a task by ID for the given user
func (s *SQLStore) DeleteTask(ctx context.Context, id, userID string) error {
	w := s.pool.Writer()
	result, err := w.ExecContext(ctx, w.Rebind(`DELETE FROM tasks WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NotFound("task", id)
	}
	return nil
}

// CountCompletedSince counts completed tasks updated at or after the given time
func (s *SQLStore) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	r := s.pool.Reader()
	var count int
	err := r.QueryRowContext(ctx, r.Rebind(`
		SELECT COUNT(*) FROM tasks WHERE user_id = ? AND completed = ? AND updated_at >= ?
	`), userID, true, since).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var tags string
	var deadline sql.NullTime
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Priority, &task.Completed, &deadline, &task.TimeSpent, &tags, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if deadline.Valid {
		task.Deadline = &deadline.Time
	}
	task.Tags = models.DecodeTagList(tags)
	return task, nil
}

func scanTasks(rows *sql.Rows) ([]*models.Task, error) {
	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
