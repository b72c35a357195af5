package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/db"
	"github.com/devdash/devdash/internal/db/dialect"
	"github.com/devdash/devdash/internal/pomodoro/models"
)

// SQLStore provides pomodoro session storage on SQLite or PostgreSQL.
type SQLStore struct {
	pool *db.Pool
}

// NewSQLStore creates a session store and initializes its schema.
func NewSQLStore(pool *db.Pool) (*SQLStore, error) {
	s := &SQLStore{pool: pool}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize pomodoro schema: %w", err)
	}
	return s, nil
}

func (s *SQLStore) initSchema() error {
	ts := dialect.Timestamp(s.pool.DriverName())
	_, err := s.pool.Writer().Exec(fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS pomodoro_sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		duration INTEGER NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		session_type TEXT DEFAULT 'work',
		task_id TEXT,
		started_at %s NOT NULL,
		completed_at %s
	);

	CREATE INDEX IF NOT EXISTS idx_pomodoro_user_started ON pomodoro_sessions(user_id, started_at);
	`, ts, ts))
	return err
}

// ListSessions returns the user's sessions, most recently started first
func (s *SQLStore) ListSessions(ctx context.Context, userID string, limit int) ([]*models.Session, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	r := s.pool.Reader()
	rows, err := r.QueryContext(ctx, r.Rebind(`
		SELECT id, user_id, duration, completed, session_type, task_id, started_at, completed_at
		FROM pomodoro_sessions WHERE user_id = ? ORDER BY started_at DESC LIMIT ?
	`), userID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	sessions := make([]*models.Session, 0)
	for rows.Next() {
		session := &models.Session{}
		var taskID sql.NullString
		var completedAt sql.NullTime
		if err := rows.Scan(&session.ID, &session.UserID, &session.Duration, &session.Completed, &session.SessionType, &taskID, &session.StartedAt, &completedAt); err != nil {
			return nil, err
		}
		if taskID.Valid {
			session.TaskID = &taskID.String
		}
		if completedAt.Valid {
			session.CompletedAt = &completedAt.Time
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// CreateSession inserts a new session
func (s *SQLStore) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now().UTC()
	}
	if session.SessionType == "" {
		session.SessionType = models.SessionTypeWork
	}

	w := s.pool.Writer()
	_, err := w.ExecContext(ctx, w.Rebind(`
		INSERT INTO pomodoro_sessions (id, user_id, duration, completed, session_type, task_id, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), session.ID, session.UserID, session.Duration, session.Completed, session.SessionType, session.TaskID, session.StartedAt, session.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID for the given user
func (s *SQLStore) GetSession(ctx context.Context, id, userID string) (*models.Session, error) {
	r := s.pool.Reader()
	session := &models.Session{}
	var taskID sql.NullString
	var completedAt sql.NullTime
	err := r.QueryRowContext(ctx, r.Rebind(`
		SELECT id, user_id, duration, completed, session_type, task_id, started_at, completed_at
		FROM pomodoro_sessions WHERE id = ? AND user_id = ?
	`), id, userID).Scan(&session.ID, &session.UserID, &session.Duration, &session.Completed, &session.SessionType, &taskID, &session.StartedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.NotFound("session", id)
	}
	if err != nil {
		return nil, err
	}
	if taskID.Valid {
		session.TaskID = &taskID.String
	}
	if completedAt.Valid {
		session.CompletedAt = &completedAt.Time
	}
	return session, nil
}

// UpdateSession persists completion changes, matching on ID and owner
func (s *SQLStore) UpdateSession(ctx context.Context, session *models.Session) error {
	w := s.pool.Writer()
	result, err := w.ExecContext(ctx, w.Rebind(`
		UPDATE pomodoro_sessions SET completed = ?, completed_at = ?
		WHERE id = ? AND user_id = ?
	`), session.Completed, session.CompletedAt, session.ID, session.UserID)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperrors.NotFound("session", session.ID)
	}
	return nil
}

// CompletedDurationSum sums completed session minutes started within [from, to)
func (s *SQLStore) CompletedDurationSum(ctx context.Context, userID string, from, to time.Time) (int, error) {
	r := s.pool.Reader()
	var total sql.NullInt64
	err := r.QueryRowContext(ctx, r.Rebind(`
		SELECT SUM(duration) FROM pomodoro_sessions
		WHERE user_id = ? AND completed = ? AND started_at >= ? AND started_at < ?
	`), userID, true, from, to).Scan(&total)
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}
