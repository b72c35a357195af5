package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/devdash/devdash/internal/db"
	"github.com/devdash/devdash/internal/db/dialect"
	"github.com/devdash/devdash/internal/github/models"
)

// SQLStore provides GitHub stats storage on SQLite or PostgreSQL.
type SQLStore struct {
	pool *db.Pool
}

// NewSQLStore creates a stats store and initializes its schema.
func NewSQLStore(pool *db.Pool) (*SQLStore, error) {
	s := &SQLStore{pool: pool}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize github stats schema: %w", err)
	}
	return s, nil
}

func (s *SQLStore) initSchema() error {
	ts := dialect.Timestamp(s.pool.DriverName())
	_, err := s.pool.Writer().Exec(fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS github_stats (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		commits INTEGER NOT NULL DEFAULT 0,
		lines_added INTEGER NOT NULL DEFAULT 0,
		lines_removed INTEGER NOT NULL DEFAULT 0,
		pull_requests INTEGER NOT NULL DEFAULT 0,
		issues INTEGER NOT NULL DEFAULT 0,
		repositories TEXT DEFAULT '[]',
		created_at %s NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_github_stats_user_date ON github_stats(user_id, date);
	`, ts))
	return err
}

// ListStats returns the user's rows ordered by date descending
func (s *SQLStore) ListStats(ctx context.Context, userID string, start, end *models.Date) ([]*models.Stats, error) {
	query := `
		SELECT id, user_id, date, commits, lines_added, lines_removed, pull_requests, issues, repositories, created_at
		FROM github_stats WHERE user_id = ?`
	args := []interface{}{userID}
	if start != nil {
		query += ` AND date >= ?`
		args = append(args, start.String())
	}
	if end != nil {
		query += ` AND date <= ?`
		args = append(args, end.String())
	}
	query += ` ORDER BY date DESC`

	r := s.pool.Reader()
	rows, err := r.QueryContext(ctx, r.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	stats := make([]*models.Stats, 0)
	for rows.Next() {
		row := &models.Stats{}
		var repos string
		if err := rows.Scan(&row.ID, &row.UserID, &row.Date, &row.Commits, &row.LinesAdded, &row.LinesRemoved, &row.PullRequests, &row.Issues, &repos, &row.CreatedAt); err != nil {
			return nil, err
		}
		row.Repositories = models.DecodeRepositoryList(repos)
		stats = append(stats, row)
	}
	return stats, rows.Err()
}

// CreateStats inserts a row
func (s *SQLStore) CreateStats(ctx context.Context, stats *models.Stats) error {
	return insertStats(ctx, s.pool.Writer(), stats)
}

// CreateStatsBatch inserts all rows in one transaction; a failure on any row
// rolls the whole batch back
func (s *SQLStore) CreateStatsBatch(ctx context.Context, rows []*models.Stats) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.pool.Writer().BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin stats batch: %w", err)
	}
	for _, stats := range rows {
		if err := insertStats(ctx, tx, stats); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit stats batch: %w", err)
	}
	return nil
}

func insertStats(ctx context.Context, ext sqlx.ExtContext, stats *models.Stats) error {
	if stats.ID == "" {
		stats.ID = uuid.New().String()
	}
	stats.CreatedAt = time.Now().UTC()

	_, err := ext.ExecContext(ctx, ext.Rebind(`
		INSERT INTO github_stats (id, user_id, date, commits, lines_added, lines_removed, pull_requests, issues, repositories, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), stats.ID, stats.UserID, stats.Date, stats.Commits, stats.LinesAdded, stats.LinesRemoved, stats.PullRequests, stats.Issues, stats.Repositories.Encode(), stats.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create github stats: %w", err)
	}
	return nil
}

// HasStatsForDate reports whether the user already has a row for the day
func (s *SQLStore) HasStatsForDate(ctx context.Context, userID string, date models.Date) (bool, error) {
	r := s.pool.Reader()
	var count int
	err := r.QueryRowContext(ctx, r.Rebind(`
		SELECT COUNT(*) FROM github_stats WHERE user_id = ? AND date = ?
	`), userID, date).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
