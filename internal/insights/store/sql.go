package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/devdash/devdash/internal/db"
	"github.com/devdash/devdash/internal/db/dialect"
	"github.com/devdash/devdash/internal/insights/models"
)

// SQLStore provides insight storage on SQLite or PostgreSQL.
type SQLStore struct {
	pool *db.Pool
}

// NewSQLStore creates an insight store and initializes its schema.
func NewSQLStore(pool *db.Pool) (*SQLStore, error) {
	s := &SQLStore{pool: pool}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize insights schema: %w", err)
	}
	return s, nil
}

func (s *SQLStore) initSchema() error {
	ts := dialect.Timestamp(s.pool.DriverName())
	_, err := s.pool.Writer().Exec(fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS ai_insights (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT DEFAULT '',
		confidence INTEGER NOT NULL DEFAULT 0,
		actionable BOOLEAN NOT NULL DEFAULT FALSE,
		created_at %s NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ai_insights_user_created ON ai_insights(user_id, created_at);
	`, ts))
	return err
}

// ListInsights returns the user's insights, newest first
func (s *SQLStore) ListInsights(ctx context.Context, userID string, limit int) ([]*models.Insight, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	r := s.pool.Reader()
	rows, err := r.QueryContext(ctx, r.Rebind(`
		SELECT id, user_id, type, title, description, confidence, actionable, created_at
		FROM ai_insights WHERE user_id = ? ORDER BY created_at DESC LIMIT ?
	`), userID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	insights := make([]*models.Insight, 0)
	for rows.Next() {
		insight := &models.Insight{}
		if err := rows.Scan(&insight.ID, &insight.UserID, &insight.Type, &insight.Title, &insight.Description, &insight.Confidence, &insight.Actionable, &insight.CreatedAt); err != nil {
			return nil, err
		}
		insights = append(insights, insight)
	}
	return insights, rows.Err()
}

// CreateInsight inserts a new insight
func (s *SQLStore) CreateInsight(ctx context.Context, insight *models.Insight) error {
	return insertInsight(ctx, s.pool.Writer(), insight)
}

// CreateInsightsBatch inserts all insights in one transaction; a failure on
// any row rolls the whole batch back
func (s *SQLStore) CreateInsightsBatch(ctx context.Context, insights []*models.Insight) error {
	if len(insights) == 0 {
		return nil
	}

	tx, err := s.pool.Writer().BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin insights batch: %w", err)
	}
	for _, insight := range insights {
		if err := insertInsight(ctx, tx, insight); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit insights batch: %w", err)
	}
	return nil
}

func insertInsight(ctx context.Context, ext sqlx.ExtContext, insight *models.Insight) error {
	if insight.ID == "" {
		insight.ID = uuid.New().String()
	}
	insight.CreatedAt = time.Now().UTC()

	_, err := ext.ExecContext(ctx, ext.Rebind(`
		INSERT INTO ai_insights (id, user_id, type, title, description, confidence, actionable, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), insight.ID, insight.UserID, insight.Type, insight.Title, insight.Description, insight.Confidence, insight.Actionable, insight.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create insight: %w", err)
	}
	return nil
}
