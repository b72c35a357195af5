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
	"github.com/devdash/devdash/internal/user/models"
)

// SQLStore provides user storage on SQLite or PostgreSQL.
type SQLStore struct {
	pool *db.Pool
}

// NewSQLStore creates a user store and initializes its schema.
func NewSQLStore(pool *db.Pool) (*SQLStore, error) {
	s := &SQLStore{pool: pool}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize users schema: %w", err)
	}
	return s, nil
}

func (s *SQLStore) initSchema() error {
	ts := dialect.Timestamp(s.pool.DriverName())
	_, err := s.pool.Writer().Exec(fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL UNIQUE,
		full_name TEXT DEFAULT '',
		github_username TEXT DEFAULT '',
		github_access_token TEXT DEFAULT '',
		hashed_password TEXT DEFAULT '',
		api_token TEXT NOT NULL UNIQUE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at %s NOT NULL,
		updated_at %s NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_users_api_token ON users(api_token);
	`, ts, ts))
	return err
}

// CreateUser inserts a new user
func (s *SQLStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	w := s.pool.Writer()
	_, err := w.ExecContext(ctx, w.Rebind(`
		INSERT INTO users (id, email, username, full_name, github_username, github_access_token, hashed_password, api_token, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), user.ID, user.Email, user.Username, user.FullName, user.GitHubUsername, user.GitHubAccessToken, user.HashedPassword, user.APIToken, user.IsActive, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID
func (s *SQLStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	r := s.pool.Reader()
	user := &models.User{}
	err := r.GetContext(ctx, user, r.Rebind(`SELECT * FROM users WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("user", id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByToken resolves an API token to its active owner
func (s *SQLStore) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	r := s.pool.Reader()
	user := &models.User{}
	err := r.GetContext(ctx, user, r.Rebind(`SELECT * FROM users WHERE api_token = ? AND is_active = ?`), token, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Unauthorized("invalid API token")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureDefaultUser creates the development user if the token is unclaimed
func (s *SQLStore) EnsureDefaultUser(ctx context.Context, email, token string) (*models.User, error) {
	existing, err := s.GetUserByToken(ctx, token)
	if err == nil {
		return existing, nil
	}
	if !apperrors.IsUnauthorized(err) {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Username: "dev",
		FullName: "Development User",
		APIToken: token,
		IsActive: true,
	}
	if err := s.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
