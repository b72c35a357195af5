package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/user/models"
)

// MemoryStore is an in-memory user store for tests.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

// NewMemoryStore creates an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]*models.User)}
}

// CreateUser inserts a new user
func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	s.users[user.ID] = &clone
	return nil
}

// GetUser retrieves a user by ID
func (s *MemoryStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	clone := *user
	return &clone, nil
}

// GetUserByToken resolves an API token to its active owner
func (s *MemoryStore) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.APIToken == token && user.IsActive {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.Unauthorized("invalid API token")
}

// EnsureDefaultUser creates the development user if the token is unclaimed
func (s *MemoryStore) EnsureDefaultUser(ctx context.Context, email, token string) (*models.User, error) {
	existing, err := s.GetUserByToken(ctx, token)
	if err == nil {
		return existing, nil
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
