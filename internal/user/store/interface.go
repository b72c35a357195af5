// Package store provides persistence for user accounts.
package store

import (
	"context"

	"github.com/devdash/devdash/internal/user/models"
)

// Store defines the persistence operations for user accounts.
type Store interface {
	// CreateUser inserts a new user. An empty ID is assigned a UUID.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id string) (*models.User, error)

	// GetUserByToken resolves an API token to the user that owns it.
	// Inactive users are not returned.
	GetUserByToken(ctx context.Context, token string) (*models.User, error)

	// EnsureDefaultUser creates the development user if no user owns the
	// given token yet, and returns it.
	EnsureDefaultUser(ctx context.Context, email, token string) (*models.User, error)
}
