// Package auth provides bearer-token authentication for the DevDash API.
//
// Token issuance lives in an external identity service; the backend only
// verifies presented tokens through the Verifier interface.
package auth

import (
	"context"

	apperrors "github.com/devdash/devdash/internal/common/errors"
	"github.com/devdash/devdash/internal/user/models"
	"github.com/devdash/devdash/internal/user/store"
)

// Verifier resolves a bearer token to the user it belongs to.
type Verifier interface {
	// Verify returns the user owning the token, or an Unauthorized error.
	Verify(ctx context.Context, token string) (*models.User, error)
}

// TokenVerifier verifies bearer tokens against the user store.
type TokenVerifier struct {
	users store.Store
}

// NewTokenVerifier creates a store-backed Verifier.
func NewTokenVerifier(users store.Store) *TokenVerifier {
	return &TokenVerifier{users: users}
}

// Verify implements Verifier.
func (v *TokenVerifier) Verify(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperrors.Unauthorized("missing bearer token")
	}
	return v.users.GetUserByToken(ctx, token)
}
