// Package models defines user domain entities.
package models

import "time"

// User is an account in the dashboard. Registration and token issuance are
// handled by an external identity service; this backend only stores the
// account row and verifies API tokens against it.
type User struct {
	ID                string    `json:"id" db:"id"`
	Email             string    `json:"email" db:"email"`
	Username          string    `json:"username" db:"username"`
	FullName          string    `json:"full_name" db:"full_name"`
	GitHubUsername    string    `json:"github_username" db:"github_username"`
	GitHubAccessToken string    `json:"-" db:"github_access_token"`
	HashedPassword    string    `json:"-" db:"hashed_password"`
	APIToken          string    `json:"-" db:"api_token"`
	IsActive          bool      `json:"is_active" db:"is_active"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
