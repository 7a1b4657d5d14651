// Package adminRepo persists the studio owner's admin account.
package adminRepo

import (
	"context"
	"errors"

	"glowbook/models"
)

// ErrNotFound indicates no admin account matches the query.
var ErrNotFound = errors.New("admin account not found")

// Repository stores admin accounts.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Create(ctx context.Context, admin models.Admin) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
