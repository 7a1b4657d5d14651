// Package admin handles the studio owner's login and account upkeep.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	adminRepo "glowbook/database/repository/admin"
	"glowbook/models"
	"glowbook/utils"
)

// ErrInvalidCredentials is returned for a wrong username or password. The
// two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid username or password")

// TokenDuration is how long an admin login token stays valid.
const TokenDuration = 12 * time.Hour

// Service authenticates and manages the admin account.
type Service interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	// Bootstrap creates the account if it does not exist yet.
	Bootstrap(ctx context.Context, username, password string) error
}

// DefaultAdminService implements Service.
type DefaultAdminService struct {
	Repo adminRepo.Repository
}

// Authenticate verifies the password and returns a signed JWT for the
// availability dashboard.
func (s *DefaultAdminService) Authenticate(ctx context.Context, username, password string) (string, error) {
	admin, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, adminRepo.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up admin: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := utils.GenerateToken(admin.ID, admin.Username, TokenDuration)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return token, nil
}

func (s *DefaultAdminService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	admin, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, adminRepo.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.Repo.UpdatePassword(ctx, admin.ID, string(hash))
}

func (s *DefaultAdminService) Bootstrap(ctx context.Context, username, password string) error {
	_, err := s.Repo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, adminRepo.ErrNotFound) {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.Repo.Create(ctx, models.Admin{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
	})
}
