package usecase

import (
	"context"
	"errors"
	"fmt"

	"blog-api/internal/entity"
	"blog-api/internal/repo/persistent"
	"blog-api/pkg/logger"
)

type Seeder struct {
	userRepo persistent.UserRepository
	logger   *logger.Logger
}

func NewSeeder(userRepo persistent.UserRepository, logger *logger.Logger) *Seeder {
	return &Seeder{userRepo: userRepo, logger: logger}
}

// EnsureRoles creates every known role that is missing.
func (s *Seeder) EnsureRoles(ctx context.Context) error {
	for _, role := range entity.AllRoles {
		if err := s.userRepo.EnsureRole(ctx, role); err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin creates the admin account, or grants ADMIN to an existing one.
// It does nothing when either credential is empty.
func (s *Seeder) SeedAdmin(ctx context.Context, email, password string) error {
	email = entity.NormalizeEmail(email)
	if email == "" || password == "" {
		s.logger.Info("Admin seed skipped: SEED_ADMIN_EMAIL or SEED_ADMIN_PASSWORD not set")
		return nil
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, entity.ErrNotFound):
		if err := checkPasswordPolicy(password); err != nil {
			return fmt.Errorf("admin seed: %w", err)
		}
		hash, err := hashPassword(password)
		if err != nil {
			return err
		}
		admin := &entity.User{
			Email:        email,
			PasswordHash: hash,
			Roles:        []entity.Role{entity.RoleAdmin},
		}
		if err := s.userRepo.Create(ctx, admin); err != nil {
			return fmt.Errorf("admin seed: %w", err)
		}
		s.logger.Info("Seeded admin user %s", email)
		return nil
	case err != nil:
		return fmt.Errorf("admin seed: %w", err)
	}

	if user.HasRole(entity.RoleAdmin) {
		return nil
	}
	if err := s.userRepo.AddRole(ctx, user.ID, entity.RoleAdmin); err != nil {
		return fmt.Errorf("admin seed: %w", err)
	}
	s.logger.Info("Granted ADMIN to existing user %s", email)
	return nil
}
