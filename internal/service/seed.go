package service

import (
	"context"
	"errors"

	"portfolio/internal/config"
)

// EnsureAdmin registers the operator account from configuration. It reports
// whether an account was created; an incomplete seed section is a no-op and
// an existing account counts as already seeded.
func (s *AuthService) EnsureAdmin(ctx context.Context, seed config.SeedConfig) (bool, error) {
	if seed.AdminUsername == "" || seed.AdminEmail == "" || seed.AdminPassword == "" {
		return false, nil
	}

	_, err := s.Register(ctx, seed.AdminUsername, seed.AdminEmail, seed.AdminPassword)
	if errors.Is(err, ErrAccountExists) {
		s.log.Debug().Str("username", seed.AdminUsername).Msg("admin account already present")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
