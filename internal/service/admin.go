package service

import (
	"context"
	"fmt"

	"github.com/beamcollective/portal-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// AdminService covers role administration over stored profiles.
type AdminService struct {
	users domain.UserRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(users domain.UserRepository) *AdminService {
	return &AdminService{users: users}
}

// SetRole assigns a role to a user. Unknown role values are rejected before
// any write, and a missing profile surfaces as not found.
func (s *AdminService) SetRole(ctx context.Context, actorID string, input domain.SetRoleInput) error {
	role := domain.Role(input.Role)
	if !role.Valid() {
		return domain.NewValidationError(fmt.Sprintf("unknown role %q", input.Role))
	}

	if err := s.users.SetRole(ctx, input.UID, role); err != nil {
		return err
	}

	log.Info().
		Str("uid", input.UID).
		Str("role", input.Role).
		Str("actor_id", actorID).
		Msg("Role assigned")

	return nil
}

// GetProfile returns the stored profile for a user id.
func (s *AdminService) GetProfile(ctx context.Context, uid string) (*domain.UserProfile, error) {
	p, err := s.users.Get(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
