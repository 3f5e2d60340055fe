package profile

import (
	"context"
	"errors"
	"fmt"

	"expertbridge/internal/domain"

	"gorm.io/gorm"
)

// Caller is an authenticated identity resolved to its account. At most one of
// Expert and Seeker is set; both are nil when the sub-profile row is missing.
type Caller struct {
	Profile domain.Profile        `json:"profile"`
	Expert  *domain.ExpertProfile `json:"expert_profile,omitempty"`
	Seeker  *domain.SeekerProfile `json:"seeker_profile,omitempty"`
	IsAdmin bool                  `json:"is_admin"`
}

func (c *Caller) ID() string            { return c.Profile.ID }
func (c *Caller) Role() domain.UserRole { return c.Profile.Role }

func (c *Caller) IsExpert() bool { return c.Profile.Role == domain.RoleExpert }

type Service struct {
	profiles ProfileRepository
	experts  ExpertRepository
	seekers  SeekerRepository
	admins   AdminRepository
}

func NewService(profiles ProfileRepository, experts ExpertRepository, seekers SeekerRepository, admins AdminRepository) *Service {
	return &Service{profiles: profiles, experts: experts, seekers: seekers, admins: admins}
}

// Resolve loads the caller's profile, role-specific sub-profile and admin flag.
func (s *Service) Resolve(ctx context.Context, profileID string) (*Caller, error) {
	if profileID == "" {
		return nil, ErrProfileNotFound
	}

	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("resolve profile: %w", err)
	}

	caller := &Caller{Profile: *p}

	if p.Role == domain.RoleExpert {
		e, err := s.experts.GetByProfileID(ctx, p.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resolve expert profile: %w", err)
		}
		caller.Expert = e
	} else {
		sp, err := s.seekers.GetByProfileID(ctx, p.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("resolve seeker profile: %w", err)
		}
		caller.Seeker = sp
	}

	caller.IsAdmin, err = s.IsAdmin(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return caller, nil
}

// IsAdmin checks allow-list membership. It does not look at role.
func (s *Service) IsAdmin(ctx context.Context, profileID string) (bool, error) {
	ok, err := s.admins.Exists(ctx, profileID)
	if err != nil {
		return false, fmt.Errorf("admin lookup: %w", err)
	}
	return ok, nil
}
