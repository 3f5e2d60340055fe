package auth

import (
	"context"
	"time"

	"expertbridge/internal/domain"
	"expertbridge/internal/modules/profile"
)

// ProfileRepository is the slice of the profile store that sign-up and
// sign-in need.
type ProfileRepository interface {
	CreateAccount(ctx context.Context, p *domain.Profile, expert *domain.ExpertProfile, seeker *domain.SeekerProfile) error
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type TokenIssuer interface {
	GenerateToken(userID string, role string) (string, error)
}

// Revoker records signed-out sessions until their token would have expired.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type CallerResolver interface {
	Resolve(ctx context.Context, profileID string) (*profile.Caller, error)
}
