package profile

import (
	"context"

	"expertbridge/internal/domain"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
}

type ExpertRepository interface {
	GetByProfileID(ctx context.Context, profileID string) (*domain.ExpertProfile, error)
}

type SeekerRepository interface {
	GetByProfileID(ctx context.Context, profileID string) (*domain.SeekerProfile, error)
}

type AdminRepository interface {
	Exists(ctx context.Context, profileID string) (bool, error)
}
