package directory

import (
	"context"

	"expertbridge/internal/domain"
)

type ExpertRepository interface {
	ListApproved(ctx context.Context) ([]domain.ExpertWithProfile, error)
	GetApprovedByID(ctx context.Context, id string) (*domain.ExpertWithProfile, error)
}

type ProfileRepository interface {
	CountByRoleAndStatus(ctx context.Context, role domain.UserRole, status domain.ProfileStatus) (int64, error)
}

type BookingRepository interface {
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
}
