package admin

import (
	"context"

	"expertbridge/internal/domain"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	ListByRoleAndStatus(ctx context.Context, role domain.UserRole, status domain.ProfileStatus, ascending bool) ([]domain.Profile, error)
	CountByRoleAndStatus(ctx context.Context, role domain.UserRole, status domain.ProfileStatus) (int64, error)
	UpdateStatusIf(ctx context.Context, id string, role domain.UserRole, from, to domain.ProfileStatus) error
}

type ExpertRepository interface {
	GetByProfileIDs(ctx context.Context, profileIDs []string) (map[string]*domain.ExpertProfile, error)
}

type BookingRepository interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
}

type AdminChecker interface {
	IsAdmin(ctx context.Context, profileID string) (bool, error)
}

type NotificationSender interface {
	ExpertReviewed(ctx context.Context, expert *domain.Profile) error
}
