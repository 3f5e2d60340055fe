package booking

import (
	"context"

	"expertbridge/internal/domain"
	"expertbridge/internal/modules/profile"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByExpert(ctx context.Context, expertID string) ([]domain.Booking, error)
	ListBySeeker(ctx context.Context, seekerID string) ([]domain.Booking, error)
	TransitionStatus(ctx context.Context, id string, from, to domain.BookingStatus, meetingLink *string) error
}

type ExpertRepository interface {
	GetApprovedByID(ctx context.Context, id string) (*domain.ExpertWithProfile, error)
	GetWithProfilesByIDs(ctx context.Context, ids []string) (map[string]*domain.ExpertWithProfile, error)
}

type SeekerRepository interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.SeekerProfile, error)
}

type ProfileRepository interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Profile, error)
}

// Notifier is told about lifecycle events after they are persisted. Errors
// are logged by the caller and never undo the write.
type Notifier interface {
	BookingRequested(ctx context.Context, b *domain.Booking, expert, seeker *domain.Profile) error
	BookingStatusChanged(ctx context.Context, b *domain.Booking, seeker *domain.Profile) error
}

// CallerResolver turns the authenticated profile id into a Caller.
type CallerResolver interface {
	Resolve(ctx context.Context, profileID string) (*profile.Caller, error)
}
