package booking

import (
	"context"

	"expertbridge/internal/domain"
	"expertbridge/internal/modules/profile"

	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && b.ID == "" && args.Error(0) == nil {
		b.ID = "booking-1" // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// hand out a copy so the service cannot mutate the fixture
	b := *args.Get(0).(*domain.Booking)
	return &b, args.Error(1)
}

func (m *MockBookingRepository) ListByExpert(ctx context.Context, expertID string) ([]domain.Booking, error) {
	args := m.Called(ctx, expertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListBySeeker(ctx context.Context, seekerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, seekerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) TransitionStatus(ctx context.Context, id string, from, to domain.BookingStatus, meetingLink *string) error {
	args := m.Called(ctx, id, from, to, meetingLink)
	return args.Error(0)
}

type MockExpertRepository struct {
	mock.Mock
}

func (m *MockExpertRepository) GetApprovedByID(ctx context.Context, id string) (*domain.ExpertWithProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpertWithProfile), args.Error(1)
}

func (m *MockExpertRepository) GetWithProfilesByIDs(ctx context.Context, ids []string) (map[string]*domain.ExpertWithProfile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.ExpertWithProfile), args.Error(1)
}

type MockSeekerRepository struct {
	mock.Mock
}

func (m *MockSeekerRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.SeekerProfile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.SeekerProfile), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Profile, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*domain.Profile), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingRequested(ctx context.Context, b *domain.Booking, expert, seeker *domain.Profile) error {
	args := m.Called(ctx, b, expert, seeker)
	return args.Error(0)
}

func (m *MockNotifier) BookingStatusChanged(ctx context.Context, b *domain.Booking, seeker *domain.Profile) error {
	args := m.Called(ctx, b, seeker)
	return args.Error(0)
}

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) Resolve(ctx context.Context, profileID string) (*profile.Caller, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Caller), args.Error(1)
}

type testDeps struct {
	bookings *MockBookingRepository
	experts  *MockExpertRepository
	seekers  *MockSeekerRepository
	profiles *MockProfileRepository
	notifs   *MockNotifier
}

func newTestService() (*Service, testDeps) {
	d := testDeps{
		bookings: new(MockBookingRepository),
		experts:  new(MockExpertRepository),
		seekers:  new(MockSeekerRepository),
		profiles: new(MockProfileRepository),
		notifs:   new(MockNotifier),
	}
	return NewService(d.bookings, d.experts, d.seekers, d.profiles, d.notifs, nil), d
}

func seekerCaller() *profile.Caller {
	return &profile.Caller{
		Profile: domain.Profile{ID: "seeker-profile", FullName: "Sam Seeker", Role: domain.RoleEntrepreneur, Status: domain.StatusApproved},
		Seeker:  &domain.SeekerProfile{ID: "seeker-1", ProfileID: "seeker-profile", OrganizationName: "Acme Startup", OrganizationType: domain.OrgStartup},
	}
}

func expertCaller() *profile.Caller {
	return &profile.Caller{
		Profile: domain.Profile{ID: "expert-profile", FullName: "Eve Expert", Role: domain.RoleExpert, Status: domain.StatusApproved},
		Expert:  &domain.ExpertProfile{ID: "expert-1", ProfileID: "expert-profile", Headline: "Former CFO", MeetingLink: "https://meet.example/eve"},
	}
}

func approvedExpert() *domain.ExpertWithProfile {
	return &domain.ExpertWithProfile{
		ExpertProfile: domain.ExpertProfile{ID: "expert-1", ProfileID: "expert-profile", Headline: "Former CFO", MeetingLink: "https://meet.example/eve"},
		Profile:       domain.Profile{ID: "expert-profile", Email: "eve@example.com", FullName: "Eve Expert", Role: domain.RoleExpert, Status: domain.StatusApproved},
	}
}
