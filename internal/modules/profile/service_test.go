package profile

import (
	"context"
	"errors"
	"testing"

	"expertbridge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockProfileRepository struct{ mock.Mock }

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

type MockExpertRepository struct{ mock.Mock }

func (m *MockExpertRepository) GetByProfileID(ctx context.Context, profileID string) (*domain.ExpertProfile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExpertProfile), args.Error(1)
}

type MockSeekerRepository struct{ mock.Mock }

func (m *MockSeekerRepository) GetByProfileID(ctx context.Context, profileID string) (*domain.SeekerProfile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeekerProfile), args.Error(1)
}

type MockAdminRepository struct{ mock.Mock }

func (m *MockAdminRepository) Exists(ctx context.Context, profileID string) (bool, error) {
	args := m.Called(ctx, profileID)
	return args.Bool(0), args.Error(1)
}

type mocks struct {
	profiles *MockProfileRepository
	experts  *MockExpertRepository
	seekers  *MockSeekerRepository
	admins   *MockAdminRepository
}

func newTestService() (*Service, mocks) {
	m := mocks{
		profiles: new(MockProfileRepository),
		experts:  new(MockExpertRepository),
		seekers:  new(MockSeekerRepository),
		admins:   new(MockAdminRepository),
	}
	return NewService(m.profiles, m.experts, m.seekers, m.admins), m
}

func TestResolve_Expert(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.profiles.On("GetByID", ctx, "p1").Return(&domain.Profile{ID: "p1", Role: domain.RoleExpert, Status: domain.StatusApproved}, nil)
	m.experts.On("GetByProfileID", ctx, "p1").Return(&domain.ExpertProfile{ID: "e1", ProfileID: "p1"}, nil)
	m.admins.On("Exists", ctx, "p1").Return(true, nil)

	caller, err := svc.Resolve(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, caller.IsExpert())
	assert.Equal(t, "e1", caller.Expert.ID)
	assert.Nil(t, caller.Seeker)
	assert.True(t, caller.IsAdmin)
	m.seekers.AssertNotCalled(t, "GetByProfileID", mock.Anything, mock.Anything)
}

func TestResolve_SeekerWithoutSubProfile(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.profiles.On("GetByID", ctx, "p2").Return(&domain.Profile{ID: "p2", Role: domain.RoleNGO, Status: domain.StatusApproved}, nil)
	m.seekers.On("GetByProfileID", ctx, "p2").Return(nil, gorm.ErrRecordNotFound)
	m.admins.On("Exists", ctx, "p2").Return(false, nil)

	caller, err := svc.Resolve(ctx, "p2")
	require.NoError(t, err)
	assert.Nil(t, caller.Seeker)
	assert.False(t, caller.IsAdmin)
	assert.Equal(t, domain.RoleNGO, caller.Role())
}

func TestResolve_MissingProfile(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.profiles.On("GetByID", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Resolve(ctx, "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = svc.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestResolve_StoreFailureSurfaces(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()
	boom := errors.New("connection reset")

	m.profiles.On("GetByID", ctx, "p3").Return(&domain.Profile{ID: "p3", Role: domain.RoleExpert}, nil)
	m.experts.On("GetByProfileID", ctx, "p3").Return(nil, boom)

	_, err := svc.Resolve(ctx, "p3")
	assert.ErrorIs(t, err, boom)
}

func TestIsAdmin_IndependentOfRole(t *testing.T) {
	svc, m := newTestService()
	ctx := context.Background()

	m.admins.On("Exists", ctx, "seeker-admin").Return(true, nil)

	ok, err := svc.IsAdmin(ctx, "seeker-admin")
	require.NoError(t, err)
	assert.True(t, ok)
	m.profiles.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
