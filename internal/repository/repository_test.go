package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"expertbridge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:repo_test_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func createExpert(t *testing.T, repo *ProfileRepository, email string, status domain.ProfileStatus, expert *domain.ExpertProfile) *domain.Profile {
	t.Helper()
	p := &domain.Profile{
		Email:        email,
		PasswordHash: "hash",
		FullName:     "Expert " + email,
		Role:         domain.RoleExpert,
		Status:       status,
	}
	require.NoError(t, repo.CreateAccount(context.Background(), p, expert, nil))
	return p
}

func createSeeker(t *testing.T, repo *ProfileRepository, email string) (*domain.Profile, *domain.SeekerProfile) {
	t.Helper()
	p := &domain.Profile{
		Email:        email,
		PasswordHash: "hash",
		FullName:     "Seeker " + email,
		Role:         domain.RoleNGO,
		Status:       domain.StatusApproved,
	}
	s := &domain.SeekerProfile{OrganizationName: "Clean Water", OrganizationType: domain.OrgNGO}
	require.NoError(t, repo.CreateAccount(context.Background(), p, nil, s))
	return p, s
}

func TestProfileRepository_CreateAccountWithExpert(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	profiles := NewProfileRepository(db)
	experts := NewExpertRepository(db)

	e := &domain.ExpertProfile{
		Headline:        "Former COO",
		Industries:      []string{"Operations"},
		ExpertiseTags:   []string{"Supply chain", "Lean"},
		YearsExperience: 30,
		FormerCompanies: []string{"Acme", "Globex"},
		MeetingLink:     "https://meet.example/coo",
	}
	p := createExpert(t, profiles, "COO@Example.com", domain.StatusPendingReview, e)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "coo@example.com", p.Email)
	assert.Equal(t, p.ID, e.ProfileID)

	got, err := experts.GetByProfileID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, []string{"Supply chain", "Lean"}, got.ExpertiseTags)
	assert.Equal(t, []string{"Acme", "Globex"}, got.FormerCompanies)
	assert.Equal(t, "https://meet.example/coo", got.MeetingLink)

	exists, err := profiles.ExistsByEmail(ctx, " coo@EXAMPLE.com ")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestProfileRepository_CreateAccountIsAtomic(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	profiles := NewProfileRepository(db)

	first := &domain.SeekerProfile{ID: "fixed-seeker-id", OrganizationName: "A", OrganizationType: domain.OrgStartup}
	p1 := &domain.Profile{Email: "a@example.com", PasswordHash: "h", FullName: "A", Role: domain.RoleEntrepreneur, Status: domain.StatusApproved}
	require.NoError(t, profiles.CreateAccount(ctx, p1, nil, first))

	// same sub-profile id collides, so the whole account must roll back
	dup := &domain.SeekerProfile{ID: "fixed-seeker-id", OrganizationName: "B", OrganizationType: domain.OrgStartup}
	p2 := &domain.Profile{Email: "b@example.com", PasswordHash: "h", FullName: "B", Role: domain.RoleEntrepreneur, Status: domain.StatusApproved}
	require.Error(t, profiles.CreateAccount(ctx, p2, nil, dup))

	exists, err := profiles.ExistsByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestProfileRepository_UpdateStatusIf(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	profiles := NewProfileRepository(db)

	p := createExpert(t, profiles, "x@example.com", domain.StatusPendingReview, &domain.ExpertProfile{Headline: "h"})

	require.NoError(t, profiles.UpdateStatusIf(ctx, p.ID, domain.RoleExpert, domain.StatusPendingReview, domain.StatusApproved))

	err := profiles.UpdateStatusIf(ctx, p.ID, domain.RoleExpert, domain.StatusPendingReview, domain.StatusRejected)
	assert.ErrorIs(t, err, ErrStatusConflict)

	err = profiles.UpdateStatusIf(ctx, "missing", domain.RoleExpert, domain.StatusPendingReview, domain.StatusApproved)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := profiles.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
}

func TestProfileRepository_ListPendingOldestFirst(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	profiles := NewProfileRepository(db)

	older := &domain.Profile{Email: "old@example.com", PasswordHash: "h", FullName: "Old", Role: domain.RoleExpert, Status: domain.StatusPendingReview, CreatedAt: time.Now().Add(-2 * time.Hour)}
	require.NoError(t, profiles.CreateAccount(ctx, older, &domain.ExpertProfile{Headline: "old"}, nil))
	newer := &domain.Profile{Email: "new@example.com", PasswordHash: "h", FullName: "New", Role: domain.RoleExpert, Status: domain.StatusPendingReview, CreatedAt: time.Now().Add(-1 * time.Hour)}
	require.NoError(t, profiles.CreateAccount(ctx, newer, &domain.ExpertProfile{Headline: "new"}, nil))
	createExpert(t, profiles, "done@example.com", domain.StatusApproved, &domain.ExpertProfile{Headline: "done"})

	list, err := profiles.ListByRoleAndStatus(ctx, domain.RoleExpert, domain.StatusPendingReview, true)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, older.ID, list[0].ID)
	assert.Equal(t, newer.ID, list[1].ID)

	cnt, err := profiles.CountByRoleAndStatus(ctx, domain.RoleExpert, domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)
}

func TestExpertRepository_ApprovedOnly(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	profiles := NewProfileRepository(db)
	experts := NewExpertRepository(db)

	approved := &domain.ExpertProfile{Headline: "Approved"}
	createExpert(t, profiles, "ok@example.com", domain.StatusApproved, approved)
	pending := &domain.ExpertProfile{Headline: "Pending"}
	createExpert(t, profiles, "wait@example.com", domain.StatusPendingReview, pending)

	got, err := experts.GetApprovedByID(ctx, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Approved", got.Headline)
	assert.Equal(t, "ok@example.com", got.Profile.Email)

	_, err = experts.GetApprovedByID(ctx, pending.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	list, err := experts.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, approved.ID, list[0].ID)

	all, err := experts.GetWithProfilesByIDs(ctx, []string{approved.ID, pending.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "wait@example.com", all[pending.ID].Profile.Email)
}

func TestBookingRepository_TransitionStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	profiles := NewProfileRepository(db)
	bookings := NewBookingRepository(db)

	e := &domain.ExpertProfile{Headline: "h"}
	createExpert(t, profiles, "e@example.com", domain.StatusApproved, e)
	_, s := createSeeker(t, profiles, "s@example.com")

	b := &domain.Booking{
		ExpertID:        e.ID,
		SeekerID:        s.ID,
		ScheduledAt:     time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		DurationMinutes: domain.SessionDurationMinutes,
		Status:          domain.BookingRequested,
		Topic:           "pricing strategy",
	}
	require.NoError(t, bookings.Create(ctx, b))
	require.NotEmpty(t, b.ID)

	link := "https://meet.example/abc"
	require.NoError(t, bookings.TransitionStatus(ctx, b.ID, domain.BookingRequested, domain.BookingConfirmed, &link))

	// a concurrent decline that still believes the booking is requested loses
	err := bookings.TransitionStatus(ctx, b.ID, domain.BookingRequested, domain.BookingCancelled, nil)
	assert.ErrorIs(t, err, ErrStatusConflict)

	err = bookings.TransitionStatus(ctx, "missing", domain.BookingRequested, domain.BookingConfirmed, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	assert.Equal(t, link, got.MeetingLink)
	assert.True(t, got.ScheduledAt.Equal(b.ScheduledAt))

	n, err := bookings.CountByStatus(ctx, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestBookingRepository_ListOrderedBySchedule(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	profiles := NewProfileRepository(db)
	bookings := NewBookingRepository(db)

	e := &domain.ExpertProfile{Headline: "h"}
	createExpert(t, profiles, "e@example.com", domain.StatusApproved, e)
	_, s := createSeeker(t, profiles, "s@example.com")

	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	for _, offset := range []int{3, 1, 2} {
		require.NoError(t, bookings.Create(ctx, &domain.Booking{
			ExpertID:        e.ID,
			SeekerID:        s.ID,
			ScheduledAt:     base.Add(time.Duration(offset) * 24 * time.Hour),
			DurationMinutes: domain.SessionDurationMinutes,
			Status:          domain.BookingRequested,
			Topic:           fmt.Sprintf("topic %d", offset),
		}))
	}

	byExpert, err := bookings.ListByExpert(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, byExpert, 3)
	assert.Equal(t, "topic 1", byExpert[0].Topic)
	assert.Equal(t, "topic 3", byExpert[2].Topic)

	bySeeker, err := bookings.ListBySeeker(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, bySeeker, 3)

	total, err := bookings.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestAdminRepository_GrantAndExists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	admins := NewAdminRepository(db)

	ok, err := admins.Exists(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, admins.Grant(ctx, "p1"))
	require.NoError(t, admins.Grant(ctx, "p1"))

	ok, err = admins.Exists(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = admins.Exists(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}
