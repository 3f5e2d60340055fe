package admin

import (
	"context"
	"errors"

	"expertbridge/internal/domain"
	"expertbridge/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	profiles ProfileRepository
	experts  ExpertRepository
	bookings BookingRepository
	admins   AdminChecker
	notifs   NotificationSender
	log      *zap.Logger
}

func NewService(
	profiles ProfileRepository,
	experts ExpertRepository,
	bookings BookingRepository,
	admins AdminChecker,
	notifs NotificationSender,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		profiles: profiles,
		experts:  experts,
		bookings: bookings,
		admins:   admins,
		notifs:   notifs,
		log:      log,
	}
}

// ListPending returns expert applications oldest first. Profiles without an
// expert sub-profile are left out.
func (s *Service) ListPending(ctx context.Context) ([]PendingExpert, error) {
	profiles, err := s.profiles.ListByRoleAndStatus(ctx, domain.RoleExpert, domain.StatusPendingReview, true)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	experts, err := s.experts.GetByProfileIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]PendingExpert, 0, len(profiles))
	for _, p := range profiles {
		e, ok := experts[p.ID]
		if !ok {
			continue
		}
		out = append(out, PendingExpert{Profile: p, Expert: *e})
	}
	return out, nil
}

func (s *Service) Approve(ctx context.Context, actorID, profileID string) (*domain.Profile, error) {
	return s.decide(ctx, actorID, profileID, domain.StatusApproved)
}

func (s *Service) Reject(ctx context.Context, actorID, profileID string) (*domain.Profile, error) {
	return s.decide(ctx, actorID, profileID, domain.StatusRejected)
}

// decide applies one review decision. Only pending applications can be
// decided, so a second decision on the same profile fails.
func (s *Service) decide(ctx context.Context, actorID, profileID string, to domain.ProfileStatus) (*domain.Profile, error) {
	ok, err := s.admins.IsAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	err = s.profiles.UpdateStatusIf(ctx, profileID, domain.RoleExpert, domain.StatusPendingReview, to)
	switch {
	case errors.Is(err, repository.ErrStatusConflict):
		return nil, ErrAlreadyReviewed
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}

	p, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	s.log.Info("expert reviewed",
		zap.String("profile_id", profileID),
		zap.String("status", string(to)),
		zap.String("admin_id", actorID))

	if s.notifs != nil {
		if err := s.notifs.ExpertReviewed(ctx, p); err != nil {
			s.log.Warn("review notification failed", zap.String("profile_id", profileID), zap.Error(err))
		}
	}
	return p, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var (
		st  Stats
		err error
	)
	if st.PendingExperts, err = s.profiles.CountByRoleAndStatus(ctx, domain.RoleExpert, domain.StatusPendingReview); err != nil {
		return nil, err
	}
	if st.ApprovedExperts, err = s.profiles.CountByRoleAndStatus(ctx, domain.RoleExpert, domain.StatusApproved); err != nil {
		return nil, err
	}
	if st.TotalBookings, err = s.bookings.Count(ctx); err != nil {
		return nil, err
	}
	if st.CompletedBookings, err = s.bookings.CountByStatus(ctx, domain.BookingCompleted); err != nil {
		return nil, err
	}
	return &st, nil
}
