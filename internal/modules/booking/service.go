package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone names from clients must resolve on minimal images

	"expertbridge/internal/domain"
	"expertbridge/internal/modules/profile"
	"expertbridge/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	experts  ExpertRepository
	seekers  SeekerRepository
	profiles ProfileRepository
	notifs   Notifier
	log      *zap.Logger
}

func NewService(
	bookings BookingRepository,
	experts ExpertRepository,
	seekers SeekerRepository,
	profiles ProfileRepository,
	notifs Notifier,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		bookings: bookings,
		experts:  experts,
		seekers:  seekers,
		profiles: profiles,
		notifs:   notifs,
		log:      log,
	}
}

// Create records a session request from a seeker. The booking always starts
// as requested with the fixed session duration.
func (s *Service) Create(ctx context.Context, caller *profile.Caller, req CreateBookingRequest) (*domain.Booking, error) {
	if caller == nil || !caller.Role().IsSeeker() || caller.Seeker == nil {
		return nil, ErrForbidden
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrValidation)
	}

	scheduledAt, err := ParseSchedule(req.Date, req.Time, req.Timezone)
	if err != nil {
		return nil, err
	}

	// only approved experts are bookable
	expert, err := s.experts.GetApprovedByID(ctx, strings.TrimSpace(req.ExpertID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: expert is not available", ErrNotFound)
		}
		return nil, err
	}

	b := &domain.Booking{
		ExpertID:        expert.ID,
		SeekerID:        caller.Seeker.ID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: domain.SessionDurationMinutes,
		MeetingLink:     strings.TrimSpace(req.MeetingLink),
		Status:          domain.BookingRequested,
		Topic:           topic,
		Notes:           strings.TrimSpace(req.Notes),
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		seeker := caller.Profile
		if err := s.notifs.BookingRequested(ctx, b, &expert.Profile, &seeker); err != nil {
			s.log.Warn("booking requested notification failed", zap.String("booking_id", b.ID), zap.Error(err))
		}
	}

	return b, nil
}

// ParseSchedule combines a calendar date (YYYY-MM-DD) and a wall-clock time
// (HH:MM) in the given IANA zone into a UTC instant. An empty zone means UTC.
func ParseSchedule(date, clock, timezone string) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, fmt.Errorf("%w: date and time are required", ErrValidation)
	}

	loc := time.UTC
	if tz := strings.TrimSpace(timezone); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: unknown timezone %q", ErrValidation, tz)
		}
		loc = l
	}

	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05"} {
		t, err := time.ParseInLocation(layout, date+" "+clock, loc)
		if err != nil {
			continue
		}
		// a wall clock skipped by a DST jump is normalised by time; reject it
		if t.Format(layout) != date+" "+clock {
			return time.Time{}, fmt.Errorf("%w: %s %s does not exist in %s", ErrValidation, date, clock, loc)
		}
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date or time", ErrValidation)
}

type action struct {
	name     string
	from, to domain.BookingStatus
}

var (
	actionConfirm  = action{name: "confirm", from: domain.BookingRequested, to: domain.BookingConfirmed}
	actionDecline  = action{name: "decline", from: domain.BookingRequested, to: domain.BookingCancelled}
	actionCancel   = action{name: "cancel", from: domain.BookingConfirmed, to: domain.BookingCancelled}
	actionComplete = action{name: "complete", from: domain.BookingConfirmed, to: domain.BookingCompleted}
)

// Confirm accepts a requested booking. A non-empty meetingLink is stored on
// the booking; otherwise the expert's standing link is reported without
// being stored.
func (s *Service) Confirm(ctx context.Context, caller *profile.Caller, bookingID, meetingLink string) (*domain.Booking, error) {
	var link *string
	if l := strings.TrimSpace(meetingLink); l != "" {
		link = &l
	}
	return s.apply(ctx, caller, bookingID, actionConfirm, link)
}

func (s *Service) Decline(ctx context.Context, caller *profile.Caller, bookingID string) (*domain.Booking, error) {
	return s.apply(ctx, caller, bookingID, actionDecline, nil)
}

func (s *Service) Cancel(ctx context.Context, caller *profile.Caller, bookingID string) (*domain.Booking, error) {
	return s.apply(ctx, caller, bookingID, actionCancel, nil)
}

func (s *Service) Complete(ctx context.Context, caller *profile.Caller, bookingID string) (*domain.Booking, error) {
	return s.apply(ctx, caller, bookingID, actionComplete, nil)
}

func (s *Service) apply(ctx context.Context, caller *profile.Caller, bookingID string, a action, link *string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := authorizeExpert(caller, b); err != nil {
		return nil, err
	}

	if b.Status != a.from || !domain.CanTransition(a.from, a.to) {
		return nil, fmt.Errorf("%w: cannot %s a %s booking", ErrInvalidTransition, a.name, b.Status)
	}

	if err := s.bookings.TransitionStatus(ctx, b.ID, a.from, a.to, link); err != nil {
		switch {
		case errors.Is(err, repository.ErrStatusConflict):
			return nil, ErrConflict
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFound
		}
		return nil, err
	}

	b.Status = a.to
	if link != nil {
		b.MeetingLink = *link
	}
	// callers and the seeker see the link that will be used; the row keeps
	// only what was stored
	b.MeetingLink = EffectiveMeetingLink(*b, caller.Expert)

	s.notifyStatusChanged(ctx, b)
	return b, nil
}

// authorizeExpert allows only the booking's expert. The booking's seeker is
// told no; anyone else cannot see the booking at all.
func authorizeExpert(caller *profile.Caller, b *domain.Booking) error {
	if caller == nil {
		return ErrNotFound
	}
	if caller.Expert != nil && caller.Expert.ID == b.ExpertID {
		return nil
	}
	if caller.Seeker != nil && caller.Seeker.ID == b.SeekerID {
		return ErrForbidden
	}
	return ErrNotFound
}

func (s *Service) notifyStatusChanged(ctx context.Context, b *domain.Booking) {
	if s.notifs == nil {
		return
	}

	seekers, err := s.seekers.GetByIDs(ctx, []string{b.SeekerID})
	if err != nil {
		s.log.Warn("notification lookup failed", zap.String("booking_id", b.ID), zap.Error(err))
		return
	}
	sp, ok := seekers[b.SeekerID]
	if !ok {
		return
	}
	profiles, err := s.profiles.GetByIDs(ctx, []string{sp.ProfileID})
	if err != nil {
		s.log.Warn("notification lookup failed", zap.String("booking_id", b.ID), zap.Error(err))
		return
	}
	recipient, ok := profiles[sp.ProfileID]
	if !ok {
		return
	}

	if err := s.notifs.BookingStatusChanged(ctx, b, recipient); err != nil {
		s.log.Warn("booking status notification failed",
			zap.String("booking_id", b.ID),
			zap.String("status", string(b.Status)),
			zap.Error(err))
	}
}
