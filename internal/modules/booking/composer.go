package booking

import (
	"context"
	"sort"

	"expertbridge/internal/domain"
	"expertbridge/internal/modules/profile"
)

const unknownCounterpart = "Unknown"

// EffectiveMeetingLink prefers the booking's own link and falls back to the
// expert's standing link. The result is never written back.
func EffectiveMeetingLink(b domain.Booking, expert *domain.ExpertProfile) string {
	if b.MeetingLink != "" {
		return b.MeetingLink
	}
	if expert != nil {
		return expert.MeetingLink
	}
	return ""
}

// Partition splits views by status. Every view with a known status lands in
// exactly one bucket and the input order is kept inside each bucket. Views
// with any other status are left out.
func Partition(views []BookingView) Buckets {
	out := Buckets{
		Pending:  []BookingView{},
		Upcoming: []BookingView{},
		Past:     []BookingView{},
	}
	for _, v := range views {
		switch v.Status {
		case domain.BookingRequested:
			out.Pending = append(out.Pending, v)
		case domain.BookingConfirmed:
			out.Upcoming = append(out.Upcoming, v)
		case domain.BookingCompleted, domain.BookingCancelled:
			out.Past = append(out.Past, v)
		}
	}
	return out
}

// Dashboard lists the caller's bookings joined with the other participant,
// earliest first, then partitioned. A caller without a sub-profile simply has
// no bookings.
func (s *Service) Dashboard(ctx context.Context, caller *profile.Caller) (*DashboardResponse, error) {
	resp := &DashboardResponse{
		FullName: caller.Profile.FullName,
		Role:     caller.Role(),
		IsAdmin:  caller.IsAdmin,
	}

	var (
		views []BookingView
		err   error
	)
	switch {
	case caller.IsExpert() && caller.Expert != nil:
		views, err = s.expertViews(ctx, caller.Expert)
	case !caller.IsExpert() && caller.Seeker != nil:
		views, err = s.seekerViews(ctx, caller.Seeker)
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].ScheduledAt.Before(views[j].ScheduledAt)
	})
	resp.Buckets = Partition(views)
	return resp, nil
}

func (s *Service) expertViews(ctx context.Context, expert *domain.ExpertProfile) ([]BookingView, error) {
	bookings, err := s.bookings.ListByExpert(ctx, expert.ID)
	if err != nil {
		return nil, err
	}

	seekerIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		seekerIDs = append(seekerIDs, b.SeekerID)
	}
	seekers, err := s.seekers.GetByIDs(ctx, uniq(seekerIDs))
	if err != nil {
		return nil, err
	}

	profileIDs := make([]string, 0, len(seekers))
	for _, sp := range seekers {
		profileIDs = append(profileIDs, sp.ProfileID)
	}
	profiles, err := s.profiles.GetByIDs(ctx, profileIDs)
	if err != nil {
		return nil, err
	}

	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		v := newView(b, EffectiveMeetingLink(b, expert))
		if sp, ok := seekers[b.SeekerID]; ok {
			v.CounterpartHeadline = sp.OrganizationName
			if p, ok := profiles[sp.ProfileID]; ok && p.FullName != "" {
				v.CounterpartName = p.FullName
			}
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *Service) seekerViews(ctx context.Context, seeker *domain.SeekerProfile) ([]BookingView, error) {
	bookings, err := s.bookings.ListBySeeker(ctx, seeker.ID)
	if err != nil {
		return nil, err
	}

	expertIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		expertIDs = append(expertIDs, b.ExpertID)
	}
	experts, err := s.experts.GetWithProfilesByIDs(ctx, uniq(expertIDs))
	if err != nil {
		return nil, err
	}

	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		var v BookingView
		if e, ok := experts[b.ExpertID]; ok {
			v = newView(b, EffectiveMeetingLink(b, &e.ExpertProfile))
			v.CounterpartHeadline = e.Headline
			if e.Profile.FullName != "" {
				v.CounterpartName = e.Profile.FullName
			}
		} else {
			v = newView(b, EffectiveMeetingLink(b, nil))
		}
		views = append(views, v)
	}
	return views, nil
}

func newView(b domain.Booking, link string) BookingView {
	return BookingView{
		ID:              b.ID,
		ScheduledAt:     b.ScheduledAt,
		DurationMinutes: b.DurationMinutes,
		MeetingLink:     link,
		Status:          b.Status,
		Topic:           b.Topic,
		Notes:           b.Notes,
		CounterpartName: unknownCounterpart,
	}
}

func uniq(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
