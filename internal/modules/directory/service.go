package directory

import (
	"context"
	"errors"
	"strings"

	"expertbridge/internal/domain"

	"gorm.io/gorm"
)

// Industries is the fixed option list offered by sign-up and the filter bar.
var Industries = []string{
	"Consumer Goods",
	"Technology",
	"Healthcare",
	"Finance",
	"Marketing",
	"Operations",
	"Manufacturing",
	"Retail",
	"Energy",
	"Education",
	"Real Estate",
	"Non-Profit",
}

type Service struct {
	experts  ExpertRepository
	profiles ProfileRepository
	bookings BookingRepository
}

func NewService(experts ExpertRepository, profiles ProfileRepository, bookings BookingRepository) *Service {
	return &Service{experts: experts, profiles: profiles, bookings: bookings}
}

// Search returns approved experts, newest profile first, narrowed by f.
func (s *Service) Search(ctx context.Context, f Filter) ([]ExpertCard, error) {
	all, err := s.experts.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	industry := strings.TrimSpace(f.Industry)
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]ExpertCard, 0, len(all))
	for _, e := range all {
		if e.Profile.Status != domain.StatusApproved {
			continue
		}
		if industry != "" && !containsExact(e.Industries, industry) {
			continue
		}
		if needle != "" && !matchesSearch(e, needle) {
			continue
		}
		out = append(out, toCard(e))
	}
	return out, nil
}

// matchesSearch ORs a case-insensitive substring test over headline, name,
// tags and former companies. needle must already be lower-cased.
func matchesSearch(e domain.ExpertWithProfile, needle string) bool {
	if strings.Contains(strings.ToLower(e.Headline), needle) ||
		strings.Contains(strings.ToLower(e.Profile.FullName), needle) {
		return true
	}
	for _, list := range [][]string{e.ExpertiseTags, e.FormerCompanies} {
		for _, v := range list {
			if strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
	}
	return false
}

func containsExact(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func (s *Service) GetExpert(ctx context.Context, id string) (*ExpertCard, error) {
	e, err := s.experts.GetApprovedByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	card := toCard(*e)
	return &card, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	approved, err := s.profiles.CountByRoleAndStatus(ctx, domain.RoleExpert, domain.StatusApproved)
	if err != nil {
		return nil, err
	}
	completed, err := s.bookings.CountByStatus(ctx, domain.BookingCompleted)
	if err != nil {
		return nil, err
	}
	return &Stats{ApprovedExperts: approved, CompletedSessions: completed}, nil
}
