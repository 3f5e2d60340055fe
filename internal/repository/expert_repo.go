package repository

import (
	"context"

	"expertbridge/internal/domain"

	"gorm.io/gorm"
)

type ExpertRepository struct {
	db *gorm.DB
}

func NewExpertRepository(db *gorm.DB) *ExpertRepository {
	return &ExpertRepository{db: db}
}

func toDomainExpert(m expertProfileModel) *domain.ExpertProfile {
	return &domain.ExpertProfile{
		ID:              m.ID,
		ProfileID:       m.ProfileID,
		Headline:        m.Headline,
		Industries:      nonNil(m.Industries),
		ExpertiseTags:   nonNil(m.ExpertiseTags),
		YearsExperience: m.YearsExperience,
		FormerCompanies: nonNil(m.FormerCompanies),
		LinkedInURL:     deref(m.LinkedInURL),
		MeetingLink:     deref(m.MeetingLink),
		Availability:    m.Availability,
	}
}

func toExpertModel(e *domain.ExpertProfile) expertProfileModel {
	return expertProfileModel{
		ID:              e.ID,
		ProfileID:       e.ProfileID,
		Headline:        e.Headline,
		Industries:      nonNil(e.Industries),
		ExpertiseTags:   nonNil(e.ExpertiseTags),
		YearsExperience: e.YearsExperience,
		FormerCompanies: nonNil(e.FormerCompanies),
		LinkedInURL:     nullable(e.LinkedInURL),
		MeetingLink:     nullable(e.MeetingLink),
		Availability:    e.Availability,
	}
}

func (r *ExpertRepository) GetByID(ctx context.Context, id string) (*domain.ExpertProfile, error) {
	var m expertProfileModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainExpert(m), nil
}

func (r *ExpertRepository) GetByProfileID(ctx context.Context, profileID string) (*domain.ExpertProfile, error) {
	var m expertProfileModel
	if err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainExpert(m), nil
}

// GetByProfileIDs returns expert sub-profiles keyed by their parent profile id.
func (r *ExpertRepository) GetByProfileIDs(ctx context.Context, profileIDs []string) (map[string]*domain.ExpertProfile, error) {
	out := make(map[string]*domain.ExpertProfile, len(profileIDs))
	if len(profileIDs) == 0 {
		return out, nil
	}

	var rows []expertProfileModel
	if err := r.db.WithContext(ctx).Where("profile_id IN ?", profileIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.ProfileID] = toDomainExpert(m)
	}
	return out, nil
}

// GetWithProfilesByIDs returns experts joined with their accounts, keyed by
// expert id, regardless of approval status.
func (r *ExpertRepository) GetWithProfilesByIDs(ctx context.Context, ids []string) (map[string]*domain.ExpertWithProfile, error) {
	out := make(map[string]*domain.ExpertWithProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []expertProfileModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}

	profileIDs := make([]string, 0, len(rows))
	for _, m := range rows {
		profileIDs = append(profileIDs, m.ProfileID)
	}
	var profiles []profileModel
	if len(profileIDs) > 0 {
		if err := r.db.WithContext(ctx).Where("id IN ?", profileIDs).Find(&profiles).Error; err != nil {
			return nil, err
		}
	}
	byID := make(map[string]profileModel, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	for _, m := range rows {
		item := &domain.ExpertWithProfile{ExpertProfile: *toDomainExpert(m)}
		if p, ok := byID[m.ProfileID]; ok {
			item.Profile = *toDomainProfile(p)
		}
		out[m.ID] = item
	}
	return out, nil
}

// GetApprovedByID returns gorm.ErrRecordNotFound both when the expert does not
// exist and when its parent profile is not approved.
func (r *ExpertRepository) GetApprovedByID(ctx context.Context, id string) (*domain.ExpertWithProfile, error) {
	var m expertProfileModel
	err := r.db.WithContext(ctx).
		Select("expert_profiles.*").
		Joins("JOIN profiles ON profiles.id = expert_profiles.profile_id").
		Where("expert_profiles.id = ? AND profiles.status = ?", id, string(domain.StatusApproved)).
		First(&m).Error
	if err != nil {
		return nil, err
	}

	var p profileModel
	if err := r.db.WithContext(ctx).Where("id = ?", m.ProfileID).First(&p).Error; err != nil {
		return nil, err
	}

	return &domain.ExpertWithProfile{
		ExpertProfile: *toDomainExpert(m),
		Profile:       *toDomainProfile(p),
	}, nil
}

// ListApproved returns every expert whose profile is approved, newest
// profile first.
func (r *ExpertRepository) ListApproved(ctx context.Context) ([]domain.ExpertWithProfile, error) {
	var profiles []profileModel
	if err := r.db.WithContext(ctx).
		Where("role = ? AND status = ?", string(domain.RoleExpert), string(domain.StatusApproved)).
		Order("created_at DESC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return []domain.ExpertWithProfile{}, nil
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	experts, err := r.GetByProfileIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ExpertWithProfile, 0, len(profiles))
	for _, p := range profiles {
		e, ok := experts[p.ID]
		if !ok {
			continue
		}
		out = append(out, domain.ExpertWithProfile{
			ExpertProfile: *e,
			Profile:       *toDomainProfile(p),
		})
	}
	return out, nil
}
