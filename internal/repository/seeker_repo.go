package repository

import (
	"context"

	"expertbridge/internal/domain"

	"gorm.io/gorm"
)

type SeekerRepository struct {
	db *gorm.DB
}

func NewSeekerRepository(db *gorm.DB) *SeekerRepository {
	return &SeekerRepository{db: db}
}

func toDomainSeeker(m seekerProfileModel) *domain.SeekerProfile {
	return &domain.SeekerProfile{
		ID:               m.ID,
		ProfileID:        m.ProfileID,
		OrganizationName: m.OrganizationName,
		OrganizationType: domain.OrganizationType(m.OrganizationType),
		WebsiteURL:       deref(m.WebsiteURL),
		Stage:            deref(m.Stage),
		Description:      deref(m.Description),
	}
}

func toSeekerModel(s *domain.SeekerProfile) seekerProfileModel {
	return seekerProfileModel{
		ID:               s.ID,
		ProfileID:        s.ProfileID,
		OrganizationName: s.OrganizationName,
		OrganizationType: string(s.OrganizationType),
		WebsiteURL:       nullable(s.WebsiteURL),
		Stage:            nullable(s.Stage),
		Description:      nullable(s.Description),
	}
}

func (r *SeekerRepository) GetByProfileID(ctx context.Context, profileID string) (*domain.SeekerProfile, error) {
	var m seekerProfileModel
	if err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainSeeker(m), nil
}

// GetByIDs returns seeker sub-profiles keyed by seeker id.
func (r *SeekerRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.SeekerProfile, error) {
	out := make(map[string]*domain.SeekerProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []seekerProfileModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.ID] = toDomainSeeker(m)
	}
	return out, nil
}
