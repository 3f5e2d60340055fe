package directory

import "expertbridge/internal/domain"

// Filter narrows the directory. Empty fields are ignored.
type Filter struct {
	Industry string `form:"industry"`
	Search   string `form:"search"`
}

// ExpertCard is the public view of an approved expert. Email and password
// hash never leave the service.
type ExpertCard struct {
	ID              string         `json:"id"`
	ProfileID       string         `json:"profile_id"`
	FullName        string         `json:"full_name"`
	AvatarURL       string         `json:"avatar_url,omitempty"`
	Bio             string         `json:"bio,omitempty"`
	Headline        string         `json:"headline"`
	Industries      []string       `json:"industries"`
	ExpertiseTags   []string       `json:"expertise_tags"`
	YearsExperience int            `json:"years_experience"`
	FormerCompanies []string       `json:"former_companies"`
	LinkedInURL     string         `json:"linkedin_url,omitempty"`
	Availability    map[string]any `json:"availability,omitempty"`
}

type Stats struct {
	ApprovedExperts   int64 `json:"approved_experts"`
	CompletedSessions int64 `json:"completed_sessions"`
}

func toCard(e domain.ExpertWithProfile) ExpertCard {
	return ExpertCard{
		ID:              e.ID,
		ProfileID:       e.ProfileID,
		FullName:        e.Profile.FullName,
		AvatarURL:       e.Profile.AvatarURL,
		Bio:             e.Profile.Bio,
		Headline:        e.Headline,
		Industries:      e.Industries,
		ExpertiseTags:   e.ExpertiseTags,
		YearsExperience: e.YearsExperience,
		FormerCompanies: e.FormerCompanies,
		LinkedInURL:     e.LinkedInURL,
		Availability:    e.Availability,
	}
}
