package domain

import "time"

type UserRole string

const (
	RoleExpert       UserRole = "expert"
	RoleEntrepreneur UserRole = "entrepreneur"
	RoleNGO          UserRole = "ngo"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleExpert, RoleEntrepreneur, RoleNGO:
		return true
	}
	return false
}

// IsSeeker reports whether the role books sessions rather than offering them.
func (r UserRole) IsSeeker() bool {
	return r == RoleEntrepreneur || r == RoleNGO
}

type ProfileStatus string

const (
	StatusPendingReview ProfileStatus = "pending_review"
	StatusApproved      ProfileStatus = "approved"
	StatusRejected      ProfileStatus = "rejected"
)

type OrganizationType string

const (
	OrgStartup OrganizationType = "startup"
	OrgNGO     OrganizationType = "ngo"
)

// OrganizationTypeFor maps a seeker role onto the organization type stored
// in its seeker profile.
func OrganizationTypeFor(role UserRole) OrganizationType {
	if role == RoleNGO {
		return OrgNGO
	}
	return OrgStartup
}

// Profile is one account. Status only carries meaning for experts.
type Profile struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	FullName     string        `json:"full_name"`
	AvatarURL    string        `json:"avatar_url,omitempty"`
	Bio          string        `json:"bio,omitempty"`
	Role         UserRole      `json:"role"`
	Status       ProfileStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type ExpertProfile struct {
	ID              string         `json:"id"`
	ProfileID       string         `json:"profile_id"`
	Headline        string         `json:"headline"`
	Industries      []string       `json:"industries"`
	ExpertiseTags   []string       `json:"expertise_tags"`
	YearsExperience int            `json:"years_experience"`
	FormerCompanies []string       `json:"former_companies"`
	LinkedInURL     string         `json:"linkedin_url,omitempty"`
	MeetingLink     string         `json:"meeting_link,omitempty"`
	Availability    map[string]any `json:"availability,omitempty"`
}

type SeekerProfile struct {
	ID               string           `json:"id"`
	ProfileID        string           `json:"profile_id"`
	OrganizationName string           `json:"organization_name"`
	OrganizationType OrganizationType `json:"organization_type"`
	WebsiteURL       string           `json:"website_url,omitempty"`
	Stage            string           `json:"stage,omitempty"`
	Description      string           `json:"description,omitempty"`
}

// ExpertWithProfile is an expert sub-profile joined with its parent account.
type ExpertWithProfile struct {
	ExpertProfile
	Profile Profile `json:"profile"`
}

// Admin is a row in the approval allow-list. It is keyed by profile id and is
// independent of the profile's role.
type Admin struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
