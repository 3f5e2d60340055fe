package auth

import (
	"encoding/json"
	"strings"

	"expertbridge/internal/domain"
)

// SignUpRequest is one payload for every role. Expert must be set when role is
// expert; Seeker must be set for entrepreneur and ngo.
type SignUpRequest struct {
	Role      domain.UserRole `json:"role" validate:"required,oneof=expert entrepreneur ngo"`
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=6"`
	FullName  string          `json:"full_name" validate:"required,min=2"`
	Bio       string          `json:"bio"`
	AvatarURL string          `json:"avatar_url" validate:"omitempty,url"`

	Expert *ExpertSignUp `json:"expert,omitempty"`
	Seeker *SeekerSignUp `json:"seeker,omitempty"`
}

type ExpertSignUp struct {
	Headline        string         `json:"headline" validate:"required"`
	Industries      []string       `json:"industries"`
	ExpertiseTags   List           `json:"expertise_tags"`
	YearsExperience int            `json:"years_experience" validate:"gte=0"`
	FormerCompanies List           `json:"former_companies"`
	LinkedInURL     string         `json:"linkedin_url" validate:"omitempty,url"`
	MeetingLink     string         `json:"meeting_link" validate:"omitempty,url"`
	Availability    map[string]any `json:"availability"`
}

type SeekerSignUp struct {
	OrganizationName string `json:"organization_name" validate:"required"`
	WebsiteURL       string `json:"website_url" validate:"omitempty,url"`
	Stage            string `json:"stage"`
	Description      string `json:"description"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// List accepts either a JSON array of strings or a single comma-separated
// string. Entries are trimmed and blanks dropped; order is kept.
type List []string

func (l *List) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		var s string
		if err2 := json.Unmarshal(data, &s); err2 != nil {
			return err
		}
		raw = strings.Split(s, ",")
	}
	*l = cleanList(raw)
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Session is returned by sign-up and sign-in.
type Session struct {
	Token   string          `json:"token"`
	Profile *domain.Profile `json:"profile"`
}
