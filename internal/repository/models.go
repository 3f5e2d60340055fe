package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrStatusConflict is returned by conditional status updates whose
	// precondition no longer holds.
	ErrStatusConflict = errors.New("status precondition failed")
)

type profileModel struct {
	ID           string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	FullName     string    `gorm:"column:full_name;not null"`
	AvatarURL    *string   `gorm:"column:avatar_url"`
	Bio          *string   `gorm:"column:bio;type:text"`
	Role         string    `gorm:"column:role;index;not null"`
	Status       string    `gorm:"column:status;index;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (profileModel) TableName() string { return "profiles" }

type expertProfileModel struct {
	ID              string         `gorm:"column:id;primaryKey;type:varchar(36)"`
	ProfileID       string         `gorm:"column:profile_id;uniqueIndex;type:varchar(36);not null"`
	Headline        string         `gorm:"column:headline;not null"`
	Industries      []string       `gorm:"column:industries;type:jsonb;serializer:json"`
	ExpertiseTags   []string       `gorm:"column:expertise_tags;type:jsonb;serializer:json"`
	YearsExperience int            `gorm:"column:years_experience;not null;default:0"`
	FormerCompanies []string       `gorm:"column:former_companies;type:jsonb;serializer:json"`
	LinkedInURL     *string        `gorm:"column:linkedin_url"`
	MeetingLink     *string        `gorm:"column:meeting_link"`
	Availability    map[string]any `gorm:"column:availability;type:jsonb;serializer:json"`
}

func (expertProfileModel) TableName() string { return "expert_profiles" }

type seekerProfileModel struct {
	ID               string  `gorm:"column:id;primaryKey;type:varchar(36)"`
	ProfileID        string  `gorm:"column:profile_id;uniqueIndex;type:varchar(36);not null"`
	OrganizationName string  `gorm:"column:organization_name;not null"`
	OrganizationType string  `gorm:"column:organization_type;not null"`
	WebsiteURL       *string `gorm:"column:website_url"`
	Stage            *string `gorm:"column:stage"`
	Description      *string `gorm:"column:description;type:text"`
}

func (seekerProfileModel) TableName() string { return "seeker_profiles" }

type bookingModel struct {
	ID              string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	ExpertID        string    `gorm:"column:expert_id;index;type:varchar(36);not null"`
	SeekerID        string    `gorm:"column:seeker_id;index;type:varchar(36);not null"`
	ScheduledAt     time.Time `gorm:"column:scheduled_at;index;not null"`
	DurationMinutes int       `gorm:"column:duration_minutes;not null"`
	MeetingLink     *string   `gorm:"column:meeting_link"`
	Status          string    `gorm:"column:status;index;not null"`
	Topic           string    `gorm:"column:topic;type:text;not null"`
	Notes           *string   `gorm:"column:notes;type:text"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

type reviewModel struct {
	ID         string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	BookingID  string    `gorm:"column:booking_id;index;type:varchar(36);not null"`
	ReviewerID string    `gorm:"column:reviewer_id;type:varchar(36);not null"`
	Rating     int       `gorm:"column:rating;not null"`
	Comment    *string   `gorm:"column:comment;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (reviewModel) TableName() string { return "reviews" }

type adminModel struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (adminModel) TableName() string { return "admins" }

// Models lists every persisted table, in migration order.
func Models() []any {
	return []any{
		&profileModel{},
		&expertProfileModel{},
		&seekerProfileModel{},
		&bookingModel{},
		&reviewModel{},
		&adminModel{},
	}
}

// AutoMigrate creates or updates every table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func newID() string { return uuid.NewString() }

func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
