package booking

import (
	"time"

	"expertbridge/internal/domain"
)

type CreateBookingRequest struct {
	ExpertID    string `json:"expert_id" binding:"required"`
	Date        string `json:"date" binding:"required" validate:"date"`
	Time        string `json:"time" binding:"required" validate:"clock"`
	Timezone    string `json:"timezone" validate:"tz"`
	Topic       string `json:"topic" binding:"required"`
	Notes       string `json:"notes"`
	MeetingLink string `json:"meeting_link" binding:"omitempty,url"`
}

type ConfirmRequest struct {
	MeetingLink string `json:"meeting_link" binding:"omitempty,url"`
}

// BookingView is a booking as one participant sees it.
type BookingView struct {
	ID                  string               `json:"id"`
	ScheduledAt         time.Time            `json:"scheduled_at"`
	DurationMinutes     int                  `json:"duration_minutes"`
	MeetingLink         string               `json:"meeting_link,omitempty"`
	Status              domain.BookingStatus `json:"status"`
	Topic               string               `json:"topic"`
	Notes               string               `json:"notes,omitempty"`
	CounterpartName     string               `json:"counterpart_name"`
	CounterpartHeadline string               `json:"counterpart_headline"`
}

// Buckets is the dashboard partition by status.
type Buckets struct {
	Pending  []BookingView `json:"pending"`
	Upcoming []BookingView `json:"upcoming"`
	Past     []BookingView `json:"past"`
}

type DashboardResponse struct {
	FullName string          `json:"full_name"`
	Role     domain.UserRole `json:"role"`
	IsAdmin  bool            `json:"is_admin"`
	Buckets
}
