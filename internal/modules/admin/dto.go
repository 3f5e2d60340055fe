package admin

import "expertbridge/internal/domain"

// PendingExpert is an application waiting in the review queue.
type PendingExpert struct {
	Profile domain.Profile       `json:"profile"`
	Expert  domain.ExpertProfile `json:"expert_profile"`
}

type Stats struct {
	PendingExperts    int64 `json:"pending_experts"`
	ApprovedExperts   int64 `json:"approved_experts"`
	TotalBookings     int64 `json:"total_bookings"`
	CompletedBookings int64 `json:"completed_bookings"`
}
