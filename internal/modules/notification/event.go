package notification

import (
	"fmt"
	"time"

	"expertbridge/internal/domain"
)

const (
	TypeBookingRequested = "booking.requested"
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCancelled = "booking.cancelled"
	TypeBookingCompleted = "booking.completed"
	TypeExpertApproved   = "expert.approved"
	TypeExpertRejected   = "expert.rejected"
)

// Event is what a connected client receives over the websocket.
type Event struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	BookingID string    `json:"booking_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func bookingRequestedEvent(b *domain.Booking, seeker *domain.Profile) Event {
	return Event{
		Type:      TypeBookingRequested,
		Title:     "New session request",
		Message:   fmt.Sprintf("%s requested a session on %s: %s", nameOf(seeker), formatWhen(b.ScheduledAt), b.Topic),
		BookingID: b.ID,
		CreatedAt: time.Now().UTC(),
	}
}

func bookingStatusEvent(b *domain.Booking) Event {
	e := Event{BookingID: b.ID, CreatedAt: time.Now().UTC()}
	when := formatWhen(b.ScheduledAt)
	switch b.Status {
	case domain.BookingConfirmed:
		e.Type = TypeBookingConfirmed
		e.Title = "Session confirmed"
		e.Message = fmt.Sprintf("Your session on %s is confirmed.", when)
		if b.MeetingLink != "" {
			e.Message += " Meeting link: " + b.MeetingLink
		}
	case domain.BookingCompleted:
		e.Type = TypeBookingCompleted
		e.Title = "Session completed"
		e.Message = fmt.Sprintf("Your session on %s was marked completed.", when)
	default:
		e.Type = TypeBookingCancelled
		e.Title = "Session cancelled"
		e.Message = fmt.Sprintf("Your session on %s was cancelled.", when)
	}
	return e
}

func expertReviewedEvent(p *domain.Profile) Event {
	e := Event{CreatedAt: time.Now().UTC()}
	if p.Status == domain.StatusApproved {
		e.Type = TypeExpertApproved
		e.Title = "Application approved"
		e.Message = "Your expert profile is now listed in the directory."
	} else {
		e.Type = TypeExpertRejected
		e.Title = "Application not approved"
		e.Message = "Your expert application was not approved."
	}
	return e
}

func formatWhen(t time.Time) string {
	return t.UTC().Format("Mon, 02 Jan 2006 15:04 MST")
}

func nameOf(p *domain.Profile) string {
	if p == nil || p.FullName == "" {
		return "Someone"
	}
	return p.FullName
}
