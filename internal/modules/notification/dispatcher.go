package notification

import (
	"context"
	"errors"
	"sync"

	"expertbridge/internal/domain"

	"go.uber.org/zap"
)

// Dispatcher fans booking and review events out to the recipient's live
// websocket and email inbox. Email goes out in the background so a slow
// relay never holds up the request that triggered it; failures are logged.
type Dispatcher struct {
	hub    *Hub
	mailer Mailer
	log    *zap.Logger
	wg     sync.WaitGroup
}

func NewDispatcher(hub *Hub, mailer Mailer, log *zap.Logger) *Dispatcher {
	if mailer == nil {
		mailer = NopMailer{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{hub: hub, mailer: mailer, log: log}
}

// BookingRequested tells the expert a seeker asked for a session.
func (d *Dispatcher) BookingRequested(ctx context.Context, b *domain.Booking, expert, seeker *domain.Profile) error {
	if expert == nil {
		return errors.New("booking requested: no expert profile")
	}
	return d.deliver(ctx, expert, bookingRequestedEvent(b, seeker))
}

// BookingStatusChanged tells the seeker what the expert did with the request.
func (d *Dispatcher) BookingStatusChanged(ctx context.Context, b *domain.Booking, seeker *domain.Profile) error {
	if seeker == nil {
		return errors.New("booking status changed: no seeker profile")
	}
	return d.deliver(ctx, seeker, bookingStatusEvent(b))
}

func (d *Dispatcher) ExpertReviewed(ctx context.Context, expert *domain.Profile) error {
	if expert == nil {
		return errors.New("expert reviewed: no profile")
	}
	return d.deliver(ctx, expert, expertReviewedEvent(expert))
}

func (d *Dispatcher) deliver(ctx context.Context, to *domain.Profile, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pushed := d.hub != nil && d.hub.SendToUser(to.ID, e)
	d.log.Debug("notification dispatched",
		zap.String("type", e.Type),
		zap.String("profile_id", to.ID),
		zap.Bool("pushed", pushed))

	if to.Email == "" {
		return nil
	}
	d.wg.Add(1)
	go func(email string) {
		defer d.wg.Done()
		if err := d.mailer.Send(email, e.Title, e.Message); err != nil {
			d.log.Warn("notification email failed",
				zap.String("type", e.Type),
				zap.String("profile_id", to.ID),
				zap.Error(err))
		}
	}(to.Email)
	return nil
}

// Wait blocks until every queued email has been handed to the mailer.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
