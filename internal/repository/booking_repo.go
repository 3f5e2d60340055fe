package repository

import (
	"context"
	"time"

	"expertbridge/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:              m.ID,
		ExpertID:        m.ExpertID,
		SeekerID:        m.SeekerID,
		ScheduledAt:     m.ScheduledAt.UTC(),
		DurationMinutes: m.DurationMinutes,
		MeetingLink:     deref(m.MeetingLink),
		Status:          domain.BookingStatus(m.Status),
		Topic:           m.Topic,
		Notes:           deref(m.Notes),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:              b.ID,
		ExpertID:        b.ExpertID,
		SeekerID:        b.SeekerID,
		ScheduledAt:     b.ScheduledAt.UTC(),
		DurationMinutes: b.DurationMinutes,
		MeetingLink:     nullable(b.MeetingLink),
		Status:          string(b.Status),
		Topic:           b.Topic,
		Notes:           nullable(b.Notes),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = newID()
	}
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// ListByExpert returns the expert's bookings, earliest scheduled first.
func (r *BookingRepository) ListByExpert(ctx context.Context, expertID string) ([]domain.Booking, error) {
	return r.listWhere(ctx, "expert_id = ?", expertID)
}

// ListBySeeker returns the seeker's bookings, earliest scheduled first.
func (r *BookingRepository) ListBySeeker(ctx context.Context, seekerID string) ([]domain.Booking, error) {
	return r.listWhere(ctx, "seeker_id = ?", seekerID)
}

func (r *BookingRepository) listWhere(ctx context.Context, cond string, arg string) ([]domain.Booking, error) {
	var rows []bookingModel
	if err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("scheduled_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// TransitionStatus moves a booking from one status to another in a single
// conditional write. A non-nil meetingLink is stored alongside the status.
// It returns gorm.ErrRecordNotFound when the booking does not exist and
// ErrStatusConflict when its current status is not from.
func (r *BookingRepository) TransitionStatus(ctx context.Context, id string, from, to domain.BookingStatus, meetingLink *string) error {
	updates := map[string]any{
		"status":     string(to),
		"updated_at": time.Now().UTC(),
	}
	if meetingLink != nil {
		updates["meeting_link"] = *meetingLink
	}

	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 1 {
		return nil
	}

	var cnt int64
	if err := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrStatusConflict
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&cnt).Error
	return cnt, err
}

func (r *BookingRepository) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("status = ?", string(status)).
		Count(&cnt).Error
	return cnt, err
}
