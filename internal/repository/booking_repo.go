package repository

import (
	"context"
	"time"

	"luxurystay/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type BookingFilter struct {
	UserID string
	Status domain.BookingStatus
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = domain.NewID()
	}
	if b.Version == 0 {
		b.Version = 1
	}
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

// List returns bookings newest first.
func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var out []domain.Booking
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// HasOverlap reports whether a booking that still holds the room intersects [checkIn, checkOut).
func (r *BookingRepository) HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", []domain.BookingStatus{
			domain.BookingPending,
			domain.BookingConfirmed,
			domain.BookingCheckedIn,
		}).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// UpdateStatus writes status only if the stored version still equals expectedVersion.
// A lost race yields domain.ErrConflict.
func (r *BookingRepository) UpdateStatus(
	ctx context.Context,
	id string,
	expectedVersion int64,
	status domain.BookingStatus,
	at time.Time,
) (*domain.Booking, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		UpdateColumns(map[string]any{
			"status":     status,
			"version":    gorm.Expr("version + 1"),
			"updated_at": at,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.ErrConflict
	}
	return r.GetByID(ctx, id)
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Booking{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
