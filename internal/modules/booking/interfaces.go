package booking

import (
	"context"
	"time"

	"luxurystay/internal/domain"
	"luxurystay/internal/repository"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
	HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id string, expectedVersion int64, status domain.BookingStatus, at time.Time) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

// RoomRepository defines the interface for room operations
type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) error
}

type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Notifier pushes real-time events. Delivery is best effort.
type Notifier interface {
	Dispatch(ctx context.Context, channel, event string, payload any)
}
