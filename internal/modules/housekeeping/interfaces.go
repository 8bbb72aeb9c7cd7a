package housekeeping

import (
	"context"

	"luxurystay/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	DeleteCompleted(ctx context.Context) (int64, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type Notifier interface {
	Dispatch(ctx context.Context, channel, event string, payload any)
}
