package room

import (
	"context"

	"luxurystay/internal/domain"
	"luxurystay/internal/repository"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	List(ctx context.Context, f repository.RoomFilter) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	UpdateStatus(ctx context.Context, id string, status domain.RoomStatus) error
	Delete(ctx context.Context, id string) error
}
