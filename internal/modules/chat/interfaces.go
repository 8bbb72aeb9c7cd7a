package chat

import (
	"context"

	"luxurystay/internal/domain"
)

// MessageRepository is satisfied by the gorm and MongoDB message stores.
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *domain.Message) error
	History(ctx context.Context, a, b string) ([]domain.Message, error)
	MarkRead(ctx context.Context, reader, sender string) (int64, error)
	CountUnread(ctx context.Context, reader string) (int64, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, roles ...domain.UserRole) ([]domain.User, error)
}

type Notifier interface {
	Dispatch(ctx context.Context, channel, event string, payload any)
}
