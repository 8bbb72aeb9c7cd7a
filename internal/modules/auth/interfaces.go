package auth

import (
	"context"

	"luxurystay/internal/domain"
)

// UserRepository holds the user lookups the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, roles ...domain.UserRole) ([]domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.UserRole) (*domain.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID, role string) (string, error)
}
