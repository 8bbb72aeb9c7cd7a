package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	"luxurystay/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// Service contains all business logic for authentication
type Service struct {
	users UserRepository
	jwt   TokenIssuer
}

func NewService(users UserRepository, jwt TokenIssuer) *Service {
	return &Service{users: users, jwt: jwt}
}

// Register creates a guest account and signs it in. Staff roles are granted
// afterwards by an admin.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		ID:           domain.NewID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleGuest,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Printf("user_registered user_id=%s", u.ID)
	return s.issue(u)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *Service) issue(u *domain.User) (*AuthResponse, error) {
	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResponse{User: toPublic(u), Token: token}, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*UserPublic, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := toPublic(u)
	return &out, nil
}

// ListUsers returns users, optionally narrowed to one role.
func (s *Service) ListUsers(ctx context.Context, role domain.UserRole) ([]UserPublic, error) {
	var roles []domain.UserRole
	if role != "" {
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
		}
		roles = append(roles, role)
	}

	users, err := s.users.List(ctx, roles...)
	if err != nil {
		return nil, err
	}
	out := make([]UserPublic, 0, len(users))
	for i := range users {
		out = append(out, toPublic(&users[i]))
	}
	return out, nil
}

func (s *Service) UpdateRole(ctx context.Context, actor domain.Principal, userID string, role domain.UserRole) (*UserPublic, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	u, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	log.Printf("user_role_updated user_id=%s role=%s by=%s", u.ID, u.Role, actor.UserID)
	out := toPublic(u)
	return &out, nil
}
