package auth

import (
	"context"
	"testing"

	"luxurystay/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, roles ...domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, roles)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id string, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type stubIssuer struct{}

func (stubIssuer) GenerateToken(userID, role string) (string, error) {
	return "token-" + userID + "-" + role, nil
}

func TestRegister_CreatesGuest(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, stubIssuer{})

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleGuest &&
			u.Email == "guest@hotel.io" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
	})).Return(nil)

	res, err := svc.Register(context.Background(), RegisterRequest{Username: "guest", Email: "guest@hotel.io", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGuest, res.User.Role)
	assert.Equal(t, "token-"+res.User.ID+"-guest", res.Token)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, stubIssuer{})
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrConflict)

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "g", Email: "g@x.io", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "u1", Email: "r@hotel.io", PasswordHash: string(hash), Role: domain.RoleReceptionist}

	repo := new(mockUserRepo)
	svc := NewService(repo, stubIssuer{})
	repo.On("GetByEmail", mock.Anything, "r@hotel.io").Return(user, nil)
	repo.On("GetByEmail", mock.Anything, "nobody@hotel.io").Return(nil, domain.ErrNotFound)

	res, err := svc.Login(context.Background(), LoginRequest{Email: "r@hotel.io", Password: "correct"})
	require.NoError(t, err)
	assert.Equal(t, "token-u1-receptionist", res.Token)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "r@hotel.io", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@hotel.io", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateRole(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, stubIssuer{})
	admin := domain.Principal{UserID: "a1", Role: domain.RoleAdmin}

	repo.On("UpdateRole", mock.Anything, "u1", domain.RoleHousekeeping).
		Return(&domain.User{ID: "u1", Role: domain.RoleHousekeeping}, nil)

	u, err := svc.UpdateRole(context.Background(), admin, "u1", domain.RoleHousekeeping)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleHousekeeping, u.Role)

	_, err = svc.UpdateRole(context.Background(), admin, "u1", "janitor")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateRole(context.Background(), domain.Principal{UserID: "m1", Role: domain.RoleManager}, "u1", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	repo.AssertNumberOfCalls(t, "UpdateRole", 1)
}

func TestListUsers_RoleFilter(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, stubIssuer{})

	repo.On("List", mock.Anything, []domain.UserRole{domain.RoleReceptionist}).
		Return([]domain.User{{ID: "r1", Role: domain.RoleReceptionist}}, nil)

	users, err := svc.ListUsers(context.Background(), domain.RoleReceptionist)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "r1", users[0].ID)

	_, err = svc.ListUsers(context.Background(), "pirate")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
