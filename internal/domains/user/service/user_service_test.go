package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"artplatform-backend/internal/domains/user"
	"artplatform-backend/internal/domains/user/model"
	"artplatform-backend/pkg/jwt"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func testUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:           uuid.New(),
		Email:        "admin@example.org",
		PasswordHash: string(hash),
		Role:         "admin",
	}
}

func newTestService(repo *mockRepository) ServiceInterface {
	manager := jwt.NewManager("test-secret", 15*time.Minute, 72*time.Hour)
	return NewUserService(repo, manager)
}

func TestLogin_Success(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	u := testUser(t, "correct horse")
	repo.On("GetByEmail", mock.Anything, "admin@example.org").Return(u, nil)

	tokens, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "admin@example.org",
		Password: "correct horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, u.ID, tokens.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	u := testUser(t, "correct horse")
	repo.On("GetByEmail", mock.Anything, "admin@example.org").Return(u, nil)

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "admin@example.org",
		Password: "battery staple",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	repo.On("GetByEmail", mock.Anything, "ghost@example.org").Return(nil, user.ErrUserNotFound)

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ghost@example.org",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestLogin_ValidationFailsBeforeLookup(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "not-an-email", Password: "x"})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "GetByEmail")
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	u := testUser(t, "correct horse")
	repo.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)
	repo.On("GetByID", mock.Anything, u.ID).Return(u, nil)

	tokens, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    u.Email,
		Password: "correct horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), model.RefreshRequest{
		RefreshToken: tokens.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	u := testUser(t, "correct horse")
	repo.On("GetByEmail", mock.Anything, u.Email).Return(u, nil)

	tokens, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    u.Email,
		Password: "correct horse",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), model.RefreshRequest{
		RefreshToken: tokens.AccessToken,
	})
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestRefresh_GarbageToken(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	_, err := svc.Refresh(context.Background(), model.RefreshRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}
