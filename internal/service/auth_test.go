package service

import (
	"context"
	"testing"
	"time"

	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/Rrens/tourism-api/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAuthService() (*AuthService, *MockUserRepository, *security.JWTManager) {
	repo := new(MockUserRepository)
	jwt := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, time.Hour)
	return NewAuthService(repo, jwt), repo, jwt
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, repo, jwt := newTestAuthService()

	var stored *domain.User
	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.User)
	}).Return(nil)

	user, err := svc.Register(ctx, domain.UserCreate{Username: "abebe", Email: "Abebe@Example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Equal(t, "abebe@example.com", user.Email)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)

	repo.On("GetByEmail", ctx, "abebe@example.com").Return(stored, nil)

	tokens, err := svc.Login(ctx, domain.UserLogin{Email: "abebe@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	claims, err := jwt.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	_, err = svc.Login(ctx, domain.UserLogin{Email: "abebe@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestAuthService()
	repo.On("Create", ctx, mock.Anything).Return(domain.ErrConflict)

	_, err := svc.Register(ctx, domain.UserCreate{Username: "abebe", Email: "a@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestAuthService()
	repo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(ctx, domain.UserLogin{Email: "nobody@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	svc, repo, jwt := newTestAuthService()
	user := &domain.User{ID: [16]byte{1}, Email: "a@example.com", Role: domain.RoleAdmin}
	repo.On("GetByID", ctx, user.ID).Return(user, nil)

	_, refresh, _, err := jwt.GenerateTokenPair(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	tokens, err := svc.Refresh(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	_, err = svc.Refresh(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
