package auth

import (
	"context"
	"os"
	"testing"
	"time"

	"food-scanner/internal/infrastructure/config"
	"food-scanner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *common.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*common.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*common.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByUserID(ctx context.Context, userID string) (*common.User, error) {
	args := m.Called(ctx, userID)
	if user := args.Get(0); user != nil {
		return user.(*common.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, user *common.User) error {
	return m.Called(ctx, user).Error(0)
}

func newTestService(users *mockUserRepository) *Service {
	return NewService(users, &config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
}

func TestRegister(t *testing.T) {
	t.Run("creates user with hashed password and issues token", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, nil)
		users.On("Create", mock.Anything, mock.Anything).Return(nil)

		svc := newTestService(users)
		user, token, err := svc.Register(context.Background(), " New@Example.com ", "secret123")
		require.NoError(t, err)

		assert.Equal(t, "new@example.com", user.Email)
		assert.NotEmpty(t, user.UserID)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
		assert.NotEmpty(t, token)

		claims, err := svc.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.UserID, claims.UserID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByEmail", mock.Anything, "taken@example.com").Return(&common.User{Email: "taken@example.com"}, nil)

		_, _, err := newTestService(users).Register(context.Background(), "taken@example.com", "secret123")
		assert.ErrorIs(t, err, common.ErrUserExists)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := newTestService(new(mockUserRepository))

		_, _, err := svc.Register(context.Background(), "not-an-email", "secret123")
		assert.True(t, common.IsValidationError(err))

		_, _, err = svc.Register(context.Background(), "ok@example.com", "short")
		assert.True(t, common.IsValidationError(err))
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	existing := &common.User{
		UserID:       "u1",
		Email:        "user@example.com",
		PasswordHash: string(hash),
	}

	t.Run("valid credentials", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByEmail", mock.Anything, "user@example.com").Return(existing, nil)

		user, token, err := newTestService(users).Login(context.Background(), "User@Example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "u1", user.UserID)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password and unknown email return the same error", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByEmail", mock.Anything, "user@example.com").Return(existing, nil)
		users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

		svc := newTestService(users)

		_, _, err := svc.Login(context.Background(), "user@example.com", "wrong")
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)

		_, _, err = svc.Login(context.Background(), "ghost@example.com", "secret123")
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	})
}

func TestParseToken(t *testing.T) {
	svc := newTestService(new(mockUserRepository))

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ParseToken("not.a.token")
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewService(new(mockUserRepository), &config.AuthConfig{JWTSecret: "other-secret", TokenTTL: time.Hour})
		token, err := other.issueToken(&common.User{UserID: "u1", Email: "a@b.c"})
		require.NoError(t, err)

		_, err = svc.ParseToken(token)
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewService(new(mockUserRepository), &config.AuthConfig{JWTSecret: "test-secret", TokenTTL: -time.Hour})
		token, err := expired.issueToken(&common.User{UserID: "u1", Email: "a@b.c"})
		require.NoError(t, err)

		_, err = svc.ParseToken(token)
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	})
}
