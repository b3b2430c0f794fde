package user

import (
	"context"
	"os"
	"testing"

	"food-scanner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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

func TestUpdateProfile(t *testing.T) {
	t.Run("preference terms stored lowercase", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByUserID", mock.Anything, "u1").Return(&common.User{UserID: "u1"}, nil)
		users.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil)

		svc := NewService(users)
		updated, err := svc.UpdateProfile(context.Background(), "u1", &ProfileUpdate{
			Diet:         " Vegan ",
			Allergies:    []string{" Peanut", "SHELLFISH", ""},
			Avoid:        []string{"Palm Oil"},
			HealthIssues: []string{"Diabetes"},
			Likes:        []string{"Dark Chocolate"},
			Age:          30,
			Gender:       "female",
		})
		require.NoError(t, err)

		assert.Equal(t, "vegan", updated.Diet)
		assert.Equal(t, []string{"peanut", "shellfish"}, updated.Allergies)
		assert.Equal(t, []string{"palm oil"}, updated.Avoid)
		assert.Equal(t, []string{"diabetes"}, updated.HealthIssues)
		assert.Equal(t, []string{"Dark Chocolate"}, updated.Likes, "likes keep their original casing")
		assert.True(t, updated.ProfileCompleted)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByUserID", mock.Anything, "ghost").Return(nil, nil)

		_, err := NewService(users).UpdateProfile(context.Background(), "ghost", &ProfileUpdate{})
		assert.ErrorIs(t, err, common.ErrUserNotFound)
	})
}
