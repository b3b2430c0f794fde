package ingredient

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

type mockIngredientRepository struct {
	mock.Mock
}

func (m *mockIngredientRepository) Create(ctx context.Context, ingredient *common.Ingredient) error {
	return m.Called(ctx, ingredient).Error(0)
}

func (m *mockIngredientRepository) FindByNames(ctx context.Context, names []string) (map[string]common.Ingredient, error) {
	args := m.Called(ctx, names)
	if found := args.Get(0); found != nil {
		return found.(map[string]common.Ingredient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockIngredientRepository) List(ctx context.Context) ([]common.Ingredient, error) {
	args := m.Called(ctx)
	if ingredients := args.Get(0); ingredients != nil {
		return ingredients.([]common.Ingredient), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreate(t *testing.T) {
	t.Run("lowercases name and allergens, vegan defaults to true", func(t *testing.T) {
		repo := new(mockIngredientRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		ing, err := NewService(repo).Create(context.Background(), &CreateRequest{
			Name:      " Peanut Butter ",
			Allergens: []string{"Peanut", " "},
		})
		require.NoError(t, err)

		assert.Equal(t, "peanut butter", ing.Name)
		assert.True(t, ing.Vegan)
		assert.Equal(t, []string{"peanut"}, ing.Allergens)
	})

	t.Run("explicit vegan false is kept", func(t *testing.T) {
		repo := new(mockIngredientRepository)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)

		vegan := false
		ing, err := NewService(repo).Create(context.Background(), &CreateRequest{Name: "honey", Vegan: &vegan})
		require.NoError(t, err)
		assert.False(t, ing.Vegan)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := NewService(new(mockIngredientRepository)).Create(context.Background(), &CreateRequest{Name: "   "})
		assert.True(t, common.IsValidationError(err))
	})
}
