package scan

import (
	"context"

	"food-scanner/internal/pkg/common"

	"github.com/stretchr/testify/mock"
)

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

type mockScanRepository struct {
	mock.Mock
}

func (m *mockScanRepository) Insert(ctx context.Context, scan *common.Scan) error {
	return m.Called(ctx, scan).Error(0)
}

func (m *mockScanRepository) FindByContentHash(ctx context.Context, contentHash string) (*common.Scan, error) {
	args := m.Called(ctx, contentHash)
	if scan := args.Get(0); scan != nil {
		return scan.(*common.Scan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScanRepository) FindByUserAndIngredients(ctx context.Context, userID string, ingredients []string) (*common.Scan, error) {
	args := m.Called(ctx, userID, ingredients)
	if scan := args.Get(0); scan != nil {
		return scan.(*common.Scan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScanRepository) FindByUserPaged(ctx context.Context, userID string, page, limit int) ([]common.Scan, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if scans := args.Get(0); scans != nil {
		return scans.([]common.Scan), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *mockScanRepository) FindSaved(ctx context.Context, userID string) ([]common.Scan, error) {
	args := m.Called(ctx, userID)
	if scans := args.Get(0); scans != nil {
		return scans.([]common.Scan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScanRepository) FindByScanID(ctx context.Context, userID, scanID string) (*common.Scan, error) {
	args := m.Called(ctx, userID, scanID)
	if scan := args.Get(0); scan != nil {
		return scan.(*common.Scan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockScanRepository) SetSaved(ctx context.Context, userID, scanID string, saved bool) error {
	return m.Called(ctx, userID, scanID, saved).Error(0)
}

func (m *mockScanRepository) Delete(ctx context.Context, userID, scanID string) error {
	return m.Called(ctx, userID, scanID).Error(0)
}

// fakeGenerator 計數用的確定性生成器
type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGenerator) GetModel() string { return "fake-model" }

func (f *fakeGenerator) Close() error { return nil }
