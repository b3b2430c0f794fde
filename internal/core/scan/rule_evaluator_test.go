package scan

import (
	"context"
	"testing"

	"food-scanner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRuleEvaluator(t *testing.T) {
	user := &common.User{
		UserID:    "u1",
		Diet:      "vegan",
		Allergies: []string{"peanut"},
		Avoid:     []string{"palm oil"},
	}

	t.Run("allergen and non-vegan conflicts", func(t *testing.T) {
		repo := new(mockIngredientRepository)
		repo.On("FindByNames", mock.Anything, []string{"peanut butter", "sugar"}).Return(map[string]common.Ingredient{
			"peanut butter": {Name: "peanut butter", Vegan: false, Allergens: []string{"peanut"}},
			"sugar":         {Name: "sugar", Vegan: true},
		}, nil)

		result, err := NewRuleEvaluator(repo).Evaluate(context.Background(), user, []string{"peanut butter", "sugar"})
		require.NoError(t, err)

		assert.False(t, result.Safe)
		assert.Equal(t, common.SeverityCritical, result.Severity)
		assert.Equal(t, 100, result.RiskScore)

		types := []string{}
		for _, issue := range result.Issues {
			types = append(types, issue.Type)
		}
		assert.Contains(t, types, common.IssueAllergen)
		assert.Contains(t, types, common.IssueNonVegan)
	})

	t.Run("clean submission is safe with no issues", func(t *testing.T) {
		repo := new(mockIngredientRepository)
		repo.On("FindByNames", mock.Anything, []string{"sugar", "water"}).Return(map[string]common.Ingredient{
			"sugar": {Name: "sugar", Vegan: true},
			"water": {Name: "water", Vegan: true},
		}, nil)

		result, err := NewRuleEvaluator(repo).Evaluate(context.Background(), user, []string{"sugar", "water"})
		require.NoError(t, err)

		assert.True(t, result.Safe)
		assert.Empty(t, result.Issues)
		assert.Equal(t, common.SeverityLow, result.Severity)
		assert.Equal(t, 0, result.RiskScore)
	})

	t.Run("unknown ingredient is informational only", func(t *testing.T) {
		repo := new(mockIngredientRepository)
		repo.On("FindByNames", mock.Anything, []string{"mystery powder"}).Return(map[string]common.Ingredient{}, nil)

		result, err := NewRuleEvaluator(repo).Evaluate(context.Background(), user, []string{"mystery powder"})
		require.NoError(t, err)

		assert.True(t, result.Safe, "unknown ingredients alone do not make the scan unsafe")
		require.Len(t, result.Issues, 1)
		assert.Equal(t, common.IssueUnknownIngredient, result.Issues[0].Type)
	})

	t.Run("avoid list hit is a non-allergen conflict", func(t *testing.T) {
		repo := new(mockIngredientRepository)
		repo.On("FindByNames", mock.Anything, []string{"palm oil"}).Return(map[string]common.Ingredient{
			"palm oil": {Name: "palm oil", Vegan: true},
		}, nil)

		result, err := NewRuleEvaluator(repo).Evaluate(context.Background(), user, []string{"palm oil"})
		require.NoError(t, err)

		assert.False(t, result.Safe)
		assert.Equal(t, common.SeverityHigh, result.Severity)
		assert.Equal(t, 70, result.RiskScore)
	})

	t.Run("one verdict per condition", func(t *testing.T) {
		repo := new(mockIngredientRepository)
		repo.On("FindByNames", mock.Anything, mock.Anything).Return(map[string]common.Ingredient{}, nil)

		result, err := NewRuleEvaluator(repo).Evaluate(context.Background(), user, []string{"water"})
		require.NoError(t, err)

		// diet + 1 allergy + 1 avoid
		require.Len(t, result.Verdicts, 3)
		assert.Equal(t, common.CategoryDiet, result.Verdicts[0].Category)
		assert.Equal(t, common.CategoryAllergy, result.Verdicts[1].Category)
		assert.Equal(t, common.CategoryAvoid, result.Verdicts[2].Category)
	})
}
