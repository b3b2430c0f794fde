package scan

import (
	"testing"

	"food-scanner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAllergyOverride(t *testing.T) {
	t.Run("verbatim match forces unsafe regardless of evaluator verdict", func(t *testing.T) {
		result := &common.Result{
			Safe:      true,
			RiskScore: 0,
			Severity:  common.SeverityLow,
			Issues:    []common.Issue{},
			Verdicts:  []common.Verdict{},
		}

		ApplyAllergyOverride(result, []string{"peanut"}, []string{"Peanut Butter", "sugar"})

		assert.False(t, result.Safe)
		assert.Equal(t, common.SeverityCritical, result.Severity)
		assert.Equal(t, 100, result.RiskScore)
		require.Len(t, result.Verdicts, 1)
		assert.Equal(t, common.StatusDanger, result.Verdicts[0].Status)
		assert.Equal(t, "peanut", result.Verdicts[0].Name)
		require.Len(t, result.Issues, 1)
		assert.Equal(t, common.IssueAllergen, result.Issues[0].Type)
	})

	t.Run("overwrites existing verdict for the same allergen", func(t *testing.T) {
		result := &common.Result{
			Safe: false,
			Verdicts: []common.Verdict{
				{Category: common.CategoryAllergy, Name: "peanut", Status: common.StatusSafe, Reason: "model said fine"},
			},
			Issues: []common.Issue{},
		}

		ApplyAllergyOverride(result, []string{"peanut"}, []string{"peanut oil"})

		require.Len(t, result.Verdicts, 1, "no duplicate verdict appended")
		assert.Equal(t, common.StatusDanger, result.Verdicts[0].Status)
	})

	t.Run("no match leaves result untouched", func(t *testing.T) {
		result := &common.Result{
			Safe:         true,
			Severity:     common.SeverityLow,
			Issues:       []common.Issue{},
			Verdicts:     []common.Verdict{},
			Alternatives: []common.Alternative{},
		}

		ApplyAllergyOverride(result, []string{"peanut"}, []string{"sugar", "flour"})

		assert.True(t, result.Safe)
		assert.Equal(t, common.SeverityLow, result.Severity)
		assert.Empty(t, result.Verdicts)
	})

	t.Run("safe result has alternatives emptied", func(t *testing.T) {
		result := &common.Result{
			Safe: true,
			Alternatives: []common.Alternative{
				{Name: "Something", Brand: "Brand", Reason: "why", SearchURL: "url"},
			},
			Issues:   []common.Issue{},
			Verdicts: []common.Verdict{},
		}

		ApplyAllergyOverride(result, nil, []string{"sugar"})

		assert.True(t, result.Safe)
		assert.Empty(t, result.Alternatives)
	})

	t.Run("case insensitive substring match", func(t *testing.T) {
		result := &common.Result{Safe: true, Issues: []common.Issue{}, Verdicts: []common.Verdict{}}

		ApplyAllergyOverride(result, []string{"MILK"}, []string{"Whole Milk Powder"})

		assert.False(t, result.Safe)
	})
}
