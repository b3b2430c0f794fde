package scan

import (
	"context"
	"strings"
	"testing"

	"food-scanner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerativeEvaluator(t *testing.T) {
	conditions := []common.Condition{
		{Category: common.CategoryDiet, Name: "vegan"},
		{Category: common.CategoryAllergy, Name: "peanut"},
	}

	t.Run("parses generator output", func(t *testing.T) {
		gen := &fakeGenerator{response: "```json\n" + safeResponse + "\n```"}

		result, err := NewGenerativeEvaluator(gen, 80).Evaluate(context.Background(), conditions, []string{"sugar"})
		require.NoError(t, err)
		assert.True(t, result.Safe)
		assert.Equal(t, 1, gen.calls)
	})

	t.Run("blank response is malformed", func(t *testing.T) {
		gen := &fakeGenerator{response: "   "}

		_, err := NewGenerativeEvaluator(gen, 80).Evaluate(context.Background(), conditions, []string{"sugar"})
		assert.ErrorIs(t, err, common.ErrMalformedAIResponse)
	})

	t.Run("transport failure maps to analysis failure", func(t *testing.T) {
		gen := &fakeGenerator{err: assert.AnError}

		_, err := NewGenerativeEvaluator(gen, 80).Evaluate(context.Background(), conditions, []string{"sugar"})
		assert.ErrorIs(t, err, common.ErrAnalysisFailed)
	})
}

func TestBuildScanPrompt(t *testing.T) {
	prompt := buildScanPrompt([]common.Condition{
		{Category: common.CategoryAllergy, Name: "peanut"},
	}, []string{"peanut butter", "sugar"}, 80)

	assert.True(t, strings.Contains(prompt, "allergy: peanut"))
	assert.True(t, strings.Contains(prompt, "- peanut butter"))
	assert.True(t, strings.Contains(prompt, "- sugar"))
	assert.True(t, strings.Contains(prompt, "80%"))
	assert.True(t, strings.Contains(prompt, `"alternatives"`))
}
