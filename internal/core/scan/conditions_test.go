package scan

import (
	"testing"

	"food-scanner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestBuildConditions(t *testing.T) {
	user := &common.User{
		Diet:         "Vegan",
		Allergies:    []string{"peanut", "shellfish"},
		Avoid:        []string{"palm oil"},
		HealthIssues: []string{"diabetes"},
	}

	t.Run("ordered diet then allergies then health", func(t *testing.T) {
		got := BuildConditions(user, false)
		assert.Equal(t, []common.Condition{
			{Category: common.CategoryDiet, Name: "vegan"},
			{Category: common.CategoryAllergy, Name: "peanut"},
			{Category: common.CategoryAllergy, Name: "shellfish"},
			{Category: common.CategoryHealth, Name: "diabetes"},
		}, got)
	})

	t.Run("avoid list included only when configured", func(t *testing.T) {
		got := BuildConditions(user, true)
		assert.Contains(t, got, common.Condition{Category: common.CategoryAvoid, Name: "palm oil"})
	})

	t.Run("empty profile sections contribute nothing", func(t *testing.T) {
		got := BuildConditions(&common.User{Diet: "  ", Allergies: []string{""}}, true)
		assert.Empty(t, got)
	})
}
