package scan

import (
	"strings"

	"food-scanner/internal/pkg/common"
)

// BuildConditions 從使用者偏好萃取評估條件
// 順序固定：diet → allergies → avoid（由設定決定是否納入）→ healthIssues
func BuildConditions(user *common.User, includeAvoid bool) []common.Condition {
	conditions := []common.Condition{}

	if diet := strings.TrimSpace(user.Diet); diet != "" {
		conditions = append(conditions, common.Condition{
			Category: common.CategoryDiet,
			Name:     strings.ToLower(diet),
		})
	}

	for _, allergy := range user.Allergies {
		if name := strings.ToLower(strings.TrimSpace(allergy)); name != "" {
			conditions = append(conditions, common.Condition{
				Category: common.CategoryAllergy,
				Name:     name,
			})
		}
	}

	if includeAvoid {
		for _, item := range user.Avoid {
			if name := strings.ToLower(strings.TrimSpace(item)); name != "" {
				conditions = append(conditions, common.Condition{
					Category: common.CategoryAvoid,
					Name:     name,
				})
			}
		}
	}

	for _, issue := range user.HealthIssues {
		if name := strings.ToLower(strings.TrimSpace(issue)); name != "" {
			conditions = append(conditions, common.Condition{
				Category: common.CategoryHealth,
				Name:     name,
			})
		}
	}

	return conditions
}
