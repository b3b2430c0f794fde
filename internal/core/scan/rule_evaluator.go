package scan

import (
	"context"
	"fmt"
	"strings"

	"food-scanner/internal/infrastructure/repository"
	"food-scanner/internal/pkg/common"
)

// RuleEvaluator 以本地食材資料表做確定性評估
type RuleEvaluator struct {
	ingredients repository.IngredientRepository
}

// NewRuleEvaluator 創建規則評估器
func NewRuleEvaluator(ingredients repository.IngredientRepository) *RuleEvaluator {
	return &RuleEvaluator{ingredients: ingredients}
}

// Evaluate 逐項比對食材資料表
// 查無資料的食材記為 informational issue，不影響安全判定
func (e *RuleEvaluator) Evaluate(ctx context.Context, user *common.User, ingredients []string) (*common.Result, error) {
	known, err := e.ingredients.FindByNames(ctx, ingredients)
	if err != nil {
		return nil, fmt.Errorf("failed to look up ingredients: %w", err)
	}

	result := &common.Result{
		Issues:       []common.Issue{},
		Verdicts:     []common.Verdict{},
		Alternatives: []common.Alternative{},
	}

	allergySet := toSet(user.Allergies)
	avoidSet := toSet(user.Avoid)
	isVegan := strings.EqualFold(strings.TrimSpace(user.Diet), "vegan")

	// 每個條件各自追蹤最壞狀態，最後彙整成 verdicts
	dietHit := []string{}
	allergyHits := map[string][]string{}
	avoidHits := map[string][]string{}

	for _, name := range ingredients {
		ing, ok := known[name]
		if !ok {
			result.Issues = append(result.Issues, common.Issue{
				Type:   common.IssueUnknownIngredient,
				Item:   name,
				Reason: "not found in the ingredient reference table",
			})
			continue
		}

		for _, allergen := range ing.Allergens {
			tag := strings.ToLower(allergen)
			if _, hit := allergySet[tag]; hit {
				allergyHits[tag] = append(allergyHits[tag], name)
				result.Issues = append(result.Issues, common.Issue{
					Type:   common.IssueAllergen,
					Item:   name,
					Reason: fmt.Sprintf("carries allergen tag %q", tag),
				})
			}
		}

		if isVegan && !ing.Vegan {
			dietHit = append(dietHit, name)
			result.Issues = append(result.Issues, common.Issue{
				Type:   common.IssueNonVegan,
				Item:   name,
				Reason: "not vegan",
			})
		}

		if _, hit := avoidSet[name]; hit {
			avoidHits[name] = append(avoidHits[name], name)
			result.Issues = append(result.Issues, common.Issue{
				Type:   common.IssueAvoided,
				Item:   name,
				Reason: "on the user's avoid list",
			})
		}
	}

	result.Verdicts = e.buildVerdicts(user, dietHit, allergyHits, avoidHits)

	// 安全判定不計 informational issue
	unsafe := 0
	allergenHit := false
	for _, issue := range result.Issues {
		if issue.Type == common.IssueUnknownIngredient {
			continue
		}
		unsafe++
		if issue.Type == common.IssueAllergen {
			allergenHit = true
		}
	}

	result.Safe = unsafe == 0
	switch {
	case allergenHit:
		result.Severity = common.SeverityCritical
		result.RiskScore = 100
	case unsafe > 0:
		result.Severity = common.SeverityHigh
		result.RiskScore = 70
	default:
		result.Severity = common.SeverityLow
		result.RiskScore = 0
	}

	if result.Safe {
		result.Summary = "No conflicts found with your dietary profile."
	} else {
		result.Summary = fmt.Sprintf("Found %d conflict(s) with your dietary profile.", unsafe)
	}

	return result, nil
}

// buildVerdicts 依條件順序彙整判定：diet → allergies → avoid → healthIssues
func (e *RuleEvaluator) buildVerdicts(user *common.User, dietHit []string, allergyHits, avoidHits map[string][]string) []common.Verdict {
	verdicts := []common.Verdict{}

	if diet := strings.ToLower(strings.TrimSpace(user.Diet)); diet != "" {
		v := common.Verdict{Category: common.CategoryDiet, Name: diet, Status: common.StatusSafe, Reason: "no conflicting ingredients found"}
		if len(dietHit) > 0 {
			v.Status = common.StatusDanger
			v.Reason = fmt.Sprintf("non-vegan ingredients: %s", strings.Join(dietHit, ", "))
		}
		verdicts = append(verdicts, v)
	}

	for _, allergy := range user.Allergies {
		term := strings.ToLower(strings.TrimSpace(allergy))
		if term == "" {
			continue
		}
		v := common.Verdict{Category: common.CategoryAllergy, Name: term, Status: common.StatusSafe, Reason: "no matching allergen tags"}
		if hits, ok := allergyHits[term]; ok {
			v.Status = common.StatusDanger
			v.Reason = fmt.Sprintf("allergen found in: %s", strings.Join(hits, ", "))
		}
		verdicts = append(verdicts, v)
	}

	for _, item := range user.Avoid {
		term := strings.ToLower(strings.TrimSpace(item))
		if term == "" {
			continue
		}
		v := common.Verdict{Category: common.CategoryAvoid, Name: term, Status: common.StatusSafe, Reason: "not present in the ingredient list"}
		if _, ok := avoidHits[term]; ok {
			v.Status = common.StatusWarning
			v.Reason = "present in the ingredient list"
		}
		verdicts = append(verdicts, v)
	}

	for _, issue := range user.HealthIssues {
		term := strings.ToLower(strings.TrimSpace(issue))
		if term == "" {
			continue
		}
		verdicts = append(verdicts, common.Verdict{
			Category: common.CategoryHealth,
			Name:     term,
			Status:   common.StatusWarning,
			Reason:   "not covered by the ingredient reference table",
		})
	}

	return verdicts
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if term := strings.ToLower(strings.TrimSpace(item)); term != "" {
			set[term] = struct{}{}
		}
	}
	return set
}
