package scan

import (
	"fmt"
	"strings"

	"food-scanner/internal/pkg/common"
)

// ApplyAllergyOverride 以逐字比對強制覆寫過敏判定
// 只要任一過敏原字串出現在原始食材文字中，不論評估結果為何一律改判不安全
// 此覆寫不信任模型輸出，是管線的最後一道防線
func ApplyAllergyOverride(result *common.Result, allergies []string, ingredients []string) {
	joined := strings.ToLower(strings.Join(ingredients, " "))

	for _, allergy := range allergies {
		term := strings.ToLower(strings.TrimSpace(allergy))
		if term == "" || !strings.Contains(joined, term) {
			continue
		}

		result.Safe = false
		result.Severity = common.SeverityCritical
		result.RiskScore = 100

		reason := fmt.Sprintf("contains %q, which matches a declared allergy", term)

		// 同名過敏判定存在則覆寫，否則補上一筆 danger 判定
		overwritten := false
		for i := range result.Verdicts {
			if result.Verdicts[i].Category == common.CategoryAllergy && result.Verdicts[i].Name == term {
				result.Verdicts[i].Status = common.StatusDanger
				result.Verdicts[i].Reason = reason
				overwritten = true
				break
			}
		}
		if !overwritten {
			result.Verdicts = append(result.Verdicts, common.Verdict{
				Category: common.CategoryAllergy,
				Name:     term,
				Status:   common.StatusDanger,
				Reason:   reason,
			})
		}

		if !hasIssue(result.Issues, common.IssueAllergen, term) {
			result.Issues = append(result.Issues, common.Issue{
				Type:   common.IssueAllergen,
				Item:   term,
				Reason: reason,
			})
		}
	}

	// 安全結果不附替代產品建議
	if result.Safe {
		result.Alternatives = []common.Alternative{}
	}
}

func hasIssue(issues []common.Issue, issueType, item string) bool {
	for _, issue := range issues {
		if issue.Type == issueType && issue.Item == item {
			return true
		}
	}
	return false
}
