package scan

import (
	"context"
	"fmt"
	"strings"

	"food-scanner/internal/core/ai/provider"
	"food-scanner/internal/pkg/common"

	"go.uber.org/zap"
)

// GenerativeEvaluator 以外部模型評估食材安全性
type GenerativeEvaluator struct {
	generator     provider.Generator
	minConfidence int
}

// NewGenerativeEvaluator 創建生成式評估器
func NewGenerativeEvaluator(generator provider.Generator, minConfidence int) *GenerativeEvaluator {
	return &GenerativeEvaluator{
		generator:     generator,
		minConfidence: minConfidence,
	}
}

// Evaluate 組裝提示詞並呼叫模型，回傳清洗後的結果
func (e *GenerativeEvaluator) Evaluate(ctx context.Context, conditions []common.Condition, ingredients []string) (*common.Result, error) {
	prompt := buildScanPrompt(conditions, ingredients, e.minConfidence)

	common.LogDebug("掃描評估 prompt 組裝完成",
		zap.Int("conditions", len(conditions)),
		zap.Int("ingredients", len(ingredients)),
	)

	raw, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAnalysisFailed, err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, common.ErrMalformedAIResponse
	}

	return ParseResult(raw, e.minConfidence)
}

// buildScanPrompt 組裝評估提示詞
func buildScanPrompt(conditions []common.Condition, ingredients []string, minConfidence int) string {
	var sb strings.Builder
	sb.WriteString("You are a food safety analyst. Evaluate the following product ingredients against the user's dietary conditions.\n\n")

	sb.WriteString("User conditions:\n")
	if len(conditions) == 0 {
		sb.WriteString("- none\n")
	}
	for _, cond := range conditions {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", cond.Category, cond.Name))
	}

	sb.WriteString("\nIngredients:\n")
	for _, ing := range ingredients {
		sb.WriteString(fmt.Sprintf("- %s\n", ing))
	}

	sb.WriteString(fmt.Sprintf(`
Requirements:
1. Return a single JSON object only, no explanation text outside the JSON
2. All keys must use double quotes
3. "safe" is a boolean, "riskScore" an integer 0-100
4. "severity" must be one of: low, medium, high, critical
5. Each verdict "status" must be one of: safe, warning, danger
6. Each verdict "category" must be one of: diet, allergy, avoid, health
7. Provide one verdict per user condition, no more, no less
8. "issues" lists only real problems found in the ingredients
9. Only suggest alternatives that are real products you are at least %d%% confident exist, with "confidence" as an integer 0-100
10. If the product is safe, return an empty "alternatives" array
11. Do not use line breaks inside string values

Return JSON in exactly this format:
{
    "safe": true,
    "riskScore": 0,
    "severity": "low",
    "issues": [
        {"type": "allergen", "item": "ingredient name", "reason": "why this is a problem"}
    ],
    "verdicts": [
        {"category": "allergy", "name": "condition name", "status": "safe", "reason": "short reason"}
    ],
    "alternatives": [
        {"name": "product name", "brand": "brand", "reason": "why it fits", "searchQuery": "search terms", "confidence": 90}
    ],
    "summary": "one sentence verdict",
    "detailedExplanation": "a few sentences of reasoning"
}`, minConfidence))

	return sb.String()
}
