package scan

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"food-scanner/internal/pkg/common"

	"go.uber.org/zap"
)

// ---------------- 寬鬆版中繼結構：容忍模型輸出的型別雜訊 ----------------
// 所有欄位先收原始 JSON，逐欄清洗；單一欄位型別錯誤不影響其他欄位

type looseResult struct {
	Safe                json.RawMessage `json:"safe"`
	RiskScore           json.RawMessage `json:"riskScore"`
	Severity            json.RawMessage `json:"severity"`
	Issues              json.RawMessage `json:"issues"`
	Verdicts            json.RawMessage `json:"verdicts"`
	Alternatives        json.RawMessage `json:"alternatives"`
	Summary             json.RawMessage `json:"summary"`
	DetailedExplanation json.RawMessage `json:"detailedExplanation"`
}

type looseIssue struct {
	Type   json.RawMessage `json:"type"`
	Item   json.RawMessage `json:"item"`
	Reason json.RawMessage `json:"reason"`
}

type looseVerdict struct {
	Category json.RawMessage `json:"category"`
	Name     json.RawMessage `json:"name"`
	Status   json.RawMessage `json:"status"`
	Reason   json.RawMessage `json:"reason"`
}

type looseAlternative struct {
	Name        json.RawMessage `json:"name"`
	Brand       json.RawMessage `json:"brand"`
	Reason      json.RawMessage `json:"reason"`
	SearchQuery json.RawMessage `json:"searchQuery"`
	Confidence  json.RawMessage `json:"confidence"`
}

// ---------------------------------------------------------------

// ExtractJSON 從模型回應中取出 JSON 物件
// 優先取 ```json 圍欄內容，否則取第一個 { 到最後一個 }
func ExtractJSON(raw string) (string, error) {
	content := strings.TrimSpace(raw)

	if idx := strings.Index(content, "```json"); idx != -1 {
		content = content[idx+len("```json"):]
		if end := strings.Index(content, "```"); end != -1 {
			content = content[:end]
		}
		content = strings.TrimSpace(content)
	} else if idx := strings.Index(content, "```"); idx != -1 {
		content = content[idx+len("```"):]
		if end := strings.Index(content, "```"); end != -1 {
			content = content[:end]
		}
		content = strings.TrimSpace(content)
	}

	start, end := strings.Index(content, "{"), strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return "", common.ErrMalformedAIResponse
	}
	return content[start : end+1], nil
}

// ParseResult 解析並清洗模型輸出，缺漏或型別錯誤的欄位一律補預設值
// 只有整段 JSON 語法壞掉才回錯誤；minAlternativeConfidence 之下的替代產品建議會被剔除
func ParseResult(raw string, minAlternativeConfidence int) (*common.Result, error) {
	content, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var lr looseResult
	if err := common.ParseJSON(content, &lr); err != nil {
		// 模型偶爾漏掉鍵名的雙引號，補上後再試一次
		if err2 := common.ParseJSON(common.QuoteJSONKeys(content), &lr); err2 != nil {
			// 生成結果不穩定，保留原文以利調整提示詞
			common.LogError("AI 回應解析失敗", zap.Error(err), zap.String("raw", content))
			return nil, fmt.Errorf("%w: %v", common.ErrMalformedAIResponse, err)
		}
	}

	result := &common.Result{
		Safe:                coerceBool(lr.Safe),
		RiskScore:           coerceScore(lr.RiskScore, 50),
		Severity:            coerceSeverity(coerceString(lr.Severity)),
		Issues:              []common.Issue{},
		Verdicts:            []common.Verdict{},
		Alternatives:        []common.Alternative{},
		Summary:             coerceString(lr.Summary),
		DetailedExplanation: coerceString(lr.DetailedExplanation),
	}

	for _, elem := range splitArray(lr.Issues) {
		var issue looseIssue
		if json.Unmarshal(elem, &issue) != nil {
			continue
		}
		item, reason := coerceString(issue.Item), coerceString(issue.Reason)
		if item == "" && reason == "" {
			continue
		}
		result.Issues = append(result.Issues, common.Issue{
			Type:   coerceIssueType(coerceString(issue.Type)),
			Item:   item,
			Reason: reason,
		})
	}

	for _, elem := range splitArray(lr.Verdicts) {
		var verdict looseVerdict
		if json.Unmarshal(elem, &verdict) != nil {
			continue
		}
		name := strings.ToLower(coerceString(verdict.Name))
		if name == "" {
			continue
		}
		result.Verdicts = append(result.Verdicts, common.Verdict{
			Category: coerceCategory(coerceString(verdict.Category)),
			Name:     name,
			Status:   coerceStatus(coerceString(verdict.Status)),
			Reason:   coerceString(verdict.Reason),
		})
	}

	result.Alternatives = parseAlternatives(lr.Alternatives, minAlternativeConfidence)

	return result, nil
}

// parseAlternatives 解析替代產品建議，欄位不全或信心不足的項目直接剔除
func parseAlternatives(raw json.RawMessage, minConfidence int) []common.Alternative {
	alternatives := []common.Alternative{}

	for _, elem := range splitArray(raw) {
		var alt looseAlternative
		if json.Unmarshal(elem, &alt) != nil {
			continue
		}
		name := coerceString(alt.Name)
		brand := coerceString(alt.Brand)
		query := coerceString(alt.SearchQuery)
		if name == "" || brand == "" || query == "" {
			continue
		}
		if coerceScore(alt.Confidence, 0) < minConfidence {
			continue
		}
		alternatives = append(alternatives, common.Alternative{
			Name:      name,
			Brand:     brand,
			Reason:    coerceString(alt.Reason),
			SearchURL: "https://www.google.com/search?q=" + url.QueryEscape(query),
		})
	}
	return alternatives
}

// splitArray 將 JSON 陣列拆成元素，缺漏或非陣列一律視為空
func splitArray(raw json.RawMessage) []json.RawMessage {
	var elems []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &elems) != nil {
		return nil
	}
	return elems
}

func coerceBool(raw json.RawMessage) bool {
	var b bool
	return json.Unmarshal(raw, &b) == nil && b
}

func coerceString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// coerceScore 解析 0–100 分數，缺漏或非數值回退預設
func coerceScore(raw json.RawMessage, fallback int) int {
	var f float64
	if len(raw) == 0 || string(raw) == "null" || json.Unmarshal(raw, &f) != nil {
		return fallback
	}
	score := int(f)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func coerceSeverity(s string) common.Severity {
	switch common.Severity(strings.ToLower(strings.TrimSpace(s))) {
	case common.SeverityLow:
		return common.SeverityLow
	case common.SeverityMedium:
		return common.SeverityMedium
	case common.SeverityHigh:
		return common.SeverityHigh
	case common.SeverityCritical:
		return common.SeverityCritical
	default:
		return common.SeverityLow
	}
}

func coerceStatus(s string) common.VerdictStatus {
	switch common.VerdictStatus(strings.ToLower(strings.TrimSpace(s))) {
	case common.StatusSafe:
		return common.StatusSafe
	case common.StatusDanger:
		return common.StatusDanger
	default:
		return common.StatusWarning
	}
}

func coerceCategory(s string) common.ConditionCategory {
	switch common.ConditionCategory(strings.ToLower(strings.TrimSpace(s))) {
	case common.CategoryAllergy:
		return common.CategoryAllergy
	case common.CategoryAvoid:
		return common.CategoryAvoid
	case common.CategoryHealth:
		return common.CategoryHealth
	default:
		return common.CategoryDiet
	}
}

func coerceIssueType(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case common.IssueAllergen:
		return common.IssueAllergen
	case common.IssueNonVegan:
		return common.IssueNonVegan
	case common.IssueAvoided:
		return common.IssueAvoided
	case common.IssueHealth:
		return common.IssueHealth
	default:
		return common.IssueUnknownIngredient
	}
}
