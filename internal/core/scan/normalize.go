package scan

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// NormalizeIngredients 正規化食材清單：去除空白、轉小寫、剔除空項後排序
// 排序讓相同內容但順序不同的掃描共用同一份紀錄與快取
func NormalizeIngredients(ingredients []string) []string {
	normalized := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		name := strings.ToLower(strings.TrimSpace(ing))
		if name == "" {
			continue
		}
		normalized = append(normalized, name)
	}
	sort.Strings(normalized)
	return normalized
}

// ContentHash 計算正規化食材清單的內容雜湊
func ContentHash(normalized []string) string {
	sum := sha256.Sum256([]byte(strings.Join(normalized, ",")))
	return hex.EncodeToString(sum[:])
}
