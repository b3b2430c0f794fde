package provider

import (
	"context"
	"time"
)

// Generator 定義文字生成提供者介面
// 掃描評估服務透過此介面呼叫外部模型，測試時可注入確定性假實作
type Generator interface {
	// Generate 以提示詞生成回應文字
	Generate(ctx context.Context, prompt string) (string, error)

	// GetModel 獲取當前使用的模型名稱
	GetModel() string

	// Close 關閉提供者連接
	Close() error
}

// Config 定義提供者配置
type Config struct {
	APIKey     string
	Model      string
	MaxTokens  int
	Timeout    time.Duration
	MaxRetries int
	BaseURL    string
}
