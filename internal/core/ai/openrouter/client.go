package openrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"food-scanner/internal/core/ai/provider"
	"food-scanner/internal/infrastructure/config"
	"food-scanner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://openrouter.ai/api/v1"

// Client OpenRouter API 客戶端
type Client struct {
	client *resty.Client
	config *config.OpenRouterConfig
}

// Request 表示 API 請求
type Request struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

// Message 消息結構
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response OpenRouter 響應結構
type Response struct {
	ID      string `json:"id"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// NewClient 創建新的 OpenRouter 客戶端
func NewClient(cfg *config.OpenRouterConfig) *Client {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("HTTP-Referer", "https://food-scanner.app").
		SetHeader("X-Title", "Food Scanner")

	// 僅針對傳輸層錯誤與 5xx 重試，4xx 一律直接回傳
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return r.StatusCode() >= http.StatusInternalServerError
	})

	return &Client{
		client: client,
		config: cfg,
	}
}

// Generate 以提示詞生成回應文字
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	req := &Request{
		Model: c.config.Model,
		Messages: []Message{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: c.config.MaxTokens,
	}

	common.LogInfo("Sending request to OpenRouter",
		zap.String("model", req.Model),
		zap.Int("prompt_length", len(prompt)),
	)

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		common.LogError("Failed to send request to AI service",
			zap.Error(err),
			zap.String("model", req.Model),
		)
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogError("AI service returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", req.Model),
			zap.String("response", resp.String()),
		)
		return "", fmt.Errorf("AI service error (status %d): %s", resp.StatusCode(), resp.String())
	}

	// 解析響應
	var response Response
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("empty choices in OpenRouter response")
	}

	content := response.Choices[0].Message.Content
	if len(content) == 0 {
		return "", fmt.Errorf("empty content in OpenRouter response")
	}

	common.LogAICall(req.Model, response.Usage.TotalTokens, time.Since(start))

	return content, nil
}

// GetModel 獲取當前使用的模型名稱
func (c *Client) GetModel() string {
	return c.config.Model
}

// Close 關閉客戶端
func (c *Client) Close() error {
	return nil
}

var _ provider.Generator = (*Client)(nil)
