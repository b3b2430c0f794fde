package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"food-scanner/internal/infrastructure/config"
	"food-scanner/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// Manager 掃描結果快取，以內容雜湊為鍵
type Manager struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewManager 創建快取管理器
func NewManager(cfg *config.CacheConfig) (*Manager, error) {
	if !cfg.Enabled {
		return &Manager{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Manager{
		client: client,
		config: cfg,
	}, nil
}

// Get 以內容雜湊讀取快取結果，未命中回傳 (nil, nil)
func (m *Manager) Get(ctx context.Context, contentHash string) (*common.Result, error) {
	if !m.config.Enabled || m.client == nil {
		return nil, nil
	}

	data, err := m.client.Get(ctx, m.key(contentHash)).Bytes()
	if err != nil {
		if err == redis.Nil {
			common.LogCacheMiss("scan_result", contentHash)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var result common.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}

	common.LogCacheHit("scan_result", contentHash)
	return &result, nil
}

// Set 寫入快取結果
func (m *Manager) Set(ctx context.Context, contentHash string, result *common.Result) error {
	if !m.config.Enabled || m.client == nil {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := m.client.Set(ctx, m.key(contentHash), data, m.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// key 生成快取鍵
func (m *Manager) key(contentHash string) string {
	return fmt.Sprintf("scan:result:%s", contentHash)
}

// Close 關閉 Redis 連線
func (m *Manager) Close() error {
	if m.client == nil {
		return nil
	}
	return m.client.Close()
}
