package scan

import (
	"context"
	"time"

	"food-scanner/internal/core/ai/cache"
	"food-scanner/internal/infrastructure/config"
	"food-scanner/internal/infrastructure/repository"
	"food-scanner/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 掃描評估服務，串接正規化、快取、評估、覆寫與持久化
type Service struct {
	config      *config.ScanConfig
	users       repository.UserRepository
	scans       repository.ScanRepository
	ruleEval    *RuleEvaluator
	genEval     *GenerativeEvaluator
	resultCache *cache.Manager
}

// NewService 創建掃描服務
func NewService(cfg *config.ScanConfig, users repository.UserRepository, scans repository.ScanRepository, ruleEval *RuleEvaluator, genEval *GenerativeEvaluator, resultCache *cache.Manager) *Service {
	return &Service{
		config:      cfg,
		users:       users,
		scans:       scans,
		ruleEval:    ruleEval,
		genEval:     genEval,
		resultCache: resultCache,
	}
}

// Response 單次掃描的 API 回應
type Response struct {
	ScanID      string        `json:"scanId,omitempty"`
	Ingredients []string      `json:"ingredients"`
	Result      common.Result `json:"result"`
	IsSaved     bool          `json:"isSaved"`
	Cached      bool          `json:"cached,omitempty"`
	Duplicate   bool          `json:"duplicate,omitempty"`
	CreatedAt   time.Time     `json:"createdAt,omitempty"`
}

// HistoryPage 分頁的掃描歷史
type HistoryPage struct {
	Scans      []common.Scan `json:"scans"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int64         `json:"totalPages"`
}

// Evaluate 執行完整掃描管線
// 優先序：同使用者重複提交 → Redis 內容雜湊 → 其他使用者的既有紀錄
// 重複提交先查，否則全域快取會遮蔽本人紀錄的 scanId 與 isSaved
func (s *Service) Evaluate(ctx context.Context, userID string, rawIngredients []string) (*Response, error) {
	normalized := NormalizeIngredients(rawIngredients)
	if len(normalized) == 0 {
		return nil, common.ErrIngredientsRequired
	}

	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrUserNotFound
	}

	// 同使用者重複提交：沿用既有紀錄，保留 isSaved 狀態
	if dup, err := s.scans.FindByUserAndIngredients(ctx, userID, normalized); err != nil {
		return nil, err
	} else if dup != nil {
		return &Response{
			ScanID:      dup.ScanID,
			Ingredients: dup.Ingredients,
			Result:      dup.Result,
			IsSaved:     dup.IsSaved,
			Duplicate:   true,
			CreatedAt:   dup.CreatedAt,
		}, nil
	}

	contentHash := ContentHash(normalized)

	// 全域快取命中：直接回傳結果，不評估、不寫入
	if cached, err := s.resultCache.Get(ctx, contentHash); err != nil {
		common.LogWarn("讀取結果快取失敗，改查資料庫", zap.Error(err))
	} else if cached != nil {
		return &Response{
			Ingredients: normalized,
			Result:      *cached,
			IsSaved:     false,
			Cached:      true,
		}, nil
	}

	if prior, err := s.scans.FindByContentHash(ctx, contentHash); err != nil {
		return nil, err
	} else if prior != nil {
		// 回填 Redis，後續相同內容不再打資料庫
		if err := s.resultCache.Set(ctx, contentHash, &prior.Result); err != nil {
			common.LogWarn("回填結果快取失敗", zap.Error(err))
		}
		return &Response{
			Ingredients: normalized,
			Result:      prior.Result,
			IsSaved:     false,
			Cached:      true,
		}, nil
	}

	result, err := s.evaluate(ctx, user, normalized)
	if err != nil {
		return nil, err
	}

	// 逐字過敏比對使用原始提交文字，不受正規化影響
	ApplyAllergyOverride(result, user.Allergies, rawIngredients)

	scanRecord := &common.Scan{
		ScanID:      common.GenerateUUID(),
		UserID:      userID,
		Ingredients: normalized,
		ContentHash: contentHash,
		Result:      *result,
		IsSaved:     false,
		CreatedAt:   time.Now(),
	}
	if err := s.scans.Insert(ctx, scanRecord); err != nil {
		return nil, err
	}

	if err := s.resultCache.Set(ctx, contentHash, result); err != nil {
		common.LogWarn("寫入結果快取失敗", zap.Error(err))
	}

	common.LogInfo("掃描評估完成",
		zap.String("scan_id", scanRecord.ScanID),
		zap.Bool("safe", result.Safe),
		zap.String("severity", string(result.Severity)),
		zap.Int("ingredients", len(normalized)),
	)

	return &Response{
		ScanID:      scanRecord.ScanID,
		Ingredients: normalized,
		Result:      *result,
		IsSaved:     false,
		CreatedAt:   scanRecord.CreatedAt,
	}, nil
}

// evaluate 依設定選擇評估策略
func (s *Service) evaluate(ctx context.Context, user *common.User, normalized []string) (*common.Result, error) {
	if s.config.Evaluator == "rule" {
		return s.ruleEval.Evaluate(ctx, user, normalized)
	}
	conditions := BuildConditions(user, s.config.IncludeAvoidConditions)
	return s.genEval.Evaluate(ctx, conditions, normalized)
}

// History 分頁查詢使用者的掃描歷史，新到舊排序
func (s *Service) History(ctx context.Context, userID string, page, limit int) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	scans, total, err := s.scans.FindByUserPaged(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return &HistoryPage{
		Scans:      scans,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// ToggleSave 切換收藏狀態並回傳新狀態
func (s *Service) ToggleSave(ctx context.Context, userID, scanID string) (bool, error) {
	scanRecord, err := s.scans.FindByScanID(ctx, userID, scanID)
	if err != nil {
		return false, err
	}
	if scanRecord == nil {
		return false, common.ErrScanNotFound
	}

	saved := !scanRecord.IsSaved
	if err := s.scans.SetSaved(ctx, userID, scanID, saved); err != nil {
		return false, err
	}
	return saved, nil
}

// Saved 查詢使用者收藏的掃描
func (s *Service) Saved(ctx context.Context, userID string) ([]common.Scan, error) {
	return s.scans.FindSaved(ctx, userID)
}

// Delete 刪除使用者名下的掃描
func (s *Service) Delete(ctx context.Context, userID, scanID string) error {
	return s.scans.Delete(ctx, userID, scanID)
}
