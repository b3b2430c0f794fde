package user

import (
	"context"
	"strings"

	"food-scanner/internal/infrastructure/repository"
	"food-scanner/internal/pkg/common"
)

// Service 使用者偏好設定服務
type Service struct {
	users repository.UserRepository
}

// NewService 創建使用者服務
func NewService(users repository.UserRepository) *Service {
	return &Service{users: users}
}

// ProfileUpdate 偏好設定更新請求
type ProfileUpdate struct {
	Diet         string   `json:"diet"`
	Allergies    []string `json:"allergies"`
	Avoid        []string `json:"avoid"`
	HealthIssues []string `json:"healthIssues"`
	Likes        []string `json:"likes"`
	Age          int      `json:"age"`
	Gender       string   `json:"gender"`
}

// Get 取得使用者資料
func (s *Service) Get(ctx context.Context, userID string) (*common.User, error) {
	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile 更新偏好設定
// allergies / avoid / healthIssues 一律轉小寫儲存，條件萃取與安全覆寫依賴此不變量
func (s *Service) UpdateProfile(ctx context.Context, userID string, update *ProfileUpdate) (*common.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Diet = strings.ToLower(strings.TrimSpace(update.Diet))
	user.Allergies = normalizeTerms(update.Allergies)
	user.Avoid = normalizeTerms(update.Avoid)
	user.HealthIssues = normalizeTerms(update.HealthIssues)
	user.Likes = trimTerms(update.Likes)
	user.Age = update.Age
	user.Gender = strings.TrimSpace(update.Gender)
	user.ProfileCompleted = true

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// normalizeTerms 去空白、轉小寫並剔除空項
func normalizeTerms(terms []string) []string {
	normalized := []string{}
	for _, term := range terms {
		if t := strings.ToLower(strings.TrimSpace(term)); t != "" {
			normalized = append(normalized, t)
		}
	}
	return normalized
}

func trimTerms(terms []string) []string {
	trimmed := []string{}
	for _, term := range terms {
		if t := strings.TrimSpace(term); t != "" {
			trimmed = append(trimmed, t)
		}
	}
	return trimmed
}
