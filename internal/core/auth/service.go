package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"food-scanner/internal/infrastructure/config"
	"food-scanner/internal/infrastructure/repository"
	"food-scanner/internal/pkg/common"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service 帳號註冊與登入服務
type Service struct {
	users  repository.UserRepository
	config *config.AuthConfig
}

// NewService 創建認證服務
func NewService(users repository.UserRepository, cfg *config.AuthConfig) *Service {
	return &Service{
		users:  users,
		config: cfg,
	}
}

// Claims JWT 負載
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Register 註冊新帳號並簽發 token
func (s *Service) Register(ctx context.Context, email, password string) (*common.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", common.NewValidationError("a valid email is required")
	}
	if len(password) < 6 {
		return nil, "", common.NewValidationError("password must be at least 6 characters")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", common.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &common.User{
		UserID:       common.GenerateUUID(),
		Email:        email,
		PasswordHash: string(hash),
		Allergies:    []string{},
		Avoid:        []string{},
		HealthIssues: []string{},
		Likes:        []string{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	common.LogInfo("新使用者註冊完成", zap.String("user_id", user.UserID))

	return user, token, nil
}

// Login 驗證帳密並簽發 token
// 帳號不存在與密碼錯誤回傳同一錯誤，避免帳號枚舉
func (s *Service) Login(ctx context.Context, email, password string) (*common.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", common.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ParseToken 驗證並解析 token
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, common.ErrUnauthorized
	}
	return claims, nil
}

// issueToken 簽發 HS256 token
func (s *Service) issueToken(user *common.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.UserID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
			Subject:   user.UserID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
