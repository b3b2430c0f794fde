package api

import (
	"context"
	"net/http"
	"time"

	authHandler "food-scanner/internal/api/handlers/auth"
	"food-scanner/internal/api/handlers/health"
	ingredientHandler "food-scanner/internal/api/handlers/ingredient"
	scanHandler "food-scanner/internal/api/handlers/scan"
	userHandler "food-scanner/internal/api/handlers/user"
	"food-scanner/internal/api/middleware"
	"food-scanner/internal/core/ai/cache"
	"food-scanner/internal/core/ai/openrouter"
	authService "food-scanner/internal/core/auth"
	ingredientService "food-scanner/internal/core/ingredient"
	scanService "food-scanner/internal/core/scan"
	userService "food-scanner/internal/core/user"
	"food-scanner/internal/infrastructure/config"
	"food-scanner/internal/infrastructure/database"
	"food-scanner/internal/infrastructure/repository"
	"food-scanner/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置，必須涵蓋最慢的外部生成呼叫
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)，純文字食材清單用不到更多
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, mongo *database.Mongo, cacheManager *cache.Manager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 請求超時：外部生成呼叫的最後一道界限
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
			c.Abort()
		}
	})

	// 初始化儲存庫與服務
	userRepo := repository.NewUserRepository(mongo.Users)
	ingredientRepo := repository.NewIngredientRepository(mongo.Ingredients)
	scanRepo := repository.NewScanRepository(mongo.Scans)

	authSvc := authService.NewService(userRepo, &cfg.Auth)
	userSvc := userService.NewService(userRepo)
	ingredientSvc := ingredientService.NewService(ingredientRepo)

	generator := openrouter.NewClient(&cfg.OpenRouter)
	ruleEval := scanService.NewRuleEvaluator(ingredientRepo)
	genEval := scanService.NewGenerativeEvaluator(generator, cfg.Scan.MinAlternativeConfidence)
	scanSvc := scanService.NewService(&cfg.Scan, userRepo, scanRepo, ruleEval, genEval, cacheManager)

	common.LogInfo("Services initialized",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("evaluator", cfg.Scan.Evaluator),
		zap.String("model", cfg.OpenRouter.Model),
	)

	// 健康檢查路由
	healthH := health.NewHandler(cfg, mongo)
	router.GET("/health", healthH.Health)
	router.GET("/ready", healthH.Ready)
	router.GET("/live", healthH.Live)

	// API 路由組
	api := router.Group("/api/v1")
	{
		authH := authHandler.NewHandler(authSvc)
		userH := userHandler.NewHandler(userSvc)
		ingredientH := ingredientHandler.NewHandler(ingredientSvc)
		scanH := scanHandler.NewHandler(scanSvc)

		// 認證
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authH.Register)
			authGroup.POST("/login", authH.Login)
		}

		// 使用者偏好設定
		userGroup := api.Group("/users", middleware.RequireAuth(authSvc))
		{
			userGroup.GET("/profile", userH.GetProfile)
			userGroup.PUT("/profile", userH.UpdateProfile)
		}

		// 參考食材維護
		ingredientGroup := api.Group("/ingredients", middleware.RequireAuth(authSvc))
		{
			ingredientGroup.POST("", ingredientH.Create)
			ingredientGroup.GET("", ingredientH.List)
		}

		// 掃描管線：限流與去重只掛在會觸發生成呼叫的提交端點
		scanGroup := api.Group("/scan", middleware.RequireAuth(authSvc))
		{
			submit := scanGroup.Group("")
			if cfg.RateLimit.Enabled {
				submit.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
			}
			submit.Use(middleware.Deduplication(cfg))
			submit.POST("", scanH.Scan)

			scanGroup.GET("/history", scanH.History)
			scanGroup.GET("/saved", scanH.Saved)
			scanGroup.PATCH("/:id/save", scanH.ToggleSave)
			scanGroup.DELETE("/:id", scanH.Delete)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
