package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-management-api/internal/api"
	"github.com/sanosuguru/go-event-management-api/internal/api/handler"
	"github.com/sanosuguru/go-event-management-api/internal/api/middleware"
	"github.com/sanosuguru/go-event-management-api/internal/application"
	"github.com/sanosuguru/go-event-management-api/internal/config"
	"github.com/sanosuguru/go-event-management-api/internal/infrastructure/postgres"
	infraredis "github.com/sanosuguru/go-event-management-api/internal/infrastructure/redis"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/auth"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/logger"
	"github.com/sanosuguru/go-event-management-api/internal/pkg/metrics"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Env)
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("設定エラー", zap.Error(err))
	}
	m := metrics.Init()

	// データベース
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続エラー", zap.Error(err))
	}
	defer db.Close()

	version, err := postgres.RunMigrations(db, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("マイグレーションエラー", zap.Error(err))
	}
	logger.Info("マイグレーション完了", zap.Uint("schema_version", version))

	// Redis
	redisClient := infraredis.NewClient(&cfg.Redis)
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = infraredis.Ping(pingCtx, redisClient)
	cancel()
	if err != nil {
		logger.Fatal("Redis接続エラー", zap.Error(err))
	}

	denylist := infraredis.NewTokenDenylist(redisClient)
	locker := infraredis.NewBookingLocker(infraredis.NewLockManager(redisClient), m)

	// リポジトリ
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	txManager := postgres.NewTxManager(db)

	// サービス
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.JWTIssuer)
	authService := application.NewAuthService(userRepo, auth.NewPasswordHasher(0), tokens, denylist, m)
	userService := application.NewUserService(userRepo, roleRepo)
	eventService := application.NewEventService(eventRepo, userRepo)
	bookingService := application.NewBookingService(txManager, bookingRepo, eventRepo, userRepo, locker, m)

	if cfg.Admin.Enabled() {
		admin, err := authService.EnsureAdmin(context.Background(), application.AdminSeedInput{
			Name:     cfg.Admin.Name,
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		})
		if err != nil {
			logger.Fatal("管理者ユーザーの作成エラー", zap.Error(err))
		}
		logger.Info("管理者ユーザーを確認しました", zap.String("user_id", admin.ID))
	}

	// Echo インスタンス作成
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Validator = api.NewValidator()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.SetupMiddleware(e, cfg.Server.RequestTimeout)
	e.Use(middleware.PrometheusMiddleware(m))

	router := &handler.Router{
		Auth:    handler.NewAuthHandler(authService),
		Users:   handler.NewUserHandler(userService),
		Events:  handler.NewEventHandler(eventService),
		Booking: handler.NewBookingHandler(bookingService),
		Health: handler.NewHealthHandler(
			handler.HealthCheck{Name: "database", Check: func(ctx context.Context) error { return postgres.Ping(ctx, db) }},
			handler.HealthCheck{Name: "redis", Check: func(ctx context.Context) error { return infraredis.Ping(ctx, redisClient) }},
		),
		Verifier:       tokens,
		Revocations:    denylist,
		UserLoader:     userService,
		RateLimitRPS:   cfg.Auth.RateLimitRPS,
		RateLimitBurst: cfg.Auth.RateLimitBurst,
		Metrics:        cfg.Metrics,
	}
	router.Register(e)

	// Graceful shutdown
	go func() {
		logger.Info("サーバーを起動します", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("サーバーシャットダウンエラー", zap.Error(err))
		return
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
