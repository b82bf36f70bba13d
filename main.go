package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"worklog-panel/cmd"
	"worklog-panel/internal/data/repository"
	"worklog-panel/internal/usecase"
	"worklog-panel/internal/wire"
	"worklog-panel/pkg/database"
	"worklog-panel/pkg/metrics"
	"worklog-panel/pkg/ratelimit"
	"worklog-panel/pkg/sms"
	"worklog-panel/pkg/storage"
	"worklog-panel/pkg/token"
	"worklog-panel/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("Database connected successfully")

	deps := usecase.Deps{
		DB:      db,
		Repo:    repository.NewRepository(db, logger),
		Tokens:  token.NewManager(config.JWT.Secret),
		SMS:     sms.NewNetgsmClient(config.SMS, logger),
		Metrics: metrics.New(config.App.Name),
	}

	if config.Redis.Enabled() && config.OTP.MaxAttempts > 0 {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("Redis unreachable, OTP attempts are checked once it recovers", zap.Error(err))
		}
		cancel()

		deps.Limiter = ratelimit.NewOTPLimiter(rdb,
			config.OTP.MaxAttempts,
			time.Duration(config.OTP.LockoutMinutes)*time.Minute)
		logger.Info("OTP attempt limiter enabled", zap.String("redis", config.Redis.Addr))
	} else {
		logger.Warn("OTP attempt limiter disabled", zap.Bool("redis_configured", config.Redis.Enabled()))
	}

	if config.Storage.Enabled() {
		images, err := storage.NewMinioStorage(ctx, config.Storage, logger)
		if err != nil {
			logger.Fatal("Failed to init image storage", zap.Error(err))
		}
		deps.Images = images
	} else {
		logger.Warn("STORAGE_ENDPOINT not set, image upload disabled")
	}

	app := wire.Wiring(deps, config, logger)

	go app.Service.Maintenance.Run(ctx, config.App.CleanupInterval)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
		return
	}
	logger.Info("Server stopped")
}
