// cmd/leadgen-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"leadgen-backend/internal/common/config"
	"leadgen-backend/internal/common/database"
	"leadgen-backend/internal/common/logger"
	"leadgen-backend/internal/common/observability"
	"leadgen-backend/internal/creditscore"
	"leadgen-backend/internal/emi"
	"leadgen-backend/internal/lead"
	"leadgen-backend/internal/notify"
	"leadgen-backend/internal/offers"
	"leadgen-backend/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting leadgen server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Lead store ---
	var leadStore lead.Store
	switch cfg.Storage.Leads {
	case "redis":
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("Redis connected successfully")
		leadStore = lead.NewRedisStore(redisClient.GetClient())
	default:
		leadStore = lead.NewMemoryStore()
	}

	// --- Offer catalog ---
	var catalog offers.Catalog
	switch cfg.Storage.Offers {
	case "postgres":
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		pgCatalog := offers.NewPostgresCatalog(pg.DB)
		if err := pgCatalog.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("offer schema setup failed", zap.Error(err))
		}
		catalog = pgCatalog
	default:
		catalog = offers.NewMemoryCatalog()
	}

	if err := offers.Seed(ctx, catalog); err != nil {
		zapLog.Fatal("offer seed failed", zap.Error(err))
	}
	if cfg.Offers.SeedFile != "" {
		if err := offers.LoadSeedFile(ctx, catalog, cfg.Offers.SeedFile); err != nil {
			zapLog.Fatal("offer seed file rejected", zap.Error(err))
		}
		zapLog.Info("Operator seed file loaded", zap.String("path", cfg.Offers.SeedFile))
	}

	// --- OTP delivery channel ---
	var sender notify.OTPSender
	switch cfg.SMS.Provider {
	case "sns":
		snsSender, err := notify.NewSNSSender(ctx, cfg.SMS.AWSRegion, cfg.SMS.SenderID)
		if err != nil {
			zapLog.Fatal("SNS client initialization failed", zap.Error(err))
		}
		sender = snsSender
		zapLog.Info("SNS SMS channel initialized", zap.String("region", cfg.SMS.AWSRegion))
	default:
		sender = notify.NewLogSender(log)
	}

	// --- Services ---
	leads := lead.NewService(leadStore, creditscore.NewMockBureau(), sender, lead.ServiceConfig{
		OTPTTL:            time.Duration(cfg.OTP.TTLSeconds) * time.Second,
		MaxVerifyAttempts: cfg.OTP.MaxVerifyAttempts,
		MaxResendsPerHour: cfg.OTP.MaxResendsPerHour,
		DevBypassCode:     cfg.OTP.DevBypassCode,
	}, log)
	emiSvc := emi.NewService(emi.NewMemoryStore(), log)

	srv := server.New(leads, catalog, emiSvc, notify.NewLogWhatsAppSharer(log), obs, log)
	app := srv.Router()

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		zapLog.Info("HTTP server listening", zap.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining connections...")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		zapLog.Error("Error during shutdown", zap.Error(err))
	}

	zapLog.Info("Leadgen server stopped gracefully")
}
