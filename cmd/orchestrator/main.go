// cmd/orchestrator/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"outfit-orchestrator/internal/api/http"
	"outfit-orchestrator/internal/common/config"
	"outfit-orchestrator/internal/common/database"
	"outfit-orchestrator/internal/common/logger"
	"outfit-orchestrator/internal/common/observability"
	"outfit-orchestrator/internal/dashboard"
	"outfit-orchestrator/internal/events"
	"outfit-orchestrator/internal/generation"
	"outfit-orchestrator/internal/outfit"
	"outfit-orchestrator/internal/scheduler"
	"outfit-orchestrator/internal/wardrobe"
	"outfit-orchestrator/internal/wear"
	"outfit-orchestrator/internal/weather"
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting outfit orchestrator...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	if cfg.Logging.Level != "" {
		zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
		log = logger.NewZapAdapter(zapLog)
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Collaborator clients ---
	weatherClient := weather.NewClient(
		cfg.Weather.BaseURL,
		cfg.Weather.APIKey,
		config.GetDuration(cfg.Weather.Timeout),
	)
	weatherService := weather.NewService(
		weatherClient,
		config.GetDuration(cfg.Weather.StaleAfter),
		log,
	)

	wardrobeClient := wardrobe.NewClient(
		cfg.Wardrobe.BaseURL,
		config.GetDuration(cfg.Wardrobe.Timeout),
	)

	generationClient := generation.NewClient(
		cfg.Generation.BaseURL,
		cfg.Generation.APIKey,
		config.GetDuration(cfg.Generation.Timeout),
	)

	tracker := wear.NewHTTPTracker(
		cfg.WearTracking.BaseURL,
		config.GetDuration(cfg.WearTracking.Timeout),
	)

	// --- Orchestration core ---
	cache := outfit.NewDailyCache(
		outfit.NewRedisStore(redis),
		config.GetDuration(cfg.Cache.EntryTTL),
		log.WithFields(map[string]interface{}{"component": "cache"}),
	)

	orch := outfit.NewOrchestrator(
		weatherService,
		wardrobeClient,
		generationClient,
		cache,
		cfg.Weather.DefaultLocation,
		config.GetDuration(cfg.Generation.Timeout),
		log.WithFields(map[string]interface{}{"component": "orchestrator"}),
	)

	bus := events.NewBus(
		cfg.Events.SubscriberBuffer,
		log.WithFields(map[string]interface{}{"component": "events"}),
	)

	synchronizer := wear.NewSynchronizer(
		cache,
		tracker,
		bus,
		config.GetDuration(cfg.Events.RebroadcastDelay),
		log.WithFields(map[string]interface{}{"component": "wear"}),
	)

	dashboardSources := dashboard.NewHTTPSources(
		cfg.Dashboard.BaseURL,
		config.GetDuration(cfg.Dashboard.SourceTimeout),
	)
	aggregator := dashboard.NewAggregator(
		dashboardSources,
		dashboardSources,
		dashboardSources,
		dashboard.NewCacheSuggestion(orch),
		dashboardSources,
		bus,
		config.GetDuration(cfg.Dashboard.HistoryMemoTTL),
		log.WithFields(map[string]interface{}{"component": "dashboard"}),
	)
	defer aggregator.Close()

	// --- Morning refresh scheduler ---
	if cfg.Scheduler.Enabled {
		sched := scheduler.New(
			orch,
			cfg.Scheduler.RefreshTime,
			cfg.Scheduler.WarmUsers,
			log.WithFields(map[string]interface{}{"component": "scheduler"}),
		)
		if err := sched.Start(); err != nil {
			zapLog.Fatal("scheduler start failed", zap.Error(err))
		}
		defer sched.Stop()
	}

	// --- HTTP server ---
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	})
	http.NewHandler(orch, synchronizer, aggregator, redis, obs, log).Register(app)

	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			zapLog.Fatal("server stopped", zap.Error(err))
		}
	}()
	zapLog.Info("HTTP server listening", zap.String("port", cfg.Server.Port))

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zapLog.Error("server shutdown failed", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}
