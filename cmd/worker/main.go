package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/farmgate-erp/farmgate-erp/internal/app"
	"github.com/farmgate-erp/farmgate-erp/internal/finance"
	"github.com/farmgate-erp/farmgate-erp/internal/inventory"
	"github.com/farmgate-erp/farmgate-erp/internal/partner"
	"github.com/farmgate-erp/farmgate-erp/internal/payroll"
	"github.com/farmgate-erp/farmgate-erp/internal/platform/cache"
	"github.com/farmgate-erp/farmgate-erp/internal/platform/db"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
	"github.com/farmgate-erp/farmgate-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	var statsCache *shared.StatsCache
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, stats cache disabled", slog.Any("error", err))
	} else {
		statsCache = shared.NewStatsCache(redisClient, cfg.StatsCacheTTL)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	auditLogger := shared.NewAuditLogger(pool)

	partnerService := partner.NewService(partner.NewRepository(pool), auditLogger, statsCache)
	inventoryService := inventory.NewService(inventory.NewRepository(pool), auditLogger, statsCache)
	financeService := finance.NewService(finance.NewRepository(pool), auditLogger, statsCache)
	payrollService := payroll.NewService(payroll.NewRepository(pool), auditLogger, statsCache)

	lowStockJob := jobs.NewLowStockScanJob(inventoryService, logger, nil)
	warmupJob := jobs.NewStatsWarmupJob(partnerService, inventoryService, financeService, payrollService, logger, nil)

	lowStockTask, err := jobs.NewLowStockScanTask(time.Now())
	if err != nil {
		logger.Error("build low stock task", slog.Any("error", err))
		os.Exit(1)
	}
	warmupTask, err := jobs.NewStatsWarmupTask(jobs.StatsWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLowStockScan, Handler: lowStockJob.Handle},
			{Type: jobs.TaskStatsWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.LowStockCron, Task: lowStockTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: cfg.StatsWarmupCron, Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
