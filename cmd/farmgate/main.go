package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farmgate-erp/farmgate-erp/internal/app"
	"github.com/farmgate-erp/farmgate-erp/internal/finance"
	"github.com/farmgate-erp/farmgate-erp/internal/inventory"
	"github.com/farmgate-erp/farmgate-erp/internal/masterdata"
	"github.com/farmgate-erp/farmgate-erp/internal/observability"
	"github.com/farmgate-erp/farmgate-erp/internal/partner"
	"github.com/farmgate-erp/farmgate-erp/internal/payroll"
	"github.com/farmgate-erp/farmgate-erp/internal/platform/cache"
	"github.com/farmgate-erp/farmgate-erp/internal/platform/db"
	"github.com/farmgate-erp/farmgate-erp/internal/schedule"
	"github.com/farmgate-erp/farmgate-erp/internal/season"
	"github.com/farmgate-erp/farmgate-erp/internal/shared"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	// Stats endpoints fall back to direct queries when redis is down.
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

	partnerRepo := partner.NewRepository(pool)
	partnerService := partner.NewService(partnerRepo, auditLogger, statsCache)
	partnerHandler := partner.NewHandler(logger, partnerService)

	inventoryRepo := inventory.NewRepository(pool)
	inventoryService := inventory.NewService(inventoryRepo, auditLogger, statsCache)
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	financeRepo := finance.NewRepository(pool)
	financeService := finance.NewService(financeRepo, auditLogger, statsCache)
	financeHandler := finance.NewHandler(logger, financeService)

	seasonRepo := season.NewRepository(pool)
	seasonService := season.NewService(seasonRepo, auditLogger)
	seasonHandler := season.NewHandler(logger, seasonService)

	payrollRepo := payroll.NewRepository(pool)
	payrollService := payroll.NewService(payrollRepo, auditLogger, statsCache)
	payrollHandler := payroll.NewHandler(logger, payrollService)

	scheduleRepo := schedule.NewRepository(pool)
	scheduleService := schedule.NewService(scheduleRepo, auditLogger)
	scheduleHandler := schedule.NewHandler(logger, scheduleService)

	masterdataRepo := masterdata.NewRepository(pool)
	masterdataService := masterdata.NewService(masterdataRepo, auditLogger)
	masterdataHandler := masterdata.NewHandler(logger, masterdataService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Config:     cfg,
		Metrics:    metrics,
		Partners:   partnerHandler,
		Inventory:  inventoryHandler,
		Finance:    financeHandler,
		Seasons:    seasonHandler,
		Payrolls:   payrollHandler,
		Schedules:  scheduleHandler,
		Masterdata: masterdataHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
