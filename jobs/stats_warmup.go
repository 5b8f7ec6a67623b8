package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/farmgate-erp/farmgate-erp/internal/finance"
	"github.com/farmgate-erp/farmgate-erp/internal/inventory"
	jobmetrics "github.com/farmgate-erp/farmgate-erp/internal/jobs"
	"github.com/farmgate-erp/farmgate-erp/internal/partner"
	"github.com/farmgate-erp/farmgate-erp/internal/payroll"
)

// StatsWarmupJob pre-populates the stats cache so dashboard reads never hit
// a cold miss after the nightly version bump.
type StatsWarmupJob struct {
	Partners  partner.Service
	Inventory inventory.Service
	Finance   finance.Service
	Payrolls  payroll.Service
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
}

// NewStatsWarmupJob wires dependencies for the warmup handler.
func NewStatsWarmupJob(partners partner.Service, inventorySvc inventory.Service, financeSvc finance.Service, payrolls payroll.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *StatsWarmupJob {
	return &StatsWarmupJob{
		Partners:  partners,
		Inventory: inventorySvc,
		Finance:   financeSvc,
		Payrolls:  payrolls,
		Logger:    logger,
		Metrics:   metrics,
	}
}

// Handle processes stats warmup tasks.
func (j *StatsWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("stats warmup: handler not configured")
	}
	var payload StatsWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskStatsWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	logger.Info("starting stats warmup")

	warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	targets := payload.Targets
	if len(targets) == 0 {
		targets = []string{"partners", "inventory", "transactions", "payrolls"}
	}

	warmed := 0
	for _, target := range targets {
		if err := j.warm(warmCtx, target); err != nil {
			resultErr = err
			logger.Error("warm stats", slog.String("target", target), slog.Any("error", err))
			return resultErr
		}
		warmed++
	}

	logger.Info("completed stats warmup", slog.Int("targets", warmed))
	return resultErr
}

func (j *StatsWarmupJob) warm(ctx context.Context, target string) error {
	switch target {
	case "partners":
		if j.Partners == nil {
			return nil
		}
		_, err := j.Partners.Stats(ctx)
		return err
	case "inventory":
		if j.Inventory == nil {
			return nil
		}
		_, err := j.Inventory.Stats(ctx)
		return err
	case "transactions":
		if j.Finance == nil {
			return nil
		}
		_, err := j.Finance.Stats(ctx)
		return err
	case "payrolls":
		if j.Payrolls == nil {
			return nil
		}
		_, err := j.Payrolls.Stats(ctx)
		return err
	}
	return nil
}

func (j *StatsWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskStatsWarmup))
	}
	return slog.Default().With(slog.String("job", TaskStatsWarmup))
}

func (j *StatsWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
