package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/farmgate-erp/farmgate-erp/internal/inventory"
	jobmetrics "github.com/farmgate-erp/farmgate-erp/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// LowStockScanJob walks the inventory and reports items at or below their
// minimum stock.
type LowStockScanJob struct {
	Inventory inventory.Service
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
}

// NewLowStockScanJob wires dependencies for the scan handler.
func NewLowStockScanJob(inventorySvc inventory.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *LowStockScanJob {
	return &LowStockScanJob{Inventory: inventorySvc, Logger: logger, Metrics: metrics}
}

// Handle processes low-stock scan tasks.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Inventory == nil {
		return errors.New("low stock scan: handler not configured")
	}
	var payload LowStockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskLowStockScan)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	logger.Info("starting low stock scan")

	scanCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	items, err := j.Inventory.ListLowStock(scanCtx)
	if err != nil {
		resultErr = err
		logger.Error("list low stock", slog.Any("error", err))
		return resultErr
	}

	for _, item := range items {
		logger.Warn("item below minimum stock",
			slog.String("item_code", item.Code),
			slog.String("item_name", item.Name),
			slog.Float64("quantity", item.Quantity),
			slog.Float64("min_quantity", item.MinQuantity))
	}
	j.metrics().SetLowStockItems(len(items))

	logger.Info("completed low stock scan", slog.Int("items", len(items)))
	return resultErr
}

func (j *LowStockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskLowStockScan))
	}
	return slog.Default().With(slog.String("job", TaskLowStockScan))
}

func (j *LowStockScanJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
