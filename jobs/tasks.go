package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLowStockScan triggers the nightly low-stock inventory scan.
	TaskLowStockScan = "inventory:low_stock_scan"
	// TaskStatsWarmup pre-populates the redis stats cache.
	TaskStatsWarmup = "stats:warmup"
)

// LowStockScanPayload carries scheduling metadata for a scan run.
type LowStockScanPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewLowStockScanTask constructs an Asynq task for the low-stock scan.
func NewLowStockScanTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(LowStockScanPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLowStockScan, body, asynq.Queue(QueueDefault)), nil
}

// StatsWarmupPayload selects which stats to warm; empty means all.
type StatsWarmupPayload struct {
	Targets []string `json:"targets,omitempty"`
}

// NewStatsWarmupTask constructs an Asynq task for the stats cache warmup.
func NewStatsWarmupTask(payload StatsWarmupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStatsWarmup, body, asynq.Queue(QueueDefault)), nil
}
