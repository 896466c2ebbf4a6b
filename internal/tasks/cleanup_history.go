package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// SearchHistoryPruner provides the ability to delete old search history.
type SearchHistoryPruner interface {
	DeleteOlderThan(retention time.Duration) (int64, error)
}

// CleanupSearchHistoryTask removes searches older than the configured retention period.
type CleanupSearchHistoryTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for search history cleanup tasks.
func (t CleanupSearchHistoryTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_search_history",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CleanupSearchHistoryProcessor creates a processor function for CleanupSearchHistoryTask.
func CleanupSearchHistoryProcessor(pruner SearchHistoryPruner) backlite.QueueProcessor[CleanupSearchHistoryTask] {
	return func(ctx context.Context, task CleanupSearchHistoryTask) error {
		if pruner == nil {
			return fmt.Errorf("search history pruner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = 90
		}
		retention := time.Duration(retentionDays) * 24 * time.Hour

		deleted, err := pruner.DeleteOlderThan(retention)
		if err != nil {
			return fmt.Errorf("cleanup search history: %w", err)
		}

		log.Printf("[TASK] Cleaned up %d searches older than %d days", deleted, retentionDays)
		return nil
	}
}

// NewCleanupSearchHistoryQueue creates a backlite queue for search history cleanup tasks.
func NewCleanupSearchHistoryQueue(pruner SearchHistoryPruner) backlite.Queue {
	return backlite.NewQueue(CleanupSearchHistoryProcessor(pruner))
}
