package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// PayloadPruner removes archived import payloads older than a retention period.
type PayloadPruner interface {
	PruneOld(retention time.Duration) (int, error)
}

// CleanupArchivesTask prunes archived import payload files past retention.
type CleanupArchivesTask struct {
	RetentionDays int `json:"retention_days"`
}

// Config returns the queue configuration for archive cleanup tasks.
func (t CleanupArchivesTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_import_archives",
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

// CleanupArchivesProcessor creates a processor function for CleanupArchivesTask.
func CleanupArchivesProcessor(pruner PayloadPruner) backlite.QueueProcessor[CleanupArchivesTask] {
	return func(ctx context.Context, task CleanupArchivesTask) error {
		if pruner == nil {
			return fmt.Errorf("payload pruner not configured")
		}

		retentionDays := task.RetentionDays
		if retentionDays <= 0 {
			retentionDays = 90
		}
		retention := time.Duration(retentionDays) * 24 * time.Hour

		removed, err := pruner.PruneOld(retention)
		if err != nil {
			return fmt.Errorf("cleanup import archives: %w", err)
		}

		log.Printf("[TASK] Pruned %d archived import payloads older than %d days", removed, retentionDays)
		return nil
	}
}

// NewCleanupArchivesQueue creates a backlite queue for archive cleanup tasks.
func NewCleanupArchivesQueue(pruner PayloadPruner) backlite.Queue {
	return backlite.NewQueue(CleanupArchivesProcessor(pruner))
}
