package logging

import (
	"context"
	"log/slog"
	"time"
)

// LogPruner deletes system logs older than a cutoff.
type LogPruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// StartCleanup prunes system logs older than retentionDays once a day until
// ctx is cancelled.
func StartCleanup(ctx context.Context, pruner LogPruner, retentionDays int) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				pruneOnce(ctx, pruner, retentionDays)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func pruneOnce(ctx context.Context, pruner LogPruner, retentionDays int) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	deleted, err := pruner.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		slog.Warn("log cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("log cleanup completed", "deleted", deleted)
	}
}
