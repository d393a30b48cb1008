package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartSweeper prunes expired sessions from store every interval until ctx
// is cancelled.
func StartSweeper(
	ctx context.Context,
	store Store,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := store.Prune(ctx)
				if err != nil {
					log.Error("failed to prune expired sessions", zap.Error(err))
					continue
				}
				if removed > 0 {
					log.Info("pruned expired sessions", zap.Int64("removed", removed))
				}
			}
		}
	}()
}
