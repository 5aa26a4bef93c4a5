package cli

import (
	"context"
	"errors"
	"fmt"

	casesync "github.com/iudanet/caseflow/internal/client/sync"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	c.io.Println()

	// Сначала доигрываем очередь локальных изменений,
	// потом забираем изменения сервера
	dropped, err := c.engine.ReplayQueue(ctx)
	switch {
	case errors.Is(err, casesync.ErrOffline):
		return fmt.Errorf("no network connection: try again when back online")
	case err != nil:
		return fmt.Errorf("failed to replay queued changes: %w", err)
	}

	for _, d := range dropped {
		c.io.Errorf("⚠️  dropped %s for case %s after %d attempts: %s\n",
			d.Action, d.CaseID, d.Attempts, d.Reason)
	}

	result := c.engine.SyncCases(ctx)
	if !result.Success {
		if errors.Is(result.Err, casesync.ErrSyncInProgress) {
			c.io.Println("Sync already running, nothing to do.")
			return nil
		}
		return fmt.Errorf("sync failed: %w", result.Err)
	}

	c.io.Println("✓ Sync complete")
	c.io.Printf("New cases: %d\n", result.NewCases)
	c.io.Printf("Updated cases: %d\n", result.UpdatedCases)
	if len(dropped) > 0 {
		c.io.Printf("Dropped changes: %d (see warnings above)\n", len(dropped))
	}

	return nil
}
