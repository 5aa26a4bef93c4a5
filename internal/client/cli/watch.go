package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/caseflow/internal/client/realtime"
)

// runWatch подключает realtime-канал и печатает уведомления до
// прерывания (Ctrl+C). Фоновая синхронизация продолжает работать.
func (c *Cli) runWatch(ctx context.Context) error {
	c.io.Println("=== Watching for case updates (Ctrl+C to stop) ===")
	c.io.Println()

	if err := c.controller.Start(ctx); err != nil {
		return fmt.Errorf("cannot start watching: %w", err)
	}
	defer c.controller.Stop()

	c.engine.StartPeriodic(ctx)

	c.controller.WatchConnection(ctx, func(s realtime.ConnectionState) {
		switch s.State {
		case realtime.StateConnected:
			c.io.Println("● connected")
		case realtime.StateReconnecting:
			c.io.Printf("○ reconnecting (attempt %d)\n", s.ReconnectAttempts)
		case realtime.StateDisconnected:
			if s.LastError != "" {
				c.io.Printf("○ disconnected: %s\n", s.LastError)
			} else {
				c.io.Println("○ disconnected")
			}
		case realtime.StateConnecting:
			c.io.Println("○ connecting...")
		}
	})

	return nil
}
