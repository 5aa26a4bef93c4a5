package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/iudanet/caseflow/internal/models"
)

func (c *Cli) runUpdate(ctx context.Context, args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("usage: caseflow update <id> [--status S] [--priority N] [--outcome O --notes N]")
	}
	id := args[0]

	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	status := fs.String("status", "", "new status: assigned, in-progress, completed, pending")
	priority := fs.Int("priority", 0, "new priority: 1 (low) .. 3 (high)")
	outcome := fs.String("outcome", "", "verification outcome")
	notes := fs.String("notes", "", "agent notes, saved together with the outcome")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("invalid update arguments: %w", err)
	}

	if *status == "" && *priority == 0 && *outcome == "" {
		return fmt.Errorf("nothing to update: pass --status, --priority or --outcome")
	}

	if *status != "" {
		st, err := parseStatus(*status)
		if err != nil {
			return err
		}
		if err := c.controller.SetStatus(ctx, id, st); err != nil {
			return err
		}
		c.io.Printf("✓ Status set to %s\n", st)
	}

	if *priority != 0 {
		if err := c.controller.SetPriority(ctx, id, *priority); err != nil {
			return err
		}
		c.io.Printf("✓ Priority set to %d\n", *priority)
	}

	if *outcome != "" {
		if err := c.controller.SaveOutcome(ctx, id, *outcome, *notes); err != nil {
			return err
		}
		c.io.Printf("✓ Outcome saved: %s\n", *outcome)
	}

	return nil
}

func parseStatus(s string) (models.CaseStatus, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "-", " ")) {
	case "assigned":
		return models.StatusAssigned, nil
	case "in progress":
		return models.StatusInProgress, nil
	case "completed":
		return models.StatusCompleted, nil
	case "pending":
		return models.StatusPending, nil
	default:
		return "", fmt.Errorf("unknown status %q: use assigned, in-progress, completed or pending", s)
	}
}
