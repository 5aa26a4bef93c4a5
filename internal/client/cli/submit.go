package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
)

func (c *Cli) runSubmit(ctx context.Context, args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return fmt.Errorf("usage: caseflow submit <id> [--again]")
	}
	id := args[0]

	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	again := fs.Bool("again", false, "retry a previously failed submission")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("invalid submit arguments: %w", err)
	}

	c.io.Println("Submitting case...")

	var err error
	if *again {
		err = c.controller.Resubmit(ctx, id)
	} else {
		err = c.controller.Submit(ctx, id)
	}
	if err != nil {
		return err
	}

	c.io.Println("✓ Case submitted and marked completed.")
	return nil
}
