package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/caseflow/internal/models"
)

func (c *Cli) runCase(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: caseflow case <id>")
	}
	id := args[0]

	cs, err := c.engine.GetCase(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load case %s: %w", id, err)
	}

	c.io.Printf("=== Case #%d: %s ===\n", cs.CaseID, cs.Title)
	c.io.Println()
	c.io.Printf("ID:           %s\n", cs.ID)
	c.io.Printf("Status:       %s\n", cs.Status)
	c.io.Printf("Type:         %s\n", cs.VerificationType)
	if cs.Priority != nil {
		c.io.Printf("Priority:     %d\n", *cs.Priority)
	}
	c.io.Printf("Customer:     %s\n", cs.Customer.Name)
	if cs.Customer.Contact != "" {
		c.io.Printf("Contact:      %s\n", cs.Customer.Contact)
	}
	if cs.ClientName != "" {
		c.io.Printf("Client:       %s\n", cs.ClientName)
	}
	if cs.VisitAddress != "" {
		c.io.Printf("Address:      %s\n", cs.VisitAddress)
	}
	if cs.Description != "" {
		c.io.Println()
		c.io.Println(cs.Description)
	}

	c.io.Println()
	if cs.VerificationOutcome != "" {
		c.io.Printf("Outcome:      %s\n", cs.VerificationOutcome)
	}
	if cs.Notes != "" {
		c.io.Printf("Notes:        %s\n", cs.Notes)
	}
	if cs.IsSaved {
		c.io.Printf("Draft saved:  %s\n", cs.SavedAt)
	}

	switch cs.SubmissionStatus {
	case models.SubmissionSubmitting:
		c.io.Println("Submission:   in progress")
	case models.SubmissionSuccess:
		c.io.Printf("Submission:   delivered (completed %s)\n", cs.CompletedAt)
	case models.SubmissionFailed:
		c.io.Printf("Submission:   ✗ failed: %s\n", cs.SubmissionError)
		c.io.Println("Run 'caseflow submit --again' to retry.")
	}

	return nil
}
