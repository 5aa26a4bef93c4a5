package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/iudanet/caseflow/internal/models"
	"github.com/iudanet/caseflow/pkg/api"
)

func (c *Cli) runCases(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cases", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	status := fs.String("status", "", "filter by status (Assigned, In Progress, Completed, Pending)")
	vtype := fs.String("type", "", "filter by verification type")
	search := fs.String("search", "", "substring search over title, customer and address")
	sortBy := fs.String("sort", "updatedAt", "sort field: createdAt, updatedAt, priority")
	order := fs.String("order", "desc", "sort order: asc, desc")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 20, "page size")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid cases arguments: %w", err)
	}

	list, err := c.engine.GetCases(ctx, api.CaseListParams{
		Status:           *status,
		VerificationType: *vtype,
		Search:           *search,
		SortBy:           *sortBy,
		SortOrder:        *order,
		Page:             *page,
		Limit:            *limit,
		AssignedToMe:     true,
	})
	if err != nil {
		return fmt.Errorf("failed to list cases: %w", err)
	}

	if len(list.Cases) == 0 {
		c.io.Println("No cases match the given filters.")
		return nil
	}

	c.io.Printf("=== Cases (page %d of %d, %d total) ===\n",
		list.Pagination.Page, list.Pagination.TotalPages, list.Pagination.Total)
	c.io.Println()

	for i := range list.Cases {
		printCaseLine(c, &list.Cases[i])
	}

	return nil
}

func printCaseLine(c *Cli, cs *models.Case) {
	marker := " "
	if cs.SubmissionStatus == models.SubmissionFailed {
		marker = "✗"
	} else if cs.IsSaved {
		marker = "●"
	}

	priority := "-"
	if cs.Priority != nil {
		priority = fmt.Sprintf("P%d", *cs.Priority)
	}

	c.io.Printf("%s [%s] #%d %s (%s, %s)\n",
		marker, cs.Status, cs.CaseID, cs.Title, cs.VerificationType, priority)
	if cs.VisitAddress != "" {
		c.io.Printf("    %s\n", cs.VisitAddress)
	}
	c.io.Printf("    id: %s\n", cs.ID)
}
