package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/caseflow/internal/client/auth"
	"github.com/iudanet/caseflow/internal/client/cases"
	"github.com/iudanet/caseflow/internal/client/iocli"
	casesync "github.com/iudanet/caseflow/internal/client/sync"
)

// Cli связывает команды агента с сервисами клиента
type Cli struct {
	authService auth.Service
	engine      casesync.Service
	controller  cases.Controller
	io          iocli.IO
}

func New(authService auth.Service, engine casesync.Service, controller cases.Controller, io iocli.IO) *Cli {
	return &Cli{
		authService: authService,
		engine:      engine,
		controller:  controller,
		io:          io,
	}
}

// Run выполняет одну команду агента
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "cases":
		return c.runCases(ctx, args)
	case "case":
		return c.runCase(ctx, args)
	case "update":
		return c.runUpdate(ctx, args)
	case "submit":
		return c.runSubmit(ctx, args)
	case "sync":
		return c.runSync(ctx)
	case "watch":
		return c.runWatch(ctx)
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (c *Cli) PrintUsage() {
	c.io.Println("CaseFlow Field Agent Client")
	c.io.Println()
	c.io.Println("Usage:")
	c.io.Println("  caseflow [OPTIONS] COMMAND")
	c.io.Println()
	c.io.Println("Options:")
	c.io.Println("  --version             Show version information")
	c.io.Println("  --server URL          Server URL (default: http://localhost:8080)")
	c.io.Println("  --db PATH             Path to local database (default: caseflow-agent.db)")
	c.io.Println()
	c.io.Println("Commands:")
	c.io.Println("  login                 Login to server")
	c.io.Println("  logout                Logout and drop the local session")
	c.io.Println("  status                Show session and pending sync status")
	c.io.Println("  cases [filters]       List assigned cases")
	c.io.Println("  case <id>             Show full case details")
	c.io.Println("  update <id> [fields]  Change case status, priority, outcome or notes")
	c.io.Println("  submit <id>           Submit a completed case (--again to retry a failed one)")
	c.io.Println("  sync                  Replay queued changes and pull server updates")
	c.io.Println("  watch                 Follow realtime case notifications")
	c.io.Println()
	c.io.Println("Examples:")
	c.io.Println("  caseflow login")
	c.io.Println("  caseflow cases --status 'In Progress' --sort priority --order desc")
	c.io.Println("  caseflow cases --search 'industrial estate' --page 2 --limit 10")
	c.io.Println("  caseflow update CASE-42 --status in-progress")
	c.io.Println("  caseflow update CASE-42 --outcome Positive --notes 'met the applicant on site'")
	c.io.Println("  caseflow submit CASE-42")
	c.io.Println("  caseflow submit CASE-42 --again")
	c.io.Println("  caseflow --server https://crm.example.com sync")
}
