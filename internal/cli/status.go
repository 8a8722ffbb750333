package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/AdzeKit/AdzeKit/internal/loop"
	"github.com/AdzeKit/AdzeKit/internal/shed"
	"github.com/AdzeKit/AdzeKit/internal/wip"
)

// StatusCmd returns the status command.
func StatusCmd(cfg shed.Settings, clock shed.Clock) *Command {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "status",
		Short: "Show shed health summary",
		Long:  "Show WIP counts, loop totals, and per-project git ages for the shed.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			return execStatus(ctx, o, cfg, clock)
		},
	}
}

func execStatus(ctx context.Context, o *IO, cfg shed.Settings, clock shed.Clock) error {
	today := clock.Today()

	wipStatus, wipErr := wip.CurrentStatus(cfg, today)
	if wipErr != nil {
		return wipErr
	}

	mgr := loop.NewManager(shed.NewDirStore(cfg.Root), clock)

	stats, statsErr := mgr.Stats(cfg.LoopSLAHours)
	if statsErr != nil {
		return statsErr
	}

	o.Println("Shed:", cfg.Root)
	o.Printf("Active projects: %d/%d\n", wipStatus.ActiveProjects, wipStatus.MaxActiveProjects)
	o.Printf("Daily tasks: %d/%d\n", wipStatus.DailyTasks, wipStatus.MaxDailyTasks)
	o.Printf("Open loops: %d\n", stats.Open)
	o.Printf("Overdue loops: %d\n", stats.Overdue)
	o.Printf("Approaching SLA: %d\n", stats.ApproachingSLA)

	ages := shed.ProjectAges(ctx, cfg, today)
	if len(ages) == 0 {
		return nil
	}

	o.Println("\nProject ages:")

	for _, a := range ages {
		name := strings.TrimSuffix(filepath.Base(a.Path), ".md")

		modified := "untracked"
		if n, ok := a.StaleDays(today); ok {
			modified = fmt.Sprintf("%dd ago", n)
		}

		line := fmt.Sprintf("  %s: modified %s", name, modified)

		if n, ok := a.AgeDays(today); ok {
			line += fmt.Sprintf(", %dd old", n)
		}

		o.Println(line)
	}

	return nil
}
