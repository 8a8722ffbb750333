package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/AdzeKit/AdzeKit/internal/loop"
	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// SweepCmd returns the sweep command.
func SweepCmd(cfg shed.Settings, clock shed.Clock) *Command {
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "sweep",
		Short: "Move [x] loops from open.md to closed.md",
		Long: "Move every checkbox-closed loop out of open.md into the cumulative\n" +
			"closed.md and log the sweep in today's daily note.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execSweep(o, cfg, clock)
		},
	}
}

func execSweep(o *IO, cfg shed.Settings, clock shed.Clock) error {
	mgr := loop.NewManager(shed.NewDirStore(cfg.Root), clock)

	swept, sweepErr := mgr.SweepClosed()
	if sweepErr != nil {
		return sweepErr
	}

	if len(swept) == 0 {
		o.Println("Nothing to sweep -- no closed loops in open.md.")

		return nil
	}

	logErr := shed.AppendSweepLog(cfg, len(swept), clock.Today())
	if logErr != nil {
		return logErr
	}

	for _, l := range swept {
		o.Println("  swept:", l.Title)
	}

	o.Printf("\n%d loop(s) moved to closed.md\n", len(swept))

	return nil
}
