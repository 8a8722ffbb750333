package cli

import (
	"context"
	"slices"

	flag "github.com/spf13/pflag"

	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg shed.Settings) *Command {
	fs := flag.NewFlagSet("print-config", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "print-config",
		Short: "Show resolved configuration",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execPrintConfig(o, cfg)
		},
	}
}

func execPrintConfig(o *IO, cfg shed.Settings) error {
	o.Println("shed=" + cfg.Root)
	o.Printf("backbone_version=%d\n", cfg.Backbone)
	o.Printf("max_active_projects=%d\n", cfg.MaxActiveProjects)
	o.Printf("max_daily_tasks=%d\n", cfg.MaxDailyTasks)
	o.Printf("loop_sla_hours=%d\n", cfg.LoopSLAHours)
	o.Printf("stale_loop_days=%d\n", cfg.StaleLoopDays)

	keys := make([]string, 0, len(cfg.Extra))
	for k := range cfg.Extra {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, k := range keys {
		o.Printf("%s=%s\n", k, cfg.Extra[k])
	}

	o.Println()
	o.Println("# sources")

	if cfg.Sources.Global != "" {
		o.Println("global_config=" + cfg.Sources.Global)
	}

	if cfg.Sources.Marker != "" {
		o.Println("marker=" + cfg.Sources.Marker)
	}

	if cfg.Sources.Global == "" && cfg.Sources.Marker == "" {
		o.Println("(defaults only)")
	}

	return nil
}
