package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// TodayCmd returns the today command.
func TodayCmd(cfg shed.Settings, clock shed.Clock) *Command {
	fs := flag.NewFlagSet("today", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "today",
		Short: "Create and show today's daily note",
		Long:  "Create today's daily note if it does not exist yet, then print its path.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			path, createErr := shed.CreateDailyNote(cfg, clock.Today())
			if createErr != nil {
				return createErr
			}

			o.Println(path)

			return nil
		},
	}
}
