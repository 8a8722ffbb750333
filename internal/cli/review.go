package cli

import (
	"context"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/AdzeKit/AdzeKit/internal/note"
	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// ReviewCmd returns the review command.
func ReviewCmd(cfg shed.Settings, clock shed.Clock) *Command {
	fs := flag.NewFlagSet("review", flag.ContinueOnError)
	fs.String("date", "", "Review the week containing this date (YYYY-MM-DD)")

	return &Command{
		Flags: fs,
		Usage: "review [flags]",
		Short: "Create and show the weekly review",
		Long:  "Create the review file for the current week if needed, then print its path.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execReview(o, cfg, clock, fs)
		},
	}
}

func execReview(o *IO, cfg shed.Settings, clock shed.Clock, fs *flag.FlagSet) error {
	day := clock.Today()

	if fs.Changed("date") {
		raw, _ := fs.GetString("date")

		parsed, parseErr := time.Parse(note.DateLayout, raw)
		if parseErr != nil {
			return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", raw)
		}

		day = parsed
	}

	path, createErr := shed.CreateReview(cfg, day)
	if createErr != nil {
		return createErr
	}

	o.Println(path)

	return nil
}
