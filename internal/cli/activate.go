package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/AdzeKit/AdzeKit/internal/shed"
	"github.com/AdzeKit/AdzeKit/internal/wip"
)

// ActivateCmd returns the activate command.
func ActivateCmd(cfg shed.Settings) *Command {
	fs := flag.NewFlagSet("activate", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "activate <slug>",
		Short: "Move a project from backlog/ to active",
		Long: "Move a backlog project into the projects root. Refused when the\n" +
			"active roster is already at the WIP limit.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errSlugRequired
			}

			path, moveErr := wip.Activate(cfg, args[0])
			if moveErr != nil {
				return moveErr
			}

			o.Println("Activated:", path)

			return nil
		},
	}
}
