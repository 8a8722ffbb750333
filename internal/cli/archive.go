package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/AdzeKit/AdzeKit/internal/shed"
	"github.com/AdzeKit/AdzeKit/internal/wip"
)

// ArchiveCmd returns the archive command.
func ArchiveCmd(cfg shed.Settings) *Command {
	fs := flag.NewFlagSet("archive", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "archive <slug>",
		Short: "Archive an active project",
		Long:  "Move an active project from the projects root into archive/.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errSlugRequired
			}

			path, moveErr := wip.Archive(cfg, args[0])
			if moveErr != nil {
				return moveErr
			}

			o.Println("Archived:", path)

			return nil
		},
	}
}
