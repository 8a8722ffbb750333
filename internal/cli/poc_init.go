package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/AdzeKit/AdzeKit/internal/poc"
	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// PocInitCmd returns the poc-init command.
func PocInitCmd(cfg shed.Settings, clock shed.Clock) *Command {
	fs := flag.NewFlagSet("poc-init", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "poc-init <slug>",
		Short: "Generate a POC design document in stock/",
		Long: "Generate the POC design template for a project, pre-filled from\n" +
			"its project file.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return errSlugRequired
			}

			path, genErr := poc.Generate(cfg, args[0], clock.Today())
			if genErr != nil {
				return genErr
			}

			o.Println("Generated POC template:", path)

			return nil
		},
	}
}
