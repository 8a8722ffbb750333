package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/AdzeKit/AdzeKit/internal/loop"
	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// CloseLoopCmd returns the close-loop command.
func CloseLoopCmd(cfg shed.Settings, clock shed.Clock) *Command {
	fs := flag.NewFlagSet("close-loop", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "close-loop <title>",
		Short: "Close a loop by its exact title",
		Long: "Move the loop whose title matches exactly out of open.md into\n" +
			"this week's closed partition.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execCloseLoop(o, cfg, clock, args)
		},
	}
}

func execCloseLoop(o *IO, cfg shed.Settings, clock shed.Clock, args []string) error {
	if len(args) == 0 {
		return errTitleRequired
	}

	title := args[0]

	mgr := loop.NewManager(shed.NewDirStore(cfg.Root), clock)

	found, closeErr := mgr.Close(title)
	if closeErr != nil {
		return closeErr
	}

	if !found {
		o.WarnLLM(
			fmt.Sprintf("no open loop titled %q", title),
			"run 'adze loops' to see open titles",
		)

		return nil
	}

	o.Println("Closed loop:", title)

	return nil
}
