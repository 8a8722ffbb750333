package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/AdzeKit/AdzeKit/internal/loop"
	"github.com/AdzeKit/AdzeKit/internal/note"
	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// AddLoopCmd returns the add-loop command.
func AddLoopCmd(cfg shed.Settings, clock shed.Clock) *Command {
	fs := flag.NewFlagSet("add-loop", flag.ContinueOnError)
	fs.String("size", "M", "T-shirt size (S|M|L)")
	fs.String("who", "", "Person or system the loop waits on")
	fs.String("what", "", "What is expected back")
	fs.String("due", "", "Due date (YYYY-MM-DD)")
	fs.String("next", "", "Next action if the loop stalls")
	fs.String("project", "", "Project slug the loop belongs to")

	return &Command{
		Flags: fs,
		Usage: "add-loop <title> [flags]",
		Short: "Add a loop to open.md",
		Long:  "Append an open loop to loops/open.md, stamped with today's date.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execAddLoop(o, cfg, clock, fs, args)
		},
	}
}

var errTitleRequired = errors.New("title required")

func execAddLoop(o *IO, cfg shed.Settings, clock shed.Clock, fs *flag.FlagSet, args []string) error {
	if len(args) == 0 {
		return errTitleRequired
	}

	title := args[0]

	size, _ := fs.GetString("size")
	who, _ := fs.GetString("who")
	what, _ := fs.GetString("what")
	next, _ := fs.GetString("next")
	project, _ := fs.GetString("project")

	l := note.Loop{
		Date:       clock.Today(),
		Title:      title,
		Who:        who,
		What:       what,
		Status:     note.StatusOpen,
		NextAction: next,
		Project:    project,
		Size:       size,
	}

	if fs.Changed("due") {
		raw, _ := fs.GetString("due")

		due, parseErr := time.Parse(note.DateLayout, raw)
		if parseErr != nil {
			return fmt.Errorf("invalid --due %q: expected YYYY-MM-DD", raw)
		}

		l.Due = due
	}

	mgr := loop.NewManager(shed.NewDirStore(cfg.Root), clock)

	addErr := mgr.Add(l)
	if addErr != nil {
		return addErr
	}

	o.Println("Added loop:", title)

	return nil
}
