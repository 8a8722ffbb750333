package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	flag "github.com/spf13/pflag"

	"github.com/AdzeKit/AdzeKit/internal/loop"
	"github.com/AdzeKit/AdzeKit/internal/note"
	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// LoopsCmd returns the loops command.
func LoopsCmd(cfg shed.Settings, clock shed.Clock) *Command {
	fs := flag.NewFlagSet("loops", flag.ContinueOnError)
	fs.Bool("overdue", false, "Show only loops past their due date")
	fs.Bool("sla", false, "Show only loops approaching the SLA")

	return &Command{
		Flags: fs,
		Usage: "loops [flags]",
		Short: "List open loops",
		Long:  "List the loops in loops/open.md in file order, one aligned line each.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execLoops(o, cfg, clock, fs)
		},
	}
}

var errConflictingFilters = errors.New("--overdue and --sla cannot be used together")

func execLoops(o *IO, cfg shed.Settings, clock shed.Clock, fs *flag.FlagSet) error {
	overdue, _ := fs.GetBool("overdue")
	sla, _ := fs.GetBool("sla")

	if overdue && sla {
		return errConflictingFilters
	}

	mgr := loop.NewManager(shed.NewDirStore(cfg.Root), clock)

	var (
		loops   []note.Loop
		listErr error
	)

	empty := "No open loops."

	switch {
	case overdue:
		loops, listErr = mgr.Overdue()
		empty = "No overdue loops."
	case sla:
		loops, listErr = mgr.ApproachingSLA(cfg.LoopSLAHours)
		empty = "No loops approaching SLA."
	default:
		loops, listErr = mgr.Open()
	}

	if listErr != nil {
		return listErr
	}

	if len(loops) == 0 {
		o.Println(empty)

		return nil
	}

	for _, line := range formatLoopLines(loops) {
		o.Println(line)
	}

	return nil
}

// formatLoopLines renders one line per loop. The title column is padded
// by display width, not byte length, so wide runes keep the annotations
// aligned.
func formatLoopLines(loops []note.Loop) []string {
	width := 0

	for _, l := range loops {
		if w := runewidth.StringWidth(l.Title); w > width {
			width = w
		}
	}

	lines := make([]string, 0, len(loops))

	for _, l := range loops {
		box := "[ ]"
		if l.Closed() {
			box = "[x]"
		}

		pad := strings.Repeat(" ", width-runewidth.StringWidth(l.Title))
		line := fmt.Sprintf("  %s %s  %s%s", box, l.Date.Format(note.DateLayout), l.Title, pad)

		var annotations []string

		if l.Size != "" {
			annotations = append(annotations, "("+l.Size+")")
		}

		if !l.Due.IsZero() {
			annotations = append(annotations, "due "+l.Due.Format(note.DateLayout))
		}

		if l.Who != "" {
			annotations = append(annotations, "who "+l.Who)
		}

		if len(annotations) > 0 {
			line += "  " + strings.Join(annotations, "  ")
		}

		lines = append(lines, strings.TrimRight(line, " "))
	}

	return lines
}
