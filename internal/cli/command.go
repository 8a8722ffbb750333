package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command is one entry in the adze command table. Identity and help both
// derive from Usage; the FlagSet only holds the command's flags.
type Command struct {
	// Usage is what help prints after "adze": the command name followed
	// by its arguments, e.g. "init [path]" or "add-loop <title> [flags]".
	Usage string

	// Short is the one-line summary for the global command listing.
	Short string

	// Long replaces Short in per-command help when set.
	Long string

	// Flags holds the command's flags. The FlagSet's own name is unused.
	Flags *flag.FlagSet

	// Exec runs the command once flags are parsed.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// HelpLine renders the command's row in the global help listing.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-22s %s", c.Usage, c.Short)
}

// PrintHelp writes the full help for "adze <cmd> --help".
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: adze", c.Usage)
	o.Println()

	if c.Long != "" {
		o.Println(c.Long)
	} else {
		o.Println(c.Short)
	}

	if c.Flags == nil || !c.Flags.HasFlags() {
		return
	}

	o.Println()
	o.Println("Flags:")

	var buf strings.Builder

	c.Flags.SetOutput(&buf)
	c.Flags.PrintDefaults()
	o.Printf("%s", buf.String())
}

// Run parses args against the command's flags and executes it, printing
// errors itself so output ordering stays consistent. Returns the exit code.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // pflag's own messages are unwanted

	if parseErr := c.Flags.Parse(args); parseErr != nil {
		if errors.Is(parseErr, flag.ErrHelp) {
			c.PrintHelp(o)

			return 0
		}

		o.ErrPrintln("error:", parseErr)
		o.ErrPrintln()
		c.PrintHelp(o)

		return 1
	}

	if execErr := c.Exec(ctx, o, c.Flags.Args()); execErr != nil {
		o.ErrPrintln("error:", execErr)

		return 1
	}

	return 0
}
