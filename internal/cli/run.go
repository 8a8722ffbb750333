package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AdzeKit/AdzeKit/internal/shed"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Global flag parsing errors.
var (
	ErrFlagRequiresArg = errors.New("flag requires an argument")
	ErrUnknownFlag     = errors.New("unknown flag")
)

// Run is the main entry point. Returns exit code.
func Run(_ io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	o := NewIO(out, errOut)

	if len(args) < minArgs {
		o.Println(adzeArt)

		return o.Finish()
	}

	// Parse global flags
	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	// Load and validate config
	cfg, err := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		ShedOverride:    flags.shed,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut, commands(shed.Settings{}, nil, shed.SystemClock{}))

		return 1
	}

	if len(flags.remaining) == 0 {
		o.Println(adzeArt)

		return o.Finish()
	}

	cmds := commands(cfg, env, shed.SystemClock{})

	name := flags.remaining[0]

	// Handle help flags
	if name == "-h" || name == helpFlag {
		printUsage(out, cmds)

		return 0
	}

	cmd := lookup(cmds, name)
	if cmd == nil {
		fprintln(errOut, "error: unknown command:", name)
		printUsage(errOut, cmds)

		return 1
	}

	// Everything except init and the symbol runs inside an initialized
	// shed. Command help works regardless.
	if requiresShed(name) && !hasHelpFlag(flags.remaining[1:]) {
		initErr := cfg.RequireInitialized()
		if initErr != nil {
			fprintln(errOut, "error:", initErr)

			return 1
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	if code := cmd.Run(ctx, o, flags.remaining[1:]); code != 0 {
		return code
	}

	// Finish handles warnings and exit code
	return o.Finish()
}

// commands returns the full command table in help display order.
func commands(cfg shed.Settings, env map[string]string, clock shed.Clock) []*Command {
	return []*Command{
		AdzeCmd(),
		InitCmd(cfg, env, clock),
		TodayCmd(cfg, clock),
		ReviewCmd(cfg, clock),
		AddLoopCmd(cfg, clock),
		CloseLoopCmd(cfg, clock),
		SweepCmd(cfg, clock),
		LoopsCmd(cfg, clock),
		StatusCmd(cfg, clock),
		ProjectCmd(cfg),
		ActivateCmd(cfg),
		ArchiveCmd(cfg),
		TagsCmd(cfg),
		PocInitCmd(cfg, clock),
		PrintConfigCmd(cfg),
	}
}

func lookup(cmds []*Command, name string) *Command {
	for _, c := range cmds {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func requiresShed(name string) bool {
	return name != "init" && name != "adze"
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == helpFlag {
			return true
		}
	}

	return false
}

type globalFlags struct {
	workDir    string
	configPath string
	shed       string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// --shed flag
	if arg == "--shed" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", ErrFlagRequiresArg, arg)
		}

		flags.shed = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--shed="); ok {
		flags.shed = after

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", ErrUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, cmds []*Command) {
	fprintln(w, `AdzeKit -- prehistoric tools, modern brains.

Usage: adze [options] <command> [args]

Options:
  -C, --cwd <dir>    Run as if started in <dir>
  -c, --config       Use specified config file
  --shed <dir>       Use the shed at <dir> (overrides ADZEKIT_SHED)

Commands:`)

	for _, c := range cmds {
		fprintln(w, c.HelpLine())
	}
}
