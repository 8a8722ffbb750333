package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// InitCmd returns the init command.
func InitCmd(cfg shed.Settings, env map[string]string, clock shed.Clock) *Command {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "init [path]",
		Short: "Initialize a new shed",
		Long: "Initialize a new AdzeKit shed with the full backbone structure.\n" +
			"Uses <path> when given, the working directory otherwise. Running\n" +
			"init on an existing shed fills gaps and never overwrites work.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execInit(o, cfg, env, clock, args)
		},
	}
}

func execInit(o *IO, cfg shed.Settings, env map[string]string, clock shed.Clock, args []string) error {
	root := cfg.WorkDir

	if len(args) > 0 {
		root = args[0]
		if !filepath.IsAbs(root) {
			root = filepath.Join(cfg.WorkDir, root)
		}
	}

	// Resolve settings against the target directory so a marker already
	// there keeps its values on re-init.
	target, loadErr := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: cfg.WorkDir,
		ConfigPath:      cfg.Sources.Global,
		ShedOverride:    root,
		Env:             env,
	})
	if loadErr != nil {
		return loadErr
	}

	initErr := shed.InitShed(target, clock.Today())
	if initErr != nil {
		return initErr
	}

	o.Println("Initialized AdzeKit shed at", target.Root)
	o.Println()

	return printTree(o, target.Root, "")
}

// printTree prints the seeded tree: directories first, then markdown
// files, both alphabetical. Hidden directories and non-markdown files
// are skipped.
func printTree(o *IO, base, prefix string) error {
	entries, readErr := os.ReadDir(base)
	if readErr != nil {
		return fmt.Errorf("cannot read %s: %w", base, readErr)
	}

	show := make([]os.DirEntry, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			show = append(show, e)

			continue
		}

		if !e.IsDir() && filepath.Ext(e.Name()) == ".md" {
			show = append(show, e)
		}
	}

	slices.SortStableFunc(show, func(a, b os.DirEntry) int {
		if a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}

			return 1
		}

		return strings.Compare(a.Name(), b.Name())
	})

	for i, e := range show {
		last := i == len(show)-1

		connector := "├── "
		if last {
			connector = "└── "
		}

		if !e.IsDir() {
			o.Println(prefix + connector + e.Name())

			continue
		}

		o.Println(prefix + connector + e.Name() + "/")

		extension := "│   "
		if last {
			extension = "    "
		}

		walkErr := printTree(o, filepath.Join(base, e.Name()), prefix+extension)
		if walkErr != nil {
			return walkErr
		}
	}

	return nil
}
