package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// ProjectCmd returns the project command.
func ProjectCmd(cfg shed.Settings) *Command {
	fs := flag.NewFlagSet("project", flag.ContinueOnError)
	fs.String("title", "", "Project title (defaults to the slug)")
	fs.Bool("active", false, "Create in the projects root instead of backlog/")

	return &Command{
		Flags: fs,
		Usage: "project <slug> [flags]",
		Short: "Create a new project file",
		Long: "Create a project file from the backbone template. New projects\n" +
			"start in backlog/ unless --active is given.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execProject(o, cfg, fs, args)
		},
	}
}

var errSlugRequired = errors.New("slug required")

func execProject(o *IO, cfg shed.Settings, fs *flag.FlagSet, args []string) error {
	if len(args) == 0 {
		return errSlugRequired
	}

	title, _ := fs.GetString("title")
	active, _ := fs.GetBool("active")

	path, createErr := shed.CreateProject(cfg, args[0], title, !active)
	if createErr != nil {
		return createErr
	}

	o.Println(path)

	return nil
}
