package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/AdzeKit/AdzeKit/internal/shed"
	"github.com/AdzeKit/AdzeKit/internal/tags"
)

// TagsCmd returns the tags command.
func TagsCmd(cfg shed.Settings) *Command {
	fs := flag.NewFlagSet("tags", flag.ContinueOnError)
	fs.Bool("completions", false, "Generate editor snippets for all tags")

	return &Command{
		Flags: fs,
		Usage: "tags [tag] [flags]",
		Short: "List, search, or autocomplete tags",
		Long: "List every #tag in the shed, or the files carrying one tag.\n" +
			"With --completions, write editor snippets for tab completion.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execTags(o, cfg, fs, args)
		},
	}
}

func execTags(o *IO, cfg shed.Settings, fs *flag.FlagSet, args []string) error {
	completions, _ := fs.GetBool("completions")

	if completions {
		path, genErr := tags.GenerateSnippets(cfg)
		if genErr != nil {
			return genErr
		}

		o.Println("Generated Cursor snippets:", path)

		return nil
	}

	idx, buildErr := tags.BuildIndex(cfg)
	if buildErr != nil {
		return buildErr
	}

	if len(args) > 0 {
		return searchTag(o, idx, args[0])
	}

	all := idx.Tags()
	if len(all) == 0 {
		o.Println("No tags found.")

		return nil
	}

	for _, t := range all {
		o.Println("  #" + t)
	}

	o.Printf("\n%d tags\n", len(all))

	return nil
}

func searchTag(o *IO, idx tags.Index, search string) error {
	files := idx.Files(search)
	if len(files) == 0 {
		o.Printf("No files tagged #%s\n", strings.TrimLeft(search, "#"))

		return nil
	}

	tag := strings.ToLower(strings.TrimLeft(search, "#"))

	o.Printf("#%s (%d files):\n", tag, len(files))

	for _, f := range files {
		o.Println("  " + f)
	}

	return nil
}
