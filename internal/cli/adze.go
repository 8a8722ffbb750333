package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// adzeArt is the AdzeKit symbol, an adze head on a handle.
const adzeArt = `
   //\\
  //  \\
 //
//

 A D Z E K I T
`

// AdzeCmd returns the adze command.
func AdzeCmd() *Command {
	fs := flag.NewFlagSet("adze", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "adze",
		Short: "Print the AdzeKit symbol",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			o.Println(adzeArt)

			return nil
		},
	}
}
