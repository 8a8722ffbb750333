// Package main provides adze, a plain-markdown personal organization
// system with LLM-friendly output.
package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AdzeKit/AdzeKit/internal/cli"
)

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, environ(), sigCh))
}

// environ snapshots the process environment as a map. ADZEKIT_* lookups
// inside the CLI go through this map so tests can inject their own.
func environ() map[string]string {
	env := make(map[string]string)

	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}

	return env
}
