// adze-console is an interactive debugger for the shed agent tools. It
// registers the same tool set the agent sees and lets you inspect
// schemas and invoke tools by hand.
//
// Usage:
//
//	adze-console [--shed <dir>]
//
// Commands (in REPL):
//
//	tools                          List registered tools
//	schema [tool]                  Show tool JSON schema
//	call <tool> [k=v ... | {json}] Invoke a tool and print its result
//	status                         Show shed root and tool count
//	help                           Show this help
//	exit / quit / q                Exit
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/AdzeKit/AdzeKit/internal/agent"
	"github.com/AdzeKit/AdzeKit/internal/shed"
)

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("adze-console", flag.ExitOnError)

	shedPath := fs.String("shed", "", "shed directory (overrides ADZEKIT_SHED)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: adze-console [--shed <dir>]\n\n")
		fmt.Fprintf(os.Stderr, "Interactive console for the shed agent tools.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	cfg, err := shed.LoadSettings(shed.LoadSettingsInput{ShedOverride: *shedPath, Env: env})
	if err != nil {
		return err
	}

	if err := cfg.RequireInitialized(); err != nil {
		return err
	}

	registry := agent.NewRegistry()

	tools := agent.NewShedTools(cfg, shed.SystemClock{})
	if err := tools.RegisterAll(registry); err != nil {
		return err
	}

	repl := &REPL{
		cfg:      cfg,
		registry: registry,
	}

	return repl.Run()
}

// REPL is the interactive command loop.
type REPL struct {
	cfg      shed.Settings
	registry *agent.Registry
	liner    *liner.State
}

// historyFile returns the path to the history file.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".adze_console_history")
}

// Run starts the REPL loop.
func (r *REPL) Run() error {
	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	// Load history
	if f, err := os.Open(historyFile()); err == nil {
		r.liner.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("adze-console - shed agent tools (shed=%s, tools=%d)\n", r.cfg.Root, len(r.registry.Tools()))
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()

	for {
		line, err := r.liner.Prompt("adze> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				fmt.Println("\nBye!")

				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			fmt.Println("Bye!")

			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp()

		case "tools", "ls", "list":
			r.cmdTools()

		case "schema":
			r.cmdSchema(args)

		case "call":
			r.cmdCall(args)

		case "status":
			r.cmdStatus()

		case "clear", "cls":
			fmt.Print("\033[H\033[2J")

		default:
			fmt.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

// saveHistory persists command history to disk.
func (r *REPL) saveHistory() {
	if path := historyFile(); path != "" {
		if f, err := os.Create(path); err == nil {
			r.liner.WriteHistory(f)
			f.Close()
		}
	}
}

// completer provides tab completion for commands and, after "call" or
// "schema", tool names.
func (r *REPL) completer(line string) []string {
	lower := strings.ToLower(line)

	for _, prefix := range []string{"call ", "schema "} {
		rest, found := strings.CutPrefix(lower, prefix)
		if !found {
			continue
		}

		var completions []string

		for _, def := range r.registry.Tools() {
			if strings.HasPrefix(def.Name, rest) {
				completions = append(completions, prefix+def.Name)
			}
		}

		return completions
	}

	commands := []string{
		"tools", "ls", "list",
		"schema", "call", "status",
		"clear", "cls",
		"help", "exit", "quit", "q",
	}

	var completions []string

	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (r *REPL) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  tools                          List registered tools")
	fmt.Println("  schema [tool]                  Show tool JSON schema (all tools without argument)")
	fmt.Println("  call <tool> [k=v ... | {json}] Invoke a tool and print its result")
	fmt.Println("  status                         Show shed root and tool count")
	fmt.Println("  help                           Show this help")
	fmt.Println("  exit / quit / q                Exit")
	fmt.Println()
	fmt.Println("Tool results are JSON. Failures come back as {\"error\": ...} envelopes,")
	fmt.Println("exactly as the model would see them.")
}

func (r *REPL) cmdTools() {
	for _, def := range r.registry.Tools() {
		fmt.Printf("  %-26s %s\n", def.Name, firstSentence(def.Description))
	}
}

func (r *REPL) cmdSchema(args []string) {
	schemas := r.registry.Schemas()

	if len(args) == 0 {
		printIndented(schemas)

		return
	}

	for _, schema := range schemas {
		if schema.Name == args[0] {
			printIndented(schema)

			return
		}
	}

	fmt.Printf("Unknown tool: %s (try 'tools')\n", args[0])
}

func (r *REPL) cmdCall(args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: call <tool> [key=value ... | {json}]")

		return
	}

	name := args[0]
	toolArgs := map[string]any{}
	rest := strings.Join(args[1:], " ")

	switch {
	case strings.HasPrefix(rest, "{"):
		err := json.Unmarshal([]byte(rest), &toolArgs)
		if err != nil {
			fmt.Printf("Error parsing JSON arguments: %v\n", err)

			return
		}
	case rest != "":
		parsed, err := parseToolArgs(args[1:])
		if err != nil {
			fmt.Printf("Error: %v\n", err)

			return
		}

		toolArgs = parsed
	}

	result := r.registry.Call(name, toolArgs)

	var pretty bytes.Buffer

	if err := json.Indent(&pretty, []byte(result), "", "  "); err != nil {
		fmt.Println(result)

		return
	}

	fmt.Println(pretty.String())
}

func (r *REPL) cmdStatus() {
	fmt.Printf("Shed:  %s\n", r.cfg.Root)
	fmt.Printf("Tools: %d registered\n", len(r.registry.Tools()))
}

// parseToolArgs turns key=value pairs into a tool argument map. Values
// stay strings; use the {json} form for anything else.
func parseToolArgs(pairs []string) (map[string]any, error) {
	args := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		k, v, found := strings.Cut(pair, "=")
		if !found || k == "" {
			return nil, fmt.Errorf("argument %q is not key=value", pair)
		}

		args[k] = v
	}

	return args, nil
}

func printIndented(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Error rendering JSON: %v\n", err)

		return
	}

	fmt.Println(string(data))
}

func firstSentence(s string) string {
	if head, _, found := strings.Cut(s, ". "); found {
		return head + "."
	}

	return s
}
