package cli

import (
	"fmt"
	"io"
)

// IO routes command output. Stdout carries the command's result; stderr
// carries warnings and errors so piped output stays clean.
//
// Warnings recorded through WarnLLM are echoed to stderr both before the
// first stdout write and again when the command finishes. An agent reading
// truncated output (head, tail, a context window cut) sees them either way.
type IO struct {
	out    io.Writer
	errOut io.Writer
	notes  []string
	led    bool
}

// NewIO wires an IO to the given stdout and stderr writers.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// WarnLLM records an actionable warning: issue names what is wrong, action
// names what the reader should do about it. Warnings do not suppress normal
// stdout output, so partial results still print, but any recorded warning
// turns the final exit code to 1.
func (o *IO) WarnLLM(issue, action string) {
	o.notes = append(o.notes, fmt.Sprintf("warning: %s: %s", issue, action))
}

// Println writes a line to stdout, leading with any pending warnings.
func (o *IO) Println(a ...any) {
	o.leadWithWarnings()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted text to stdout, leading with any pending warnings.
func (o *IO) Printf(format string, a ...any) {
	o.leadWithWarnings()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes a line straight to stderr, outside the warning flow.
// Used for fatal errors and help shown in error position.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish repeats the warnings in end position and returns the exit code:
// 1 when any warning was recorded, 0 otherwise.
func (o *IO) Finish() int {
	// A command that produced no stdout still gets its leading copy.
	o.leadWithWarnings()

	for _, n := range o.notes {
		_, _ = fmt.Fprintln(o.errOut, n)
	}

	if len(o.notes) > 0 {
		return 1
	}

	return 0
}

func (o *IO) leadWithWarnings() {
	if o.led || len(o.notes) == 0 {
		return
	}

	for _, n := range o.notes {
		_, _ = fmt.Fprintln(o.errOut, n)
	}

	o.led = true
}
