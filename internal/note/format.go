package note

import "strings"

// FormatLoop serializes a loop to the flat checklist form, the only form
// the current generation writes. Structured input therefore normalizes to
// flat on its first rewrite.
func FormatLoop(l Loop) string {
	check := "[ ]"
	if l.Closed() {
		check = "[x]"
	}

	parts := []string{"- " + check}

	if l.Size != "" {
		parts = append(parts, "("+l.Size+")")
	}

	parts = append(parts, "["+l.Date.Format(DateLayout)+"]", l.Title)

	if !l.Due.IsZero() {
		parts = append(parts, "("+l.Due.Format(DateLayout)+")")
	}

	return strings.Join(parts, " ")
}

// FormatLoops serializes loops to markdown lines in insertion order.
func FormatLoops(loops []Loop) string {
	lines := make([]string, 0, len(loops))
	for _, l := range loops {
		lines = append(lines, FormatLoop(l))
	}

	return strings.Join(lines, "\n")
}

// FormatTasks serializes tasks back to a markdown checklist.
func FormatTasks(tasks []Task) string {
	lines := make([]string, 0, len(tasks))

	for _, t := range tasks {
		check := "[ ]"
		if t.Done {
			check = "[x]"
		}

		lines = append(lines, "- "+check+" "+t.Description)
	}

	return strings.Join(lines, "\n")
}
