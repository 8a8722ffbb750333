package note

import (
	"regexp"
	"strings"
	"time"
)

// Line classifiers, each applied to the whitespace-trimmed line.
var (
	// Flat checklist loop: - [ ] (SIZE) [DATE] title (DUE)
	flatLoopRe = regexp.MustCompile(`^-\s+\[([ xX])\]\s+(?:\(([A-Z]{1,2})\)\s+)?(?:\[(\d{4}-\d{2}-\d{2})\]\s+)?(.+)$`)
	// Trailing due date at the end of a flat loop title.
	trailingDueRe = regexp.MustCompile(`\((\d{4}-\d{2}-\d{2})\)\s*$`)
	// Legacy structured loop header: ## [DATE] Title
	loopHeaderRe = regexp.MustCompile(`^##\s+\[(\d{4}-\d{2}-\d{2})\]\s+(.+)$`)
	// Structured field line: - **Label:** value
	loopFieldRe = regexp.MustCompile(`^-\s+\*\*(\w[\w\s]*):\*\*\s*(.+)$`)
	// Checklist item: - [ ] description
	taskRe = regexp.MustCompile(`^-\s+\[([ xX])\]\s+(.+)$`)
	// Daily log entry: - HH:MM text
	logEntryRe = regexp.MustCompile(`^-\s+(\d{1,2}:\d{2})\s+(.+)$`)
	// Single-word bold item: - **Finished:** value
	boldItemRe = regexp.MustCompile(`^-\s+\*\*(\w+):\*\*\s*(.+)$`)
)

// pendingLoop accumulates a structured block until the next loop begins.
// The due string is kept raw so that later duplicate fields overwrite it
// before it is parsed once, on flush.
type pendingLoop struct {
	loop   Loop
	dueRaw string
}

// ParseLoops parses loops from markdown text. Both the flat checklist form
// and the legacy structured block form are recognized, flat lines taking
// precedence per line. Flat entries without a leading bracketed date are
// stamped with today. Lines matching neither form are skipped.
func ParseLoops(text string, today time.Time) []Loop {
	var (
		loops []Loop
		cur   *pendingLoop
	)

	flush := func() {
		if cur == nil {
			return
		}

		if cur.dueRaw != "" {
			if due, parseErr := time.Parse(DateLayout, cur.dueRaw); parseErr == nil {
				cur.loop.Due = due
			}
		}

		loops = append(loops, cur.loop)
		cur = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if m := flatLoopRe.FindStringSubmatch(line); m != nil {
			flush()
			loops = append(loops, flatLoop(m, today))

			continue
		}

		if m := loopHeaderRe.FindStringSubmatch(line); m != nil {
			flush()

			created, parseErr := time.Parse(DateLayout, m[1])
			if parseErr != nil {
				created = today
			}

			cur = &pendingLoop{loop: Loop{
				Date:   created,
				Title:  strings.TrimSpace(m[2]),
				Status: StatusOpen,
			}}

			continue
		}

		if cur == nil {
			continue
		}

		m := loopFieldRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		value := strings.TrimSpace(m[2])

		switch strings.ToLower(strings.TrimSpace(m[1])) {
		case "who":
			cur.loop.Who = value
		case "what":
			cur.loop.What = value
		case "due":
			cur.dueRaw = value
		case "status":
			cur.loop.Status = value
		case "next":
			cur.loop.NextAction = value
		case "project":
			cur.loop.Project = value
		}
	}

	flush()

	return loops
}

// flatLoop builds a Loop from a flat checklist match. A trailing (YYYY-MM-DD)
// is stripped from the title only when it parses as a date; otherwise it
// stays in the title untouched.
func flatLoop(m []string, today time.Time) Loop {
	status := StatusOpen
	if strings.ToLower(m[1]) == "x" {
		status = StatusClosed
	}

	created := today

	if m[3] != "" {
		if d, parseErr := time.Parse(DateLayout, m[3]); parseErr == nil {
			created = d
		}
	}

	title := strings.TrimSpace(m[4])

	var due time.Time

	if loc := trailingDueRe.FindStringSubmatchIndex(title); loc != nil {
		if d, parseErr := time.Parse(DateLayout, title[loc[2]:loc[3]]); parseErr == nil {
			due = d
			title = strings.TrimSpace(title[:loc[0]])
		}
	}

	return Loop{
		Date:   created,
		Title:  title,
		Due:    due,
		Status: status,
		Size:   m[2],
	}
}

// ParseTasks parses every checklist line in the text into a Task.
func ParseTasks(text string) []Task {
	var tasks []Task

	for _, raw := range strings.Split(text, "\n") {
		m := taskRe.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}

		tasks = append(tasks, Task{
			Description: m[2],
			Done:        strings.ToLower(m[1]) == "x",
		})
	}

	return tasks
}

// dailySection is the state of the daily-note section scanner.
type dailySection int

const (
	sectionNone dailySection = iota
	sectionIntentions
	sectionLog
	sectionReflection
)

// ParseDailyNote parses a daily note. A single pass tracks the current
// section; lines are only interpreted according to the section they fall
// under, and anything before the first recognized heading is ignored.
func ParseDailyNote(text string, day time.Time) DailyNote {
	n := DailyNote{Date: day, RawContent: text}

	section := sectionNone

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "morning") && strings.Contains(lower, "intention"):
			section = sectionIntentions

			continue
		case strings.HasPrefix(lower, "## log"):
			section = sectionLog

			continue
		case strings.Contains(lower, "evening") && strings.Contains(lower, "reflection"):
			section = sectionReflection

			continue
		}

		switch section {
		case sectionNone:
		case sectionIntentions:
			if m := taskRe.FindStringSubmatch(line); m != nil {
				n.Intentions = append(n.Intentions, Task{
					Description: m[2],
					Done:        strings.ToLower(m[1]) == "x",
				})
			}
		case sectionLog:
			if m := logEntryRe.FindStringSubmatch(line); m != nil {
				n.Log = append(n.Log, LogEntry{Time: m[1], Text: m[2]})
			}
		case sectionReflection:
			m := boldItemRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			switch strings.ToLower(m[1]) {
			case "finished":
				n.Finished = append(n.Finished, m[2])
			case "blocked":
				n.Blocked = append(n.Blocked, m[2])
			case "tomorrow":
				n.Tomorrow = append(n.Tomorrow, m[2])
			}
		}
	}

	return n
}

// ParseProject parses a project markdown file. The title comes from the
// first top-level heading (the slug when there is none) and tasks are taken
// from the "## Log" section only; everything else survives in RawContent.
func ParseProject(slug string, state ProjectState, text string) Project {
	p := Project{Slug: slug, State: state, Title: slug, RawContent: text}

	titled := false
	inLog := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "# ") && !strings.HasPrefix(line, "## ") {
			if !titled {
				p.Title = strings.TrimSpace(strings.TrimLeft(line, "# "))
				titled = true
			}

			continue
		}

		if strings.HasPrefix(strings.ToLower(line), "## log") {
			inLog = true

			continue
		}

		if strings.HasPrefix(line, "## ") {
			inLog = false

			continue
		}

		if !inLog {
			continue
		}

		if m := taskRe.FindStringSubmatch(line); m != nil {
			p.Tasks = append(p.Tasks, Task{
				Description: m[2],
				Done:        strings.ToLower(m[1]) == "x",
			})
		}
	}

	return p
}
