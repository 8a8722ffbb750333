// Package note defines the markdown entities stored in an AdzeKit shed and
// the parsers and formatters that move them between text and memory.
//
// Everything on disk is plain markdown. Two loop syntaxes coexist: the flat
// checklist form written by the current generation and a legacy structured
// block form that is still parsed but never written back.
package note

import (
	"strings"
	"time"
)

// DateLayout is the ISO date format used everywhere in the shed.
const DateLayout = "2006-01-02"

// Loop status labels as written by the formatter. The stored status is free
// text; only a case-insensitive match against "closed" carries meaning.
const (
	StatusOpen   = "Open"
	StatusClosed = "Closed"
)

// Loop is a commitment to another person requiring closure.
//
// Date is the creation date. Due is the zero time when no due date is set.
// All dates are date-only values at midnight UTC.
type Loop struct {
	Date       time.Time
	Title      string
	Who        string
	What       string
	Due        time.Time
	Status     string
	NextAction string
	Project    string
	Size       string
}

// Closed reports whether the loop has reached its terminal state.
func (l Loop) Closed() bool {
	return strings.ToLower(l.Status) == "closed"
}

// Task is a single checklist item. Tasks are never persisted on their own;
// they are embedded in a DailyNote or Project.
type Task struct {
	Description string
	Done        bool
}

// ProjectState describes which partition a project file was loaded from.
// It is derived from the file's location, never stored in the file.
type ProjectState string

const (
	StateBacklog ProjectState = "backlog"
	StateActive  ProjectState = "active"
	StateArchive ProjectState = "archive"
)

// Project is a single project markdown file parsed into structured data.
type Project struct {
	Slug       string
	State      ProjectState
	Title      string
	Tasks      []Task
	RawContent string
}

// Progress returns the fraction of done tasks, 0.0 when there are none.
func (p Project) Progress() float64 {
	if len(p.Tasks) == 0 {
		return 0.0
	}

	done := 0
	for _, t := range p.Tasks {
		if t.Done {
			done++
		}
	}

	return float64(done) / float64(len(p.Tasks))
}

// LogEntry is a timestamped line from a daily note's log section.
type LogEntry struct {
	Time string
	Text string
}

// DailyNote is one calendar day's structured journal entry.
type DailyNote struct {
	Date       time.Time
	Intentions []Task
	Log        []LogEntry
	Finished   []string
	Blocked    []string
	Tomorrow   []string
	RawContent string
}
