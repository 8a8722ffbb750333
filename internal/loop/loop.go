// Package loop implements the open-loop lifecycle: capture, track, close.
//
// Every commitment gets a response within the SLA window. A loop stays in
// loops/open.md until it is explicitly closed (moved to the current week's
// partition under loops/closed/) or swept in bulk to the cumulative
// loops/closed.md after a human checked its box.
package loop

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AdzeKit/AdzeKit/internal/note"
)

// Shed-relative paths of the loop partitions.
const (
	OpenFile   = "loops/open.md"
	ClosedDir  = "loops/closed"
	ClosedFile = "loops/closed.md"
)

// ErrOpenFileMissing means the open-loop store has not been created yet.
var ErrOpenFileMissing = errors.New("loops/open.md not found (run: adze init)")

// Store is the file access the manager needs. Paths are shed-relative.
type Store interface {
	ReadFile(rel string) ([]byte, error)
	WriteFile(rel string, data []byte) error
	Exists(rel string) bool
}

// Clock supplies today's date for stamping and SLA math.
type Clock interface {
	Today() time.Time
}

// Stats summarizes the open-loop store.
type Stats struct {
	Open           int
	Overdue        int
	ApproachingSLA int
}

// Manager runs loop operations against one shed.
type Manager struct {
	store Store
	clock Clock
}

// NewManager returns a manager over the given store and clock.
func NewManager(store Store, clock Clock) *Manager {
	return &Manager{store: store, clock: clock}
}

// Open reads and parses every loop in loops/open.md.
func (m *Manager) Open() ([]note.Loop, error) {
	data, readErr := m.store.ReadFile(OpenFile)
	if readErr != nil {
		if errors.Is(readErr, os.ErrNotExist) {
			return nil, ErrOpenFileMissing
		}

		return nil, fmt.Errorf("cannot read %s: %w", OpenFile, readErr)
	}

	return note.ParseLoops(string(data), m.clock.Today()), nil
}

// Add appends one formatted loop line to loops/open.md. Duplicate titles
// are not checked.
func (m *Manager) Add(l note.Loop) error {
	data, readErr := m.store.ReadFile(OpenFile)
	if readErr != nil {
		if errors.Is(readErr, os.ErrNotExist) {
			return ErrOpenFileMissing
		}

		return fmt.Errorf("cannot read %s: %w", OpenFile, readErr)
	}

	content := string(data) + "\n" + note.FormatLoop(l)

	return m.store.WriteFile(OpenFile, []byte(content))
}

// Close moves the first loop whose title exactly equals title into the
// current week's closed partition, marking it Closed. Reports whether a
// loop was found; a miss mutates nothing.
func (m *Manager) Close(title string) (bool, error) {
	loops, loadErr := m.Open()
	if loadErr != nil {
		return false, loadErr
	}

	var closed *note.Loop

	remaining := make([]note.Loop, 0, len(loops))

	for _, l := range loops {
		if closed == nil && l.Title == title {
			l.Status = note.StatusClosed
			hit := l
			closed = &hit

			continue
		}

		remaining = append(remaining, l)
	}

	if closed == nil {
		return false, nil
	}

	writeErr := m.store.WriteFile(OpenFile, []byte("# Open Loops\n\n"+note.FormatLoops(remaining)))
	if writeErr != nil {
		return false, writeErr
	}

	appendErr := m.appendToPartition(*closed)
	if appendErr != nil {
		return false, appendErr
	}

	return true, nil
}

// appendToPartition appends one closed loop to loops/closed/<year>-W<week>.md,
// keyed by the ISO year and week of today.
func (m *Manager) appendToPartition(l note.Loop) error {
	year, week := m.clock.Today().ISOWeek()
	partition := fmt.Sprintf("%s/%04d-W%02d.md", ClosedDir, year, week)
	line := note.FormatLoop(l)

	var content string

	if m.store.Exists(partition) {
		existing, readErr := m.store.ReadFile(partition)
		if readErr != nil {
			return fmt.Errorf("cannot read %s: %w", partition, readErr)
		}

		content = string(existing)
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}

		content += line + "\n"
	} else {
		content = fmt.Sprintf("# Closed Loops -- %d Week %d\n\n", year, week) + line + "\n"
	}

	return m.store.WriteFile(partition, []byte(content))
}

// SweepClosed moves every loop already marked closed out of loops/open.md
// into the cumulative loops/closed.md, re-stamped with today's date.
// Returns the swept loops in original order; with nothing to sweep it
// performs zero writes.
func (m *Manager) SweepClosed() ([]note.Loop, error) {
	loops, loadErr := m.Open()
	if loadErr != nil {
		return nil, loadErr
	}

	today := m.clock.Today()

	var swept, stillOpen []note.Loop

	for _, l := range loops {
		if l.Closed() {
			l.Date = today // stamp the closed date
			swept = append(swept, l)
		} else {
			stillOpen = append(stillOpen, l)
		}
	}

	if len(swept) == 0 {
		return nil, nil
	}

	openContent := "# Open Loops\n\n" + note.FormatLoops(stillOpen) + "\n"

	writeErr := m.store.WriteFile(OpenFile, []byte(openContent))
	if writeErr != nil {
		return nil, writeErr
	}

	closedContent := "# Closed Loops"

	if m.store.Exists(ClosedFile) {
		existing, readErr := m.store.ReadFile(ClosedFile)
		if readErr != nil {
			return nil, fmt.Errorf("cannot read %s: %w", ClosedFile, readErr)
		}

		closedContent = strings.TrimRight(string(existing), " \t\r\n")
	}

	closedContent += "\n" + note.FormatLoops(swept) + "\n"

	writeErr = m.store.WriteFile(ClosedFile, []byte(closedContent))
	if writeErr != nil {
		return nil, writeErr
	}

	return swept, nil
}

// Overdue returns loops whose due date is strictly before today. Status is
// irrelevant; only due presence is required.
func (m *Manager) Overdue() ([]note.Loop, error) {
	loops, loadErr := m.Open()
	if loadErr != nil {
		return nil, loadErr
	}

	return overdueOf(loops, m.clock.Today()), nil
}

// ApproachingSLA returns open loops created at or before today minus the
// SLA window. The window is expressed in hours but applied at day
// granularity.
func (m *Manager) ApproachingSLA(slaHours int) ([]note.Loop, error) {
	loops, loadErr := m.Open()
	if loadErr != nil {
		return nil, loadErr
	}

	return approachingOf(loops, m.clock.Today(), slaHours), nil
}

// Stats counts open, overdue, and SLA-approaching loops in one read.
func (m *Manager) Stats(slaHours int) (Stats, error) {
	loops, loadErr := m.Open()
	if loadErr != nil {
		return Stats{}, loadErr
	}

	today := m.clock.Today()

	return Stats{
		Open:           len(loops),
		Overdue:        len(overdueOf(loops, today)),
		ApproachingSLA: len(approachingOf(loops, today, slaHours)),
	}, nil
}

func overdueOf(loops []note.Loop, today time.Time) []note.Loop {
	var out []note.Loop

	for _, l := range loops {
		if !l.Due.IsZero() && l.Due.Before(today) {
			out = append(out, l)
		}
	}

	return out
}

func approachingOf(loops []note.Loop, today time.Time, slaHours int) []note.Loop {
	cutoff := today.AddDate(0, 0, -(slaHours / 24))

	var out []note.Loop

	for _, l := range loops {
		if !l.Date.After(cutoff) && !l.Closed() {
			out = append(out, l)
		}
	}

	return out
}
