package shed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AdzeKit/AdzeKit/internal/note"
)

// LoadOpenLoops parses loops/open.md. A missing or blank file yields no
// loops and no error.
func LoadOpenLoops(s Settings, today time.Time) ([]note.Loop, error) {
	data, readErr := os.ReadFile(s.OpenLoopsPath())
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return nil, nil
		}

		return nil, fmt.Errorf("cannot read open loops: %w", readErr)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	return note.ParseLoops(text, today), nil
}

// LoadProjects parses the project files in one state directory, sorted by
// filename. An empty state loads all three states in active, backlog,
// archive order.
func LoadProjects(s Settings, state note.ProjectState) ([]note.Project, error) {
	if state == "" {
		var all []note.Project

		for _, st := range []note.ProjectState{note.StateActive, note.StateBacklog, note.StateArchive} {
			projects, err := LoadProjects(s, st)
			if err != nil {
				return nil, err
			}

			all = append(all, projects...)
		}

		return all, nil
	}

	var dir string

	switch state {
	case note.StateActive:
		dir = s.ProjectsDir()
	case note.StateBacklog:
		dir = s.BacklogDir()
	case note.StateArchive:
		dir = s.ArchiveDir()
	default:
		return nil, fmt.Errorf("unknown project state: %q", state)
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return nil, nil
		}

		return nil, fmt.Errorf("cannot read %s: %w", dir, readErr)
	}

	var projects []note.Project

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		data, fileErr := os.ReadFile(filepath.Join(dir, entry.Name()))
		if fileErr != nil {
			return nil, fmt.Errorf("cannot read project %s: %w", entry.Name(), fileErr)
		}

		slug := strings.TrimSuffix(entry.Name(), ".md")
		projects = append(projects, note.ParseProject(slug, state, string(data)))
	}

	return projects, nil
}

// LoadDailyNote parses the daily note for day. A missing note yields nil.
func LoadDailyNote(s Settings, day time.Time) (*note.DailyNote, error) {
	data, readErr := os.ReadFile(s.DailyPath(day))
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return nil, nil
		}

		return nil, fmt.Errorf("cannot read daily note: %w", readErr)
	}

	parsed := note.ParseDailyNote(string(data), day)

	return &parsed, nil
}

// LoadInbox returns the raw inbox content, or "" when the file is missing.
func LoadInbox(s Settings) (string, error) {
	data, readErr := os.ReadFile(s.InboxPath())
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return "", nil
		}

		return "", fmt.Errorf("cannot read inbox: %w", readErr)
	}

	return string(data), nil
}
