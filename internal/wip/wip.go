// Package wip enforces the work-in-progress caps: a maximum number of
// active projects and daily focus tasks. No exceptions, only trade-offs.
//
// The gatekeeper runs a four-question filter before any new project
// enters active status. The agent can draft answers; the human decides.
package wip

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/AdzeKit/AdzeKit/internal/note"
	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// Questions is the filter every project must answer before activation.
var Questions = []string{
	"Does this displace something more important?",
	"Can this realistically ship in 2 weeks?",
	"Who is this for, and do they actually need it now?",
	"What happens if I just don't do this?",
}

// Error variables for gatekeeper operations.
var (
	ErrWIPLimit     = errors.New("WIP limit reached")
	ErrNotInBacklog = errors.New("project not found in backlog/")
	ErrNotActive    = errors.New("project not found in active/")
)

// Status summarizes current WIP load against the configured caps.
type Status struct {
	ActiveProjects    int
	MaxActiveProjects int
	ProjectsAvailable int
	DailyTasks        int
	MaxDailyTasks     int
	DailyAvailable    int
}

// CountActiveProjects returns the number of projects in the active state.
func CountActiveProjects(s shed.Settings) (int, error) {
	projects, loadErr := shed.LoadProjects(s, note.StateActive)
	if loadErr != nil {
		return 0, loadErr
	}

	return len(projects), nil
}

// CountDailyTasks returns the number of intention items in today's daily
// note, zero when the note does not exist.
func CountDailyTasks(s shed.Settings, today time.Time) (int, error) {
	daily, loadErr := shed.LoadDailyNote(s, today)
	if loadErr != nil {
		return 0, loadErr
	}

	if daily == nil {
		return 0, nil
	}

	return len(daily.Intentions), nil
}

// CanActivate reports whether a new project may enter active status,
// with a human-readable reason either way.
func CanActivate(s shed.Settings) (bool, string, error) {
	n, countErr := CountActiveProjects(s)
	if countErr != nil {
		return false, "", countErr
	}

	if n >= s.MaxActiveProjects {
		return false, limitError(n, s.MaxActiveProjects).Error(), nil
	}

	return true, fmt.Sprintf("WIP OK: %d/%d active slots used.", n, s.MaxActiveProjects), nil
}

// Activate moves a project from backlog/ to the projects root. The WIP
// gate runs first; a full roster refuses the move. Returns the new path.
func Activate(s shed.Settings, slug string) (string, error) {
	n, countErr := CountActiveProjects(s)
	if countErr != nil {
		return "", countErr
	}

	if n >= s.MaxActiveProjects {
		return "", limitError(n, s.MaxActiveProjects)
	}

	src := s.BacklogPath(slug)

	_, statErr := os.Stat(src)
	if statErr != nil {
		return "", fmt.Errorf("%w: %s", ErrNotInBacklog, slug)
	}

	dst := s.ProjectPath(slug)

	renameErr := os.Rename(src, dst)
	if renameErr != nil {
		return "", fmt.Errorf("cannot activate %s: %w", slug, renameErr)
	}

	return dst, nil
}

// Archive moves a project from the projects root to archive/. Returns the
// new path.
func Archive(s shed.Settings, slug string) (string, error) {
	src := s.ProjectPath(slug)

	_, statErr := os.Stat(src)
	if statErr != nil {
		return "", fmt.Errorf("%w: %s", ErrNotActive, slug)
	}

	dst := s.ArchivePath(slug)

	renameErr := os.Rename(src, dst)
	if renameErr != nil {
		return "", fmt.Errorf("cannot archive %s: %w", slug, renameErr)
	}

	return dst, nil
}

// CurrentStatus returns a summary of current WIP state.
func CurrentStatus(s shed.Settings, today time.Time) (Status, error) {
	active, activeErr := CountActiveProjects(s)
	if activeErr != nil {
		return Status{}, activeErr
	}

	daily, dailyErr := CountDailyTasks(s, today)
	if dailyErr != nil {
		return Status{}, dailyErr
	}

	return Status{
		ActiveProjects:    active,
		MaxActiveProjects: s.MaxActiveProjects,
		ProjectsAvailable: s.MaxActiveProjects - active,
		DailyTasks:        daily,
		MaxDailyTasks:     s.MaxDailyTasks,
		DailyAvailable:    s.MaxDailyTasks - daily,
	}, nil
}

func limitError(n, limit int) error {
	return fmt.Errorf(
		"%w: %d/%d active projects. Archive or complete a project before activating a new one.",
		ErrWIPLimit, n, limit,
	)
}
