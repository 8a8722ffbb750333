package shed

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// FileAge holds git-derived timestamps for one file. Zero times mean git
// has no record of the file (untracked file, or the shed is not a git
// repository).
type FileAge struct {
	Path     string // relative to the shed root
	Created  time.Time
	Modified time.Time
}

// AgeDays returns whole days since the file was first committed.
func (a FileAge) AgeDays(today time.Time) (int, bool) {
	return daysSince(a.Created, today)
}

// StaleDays returns whole days since the file was last committed.
func (a FileAge) StaleDays(today time.Time) (int, bool) {
	return daysSince(a.Modified, today)
}

func daysSince(t, today time.Time) (int, bool) {
	if t.IsZero() {
		return 0, false
	}

	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	return int(today.Sub(day).Hours() / 24), true
}

// Age looks up a file's first and last commit dates via git. Git failing
// for any reason (not installed, not a repository, untracked file) yields
// zero times, never an error.
func Age(ctx context.Context, root, rel string) FileAge {
	return FileAge{
		Path:     rel,
		Created:  gitDate(ctx, root, "log", "--diff-filter=A", "--follow", "--format=%aI", "--", rel),
		Modified: gitDate(ctx, root, "log", "-1", "--format=%aI", "--", rel),
	}
}

func gitDate(ctx context.Context, root string, args ...string) time.Time {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = root

	out, runErr := cmd.Output()
	if runErr != nil {
		return time.Time{}
	}

	t, parseErr := time.Parse(time.RFC3339, strings.TrimSpace(string(out)))
	if parseErr != nil {
		return time.Time{}
	}

	return t
}

// ProjectAges returns ages for every project file in the projects root and
// backlog, sorted most-stale first. Files git knows nothing about sort as
// zero days stale.
func ProjectAges(ctx context.Context, s Settings, today time.Time) []FileAge {
	var ages []FileAge

	for _, dir := range []string{s.ProjectsDir(), s.BacklogDir()} {
		entries, readErr := os.ReadDir(dir)
		if readErr != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}

			rel, relErr := filepath.Rel(s.Root, filepath.Join(dir, entry.Name()))
			if relErr != nil {
				continue
			}

			ages = append(ages, Age(ctx, s.Root, rel))
		}
	}

	slices.SortStableFunc(ages, func(a, b FileAge) int {
		staleA, _ := a.StaleDays(today)
		staleB, _ := b.StaleDays(today)

		return staleB - staleA
	})

	return ages
}
