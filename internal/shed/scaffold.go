package shed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AdzeKit/AdzeKit/internal/note"
)

const dailyTemplate = `# %s %s

## Morning: Intention
- [ ] Top priority:
- [ ] Close loop:

## Log

## Evening: Reflection
- **Finished:**
- **Blocked:**
- **Tomorrow:**
`

const projectTemplate = `# %s

## Context

## Log

## Notes
`

const reviewTemplate = `# Weekly Review -- %d Week %02d (%s)

## Open Loops
- Review all loops in ` + "`loops/open.md`" + `
- For each: act on it, schedule it, or close it

## Active Projects
- Check progress on each project in ` + "`projects/`" + `
- Any project stale for >7 days? Kill, defer, or commit.

## Decisions
- What am I saying no to this week?
- What trade-offs am I not admitting to myself?

## Reflection
- What drained me this week?
- What energized me?
- What will I stop doing next week?
`

const inboxSeed = `# Inbox

Capture anything here. No structure needed.

- [%s] Example: remember to follow up with Alice about the API estimate
`

const openLoopsSeed = `# Open Loops

## [%s] Example: Send Alice the API estimate

- **Who:** Alice
- **What:** Provide architecture proposal and timeline estimate
- **Due:** %s
- **Status:** Open
- **Next:** Draft estimate and send by end of week

`

const knowledgeSeed = `# Example Knowledge Note

#example

Evergreen notes capture ideas you want to keep and revisit.

Write one concept per file. Link to related notes with [[wikilinks]].
`

const gitignoreSeed = "stock/\ndrafts/\n"

// EnsureShed creates the shed directory tree. Existing directories and
// files are left untouched.
func EnsureShed(s Settings) error {
	for _, dir := range []string{
		s.LoopsDir(),
		s.ClosedLoopsDir(),
		s.ProjectsDir(),
		s.BacklogDir(),
		s.ArchiveDir(),
		s.DailyDir(),
		s.KnowledgeDir(),
		s.ReviewsDir(),
		s.StockDir(),
		s.DraftsDir(),
	} {
		mkdirErr := os.MkdirAll(dir, dirPerms)
		if mkdirErr != nil {
			return fmt.Errorf("cannot create %s: %w", dir, mkdirErr)
		}
	}

	for _, path := range []string{s.OpenLoopsPath(), s.InboxPath()} {
		touchErr := touch(path)
		if touchErr != nil {
			return touchErr
		}
	}

	return nil
}

// InitShed creates the directory tree, writes the marker, and seeds an
// example file for every backbone file type. Each seed is skipped when its
// target already has content, so running init twice never overwrites work.
func InitShed(s Settings, today time.Time) error {
	ensureErr := EnsureShed(s)
	if ensureErr != nil {
		return ensureErr
	}

	iso := today.Format(note.DateLayout)

	seedErr := seedIfEmpty(s.InboxPath(), fmt.Sprintf(inboxSeed, iso))
	if seedErr != nil {
		return seedErr
	}

	seedErr = seedIfEmpty(s.OpenLoopsPath(), fmt.Sprintf(openLoopsSeed, iso, iso))
	if seedErr != nil {
		return seedErr
	}

	_, dailyErr := CreateDailyNote(s, today)
	if dailyErr != nil {
		return dailyErr
	}

	hasProject, scanErr := hasMarkdownFile(s.ProjectsDir())
	if scanErr != nil {
		return scanErr
	}

	if !hasProject {
		_, projErr := CreateProject(s, "example-project", "Example Project", false)
		if projErr != nil {
			return projErr
		}
	}

	empty, scanErr := dirEmpty(s.ReviewsDir())
	if scanErr != nil {
		return scanErr
	}

	if empty {
		_, reviewErr := CreateReview(s, today)
		if reviewErr != nil {
			return reviewErr
		}
	}

	empty, scanErr = dirEmpty(s.KnowledgeDir())
	if scanErr != nil {
		return scanErr
	}

	if empty {
		noteErr := seedIfEmpty(filepath.Join(s.KnowledgeDir(), "example-note.md"), knowledgeSeed)
		if noteErr != nil {
			return noteErr
		}
	}

	gitignoreErr := seedIfEmpty(filepath.Join(s.Root, ".gitignore"), gitignoreSeed)
	if gitignoreErr != nil {
		return gitignoreErr
	}

	return s.WriteMarker()
}

// CreateDailyNote creates the daily note for day from the template.
// An existing note is returned untouched.
func CreateDailyNote(s Settings, day time.Time) (string, error) {
	path := s.DailyPath(day)

	_, statErr := os.Stat(path)
	if statErr == nil {
		return path, nil
	}

	iso := day.Format(note.DateLayout)
	content := fmt.Sprintf(dailyTemplate, iso, day.Weekday().String())

	writeErr := writeFileAtomic(path, []byte(content))
	if writeErr != nil {
		return "", writeErr
	}

	return path, nil
}

// CreateProject creates a project file from the template. New projects go
// to backlog/ unless backlog is false, which places them in the projects
// root (the active state). An existing file is returned untouched.
func CreateProject(s Settings, slug, title string, backlog bool) (string, error) {
	path := s.ProjectPath(slug)
	if backlog {
		path = s.BacklogPath(slug)
	}

	_, statErr := os.Stat(path)
	if statErr == nil {
		return path, nil
	}

	if title == "" {
		title = slug
	}

	writeErr := writeFileAtomic(path, []byte(fmt.Sprintf(projectTemplate, title)))
	if writeErr != nil {
		return "", writeErr
	}

	return path, nil
}

// CreateReview creates the weekly review file for the week containing day.
// The file is keyed by calendar year and ISO week number. An existing
// review is returned untouched.
func CreateReview(s Settings, day time.Time) (string, error) {
	_, week := day.ISOWeek()
	year := day.Year()
	path := filepath.Join(s.ReviewsDir(), fmt.Sprintf("%d-W%02d.md", year, week))

	_, statErr := os.Stat(path)
	if statErr == nil {
		return path, nil
	}

	content := fmt.Sprintf(reviewTemplate, year, week, day.Format(note.DateLayout))

	writeErr := writeFileAtomic(path, []byte(content))
	if writeErr != nil {
		return "", writeErr
	}

	return path, nil
}

// AppendSweepLog records a sweep in day's daily note, directly under the
// "## Log" heading. The note is created first if absent; a note without a
// Log section gets the entry appended at the end.
func AppendSweepLog(s Settings, count int, day time.Time) error {
	path, createErr := CreateDailyNote(s, day)
	if createErr != nil {
		return createErr
	}

	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return fmt.Errorf("cannot read daily note: %w", readErr)
	}

	content := string(data)
	entry := fmt.Sprintf("- Swept %d loop(s) closed", count)

	const marker = "## Log"

	idx := strings.Index(content, marker)
	if idx == -1 {
		content = strings.TrimRight(content, " \t\r\n") + "\n\n" + entry + "\n"
	} else {
		insertAt := idx + len(marker)
		for insertAt < len(content) && content[insertAt] == '\n' {
			insertAt++
		}

		content = content[:insertAt] + entry + "\n" + content[insertAt:]
	}

	return writeFileAtomic(path, []byte(content))
}

func touch(path string) error {
	_, statErr := os.Stat(path)
	if statErr == nil {
		return nil
	}

	return writeFileAtomic(path, nil)
}

// seedIfEmpty writes content unless the file already has bytes in it.
func seedIfEmpty(path, content string) error {
	info, statErr := os.Stat(path)
	if statErr == nil && info.Size() > 0 {
		return nil
	}

	return writeFileAtomic(path, []byte(content))
}

func hasMarkdownFile(dir string) (bool, error) {
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		return false, fmt.Errorf("cannot read %s: %w", dir, readErr)
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			return true, nil
		}
	}

	return false, nil
}

func dirEmpty(dir string) (bool, error) {
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		return false, fmt.Errorf("cannot read %s: %w", dir, readErr)
	}

	return len(entries) == 0, nil
}
