// Package poc generates proof-of-concept design documents in the stock/
// directory. When a project file exists for the slug, the title, context,
// and tasks are pre-filled from it; everything else is left blank for the
// human or LLM to complete.
package poc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AdzeKit/AdzeKit/internal/note"
	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// ErrNoProjectFile means no project markdown file exists for the slug in
// any project directory.
var ErrNoProjectFile = errors.New("no project file found")

const pocTemplate = `# [POC] %s

*Created %s · Status: Not Started*

## TL;DR

**Problem:**
**Solution:**
**Goal:**

## Goals & Non-Goals

**Goals**

-
-
-

**Non-goals**

-
-

## Problem

%s

### Why Now

-
-

## Solution Overview

Describe the approach at a high level -- what are we building, how does it work, and why this design over alternatives?

## Requirements

Each requirement has a success metric. We evaluate the POC against these.

- **R-1:** *Requirement description.* KPI: metric ≥ target.
- **R-2:** *Requirement description.* KPI: metric ≥ target.
- **R-3:** *Requirement description.* KPI: metric ≥ target.

### Component Map

- **Component A** --
- **Component B** --
- **Component C** --

## Prerequisites

Describe what must be in place before work begins -- data access, environments, permissions, dependencies.

- [ ] Access credentials for all data sources
- [ ] Target schema or output format defined
- [ ] Development environment validated
- [ ] Sample data available

## Implementation Plan

### Milestones

- **Phase 0 — Setup & infra:**
- **Phase 1 — Core pipeline:**
- **Phase 2 — Integration & testing:**
- **Phase 3 — Evaluation & readout:**

### Tasks

%s

## Results

> *Populate after PoC execution.*

- What worked:
- What didn't:
- Open questions for next phase:
`

// Generate writes stock/<slug>/poc-design.md and returns its path. The
// slug must name an existing project file in any of the project
// directories.
func Generate(s shed.Settings, slug string, today time.Time) (string, error) {
	projectPath, found := findProject(s, slug)
	if !found {
		return "", fmt.Errorf("%w: %s (run: adze project %s)", ErrNoProjectFile, slug, slug)
	}

	data, readErr := os.ReadFile(projectPath)
	if readErr != nil {
		return "", fmt.Errorf("cannot read project %s: %w", slug, readErr)
	}

	fields := extractFields(slug, string(data))

	tasks := "- [ ]\n- [ ]\n- [ ]"
	if len(fields.tasks) > 0 {
		tasks = strings.Join(fields.tasks, "\n")
	}

	content := fmt.Sprintf(pocTemplate,
		fields.title, today.Format(note.DateLayout), fields.context, tasks)

	store := shed.NewDirStore(s.Root)

	rel := filepath.Join("stock", slug, "poc-design.md")
	if writeErr := store.WriteFile(rel, []byte(content)); writeErr != nil {
		return "", writeErr
	}

	return store.Abs(rel), nil
}

// findProject searches the project directories for <slug>.md, active
// first.
func findProject(s shed.Settings, slug string) (string, bool) {
	candidates := []string{
		s.ProjectPath(slug),
		s.BacklogPath(slug),
		s.ArchivePath(slug),
	}

	for _, path := range candidates {
		if _, statErr := os.Stat(path); statErr == nil {
			return path, true
		}
	}

	return "", false
}

// projectFields is what the generator pre-fills from a project file.
type projectFields struct {
	title   string
	context string
	tasks   []string
}

// extractFields scans a project file for its title, the nonempty lines of
// "## Context", and the nonempty lines of "## Log". Unlike the loop and
// note parsers, section headings here must match exactly, and log lines
// are taken verbatim rather than as checklist items.
func extractFields(slug, text string) projectFields {
	f := projectFields{title: slug}

	var contextLines []string

	section := ""

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		if strings.HasPrefix(line, "# ") && !strings.HasPrefix(line, "## ") {
			f.title = titleWithoutTags(strings.TrimSpace(strings.TrimLeft(line, "# ")))

			continue
		}

		switch strings.ToLower(line) {
		case "## context":
			section = "context"

			continue
		case "## log":
			section = "log"

			continue
		case "## notes":
			section = "notes"

			continue
		}

		if strings.HasPrefix(line, "## ") {
			section = ""

			continue
		}

		if line == "" {
			continue
		}

		switch section {
		case "context":
			contextLines = append(contextLines, line)
		case "log":
			f.tasks = append(f.tasks, line)
		}
	}

	f.context = strings.Join(contextLines, "\n")

	return f
}

// titleWithoutTags drops #tag words from a heading, keeping the raw
// heading when nothing else remains.
func titleWithoutTags(raw string) string {
	var kept []string

	for _, w := range strings.Fields(raw) {
		if !strings.HasPrefix(w, "#") {
			kept = append(kept, w)
		}
	}

	title := strings.Join(kept, " ")
	if title == "" {
		return raw
	}

	return title
}
