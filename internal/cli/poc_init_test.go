package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/AdzeKit/AdzeKit/internal/cli"
)

func TestPocInitPrefillsFromProject(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")
	c.WriteShedFile("projects/relay.md", "# Relay Rebuild\n\n## Context\nOld wiring is brittle.\n\n## Log\n- [ ] Map the circuits\n")

	stdout := c.MustRun("poc-init", "relay")

	want := "Generated POC template: " + filepath.Join(c.Dir, "stock", "relay", "poc-design.md")
	if got := stdout; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	doc := c.ReadShedFile("stock/relay/poc-design.md")
	cli.AssertContains(t, doc, "# [POC] Relay Rebuild")
	cli.AssertContains(t, doc, "Old wiring is brittle.")
	cli.AssertContains(t, doc, "- [ ] Map the circuits")
}

func TestPocInitDefaultsTasksWithoutLog(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")
	c.WriteShedFile("projects/backlog/relay.md", "# Relay Rebuild\n")

	c.MustRun("poc-init", "relay")

	doc := c.ReadShedFile("stock/relay/poc-design.md")
	cli.AssertContains(t, doc, "- [ ]\n- [ ]\n- [ ]")
}

func TestPocInitFailsForUnknownSlug(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	stderr := c.MustFail("poc-init", "ghost")
	cli.AssertContains(t, stderr, "no project file found: ghost")
	cli.AssertContains(t, stderr, "run: adze project ghost")
}

func TestPocInitRequiresSlug(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	stderr := c.MustFail("poc-init")
	cli.AssertContains(t, stderr, "slug required")
}
