package cli_test

import (
	"strings"
	"testing"

	"github.com/AdzeKit/AdzeKit/internal/cli"
	"github.com/AdzeKit/AdzeKit/internal/note"
)

func TestSweepMovesClosedLoops(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	c.WriteShedFile("loops/open.md",
		"# Open Loops\n\n"+
			"- [x] (S) [2026-02-10] Buy hinges\n"+
			"- [ ] [2026-02-11] Sand the door\n"+
			"- [x] [2026-02-12] Order varnish\n")

	stdout, stderr, exitCode := c.Run("sweep")

	if got, want := exitCode, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d, stderr=%s", got, want, stderr)
	}

	want := "  swept: Buy hinges\n  swept: Order varnish\n\n2 loop(s) moved to closed.md\n"
	if got := stdout; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	open := c.ReadShedFile("loops/open.md")
	cli.AssertContains(t, open, "Sand the door")
	cli.AssertNotContains(t, open, "Buy hinges")
	cli.AssertNotContains(t, open, "Order varnish")

	// Swept loops are re-stamped with the sweep date.
	iso := today().Format(note.DateLayout)
	closed := c.ReadShedFile("loops/closed.md")
	cli.AssertContains(t, closed, "# Closed Loops")
	cli.AssertContains(t, closed, "- [x] (S) ["+iso+"] Buy hinges")
	cli.AssertContains(t, closed, "- [x] ["+iso+"] Order varnish")
}

func TestSweepLogsToDailyNote(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	c.WriteShedFile("loops/open.md", "# Open Loops\n\n- [x] [2026-02-10] Buy hinges\n")

	c.MustRun("sweep")

	iso := today().Format(note.DateLayout)
	daily := c.ReadShedFile("daily/" + iso + ".md")

	cli.AssertContains(t, daily, "- Swept 1 loop(s) closed")

	// The entry lands under the Log heading, not at the end of the file.
	logIdx := strings.Index(daily, "## Log")
	sweptIdx := strings.Index(daily, "- Swept 1 loop(s) closed")
	reflectionIdx := strings.Index(daily, "## Evening: Reflection")

	if !(logIdx < sweptIdx && sweptIdx < reflectionIdx) {
		t.Errorf("sweep entry misplaced:\n%s", daily)
	}
}

func TestSweepWithNothingToDo(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.MustRun("init")

	c.WriteShedFile("loops/open.md", "# Open Loops\n\n- [ ] [2026-02-10] Still waiting\n")

	stdout := c.MustRun("sweep")

	if got, want := stdout, "Nothing to sweep -- no closed loops in open.md."; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	if c.ShedFileExists("loops/closed.md") {
		t.Error("closed.md should not be created when nothing was swept")
	}

	cli.AssertContains(t, c.ReadShedFile("loops/open.md"), "Still waiting")
}
