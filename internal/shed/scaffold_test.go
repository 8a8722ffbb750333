package shed_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// Contract: EnsureShed creates the full backbone directory tree plus empty
// loops/open.md and inbox.md.
func Test_EnsureShed_Creates_Directory_Tree(t *testing.T) {
	t.Parallel()

	s := testSettings(t)
	require.NoError(t, shed.EnsureShed(s))

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
		info, statErr := os.Stat(dir)
		require.NoError(t, statErr, dir)
		assert.True(t, info.IsDir(), dir)
	}

	assert.FileExists(t, s.OpenLoopsPath())
	assert.FileExists(t, s.InboxPath())
}

// Contract: EnsureShed never truncates files that already have content.
func Test_EnsureShed_Keeps_Existing_Files(t *testing.T) {
	t.Parallel()

	s := testSettings(t)
	require.NoError(t, os.MkdirAll(s.LoopsDir(), 0o750))
	require.NoError(t, os.WriteFile(s.OpenLoopsPath(), []byte("# Mine\n"), 0o600))

	require.NoError(t, shed.EnsureShed(s))

	data, readErr := os.ReadFile(s.OpenLoopsPath())
	require.NoError(t, readErr)
	assert.Equal(t, "# Mine\n", string(data))
}

// Contract: InitShed seeds an example file for every backbone file type
// and writes the marker.
func Test_InitShed_Seeds_Example_Files(t *testing.T) {
	t.Parallel()

	s := testSettings(t)
	today := day("2026-02-17")

	require.NoError(t, shed.InitShed(s, today))

	inbox, readErr := os.ReadFile(s.InboxPath())
	require.NoError(t, readErr)
	assert.Contains(t, string(inbox), "# Inbox")
	assert.Contains(t, string(inbox), "- [2026-02-17] Example:")

	loops, loopsErr := shed.LoadOpenLoops(s, today)
	require.NoError(t, loopsErr)
	require.Len(t, loops, 1, "seeded open.md parses as one structured loop")
	assert.Equal(t, "Example: Send Alice the API estimate", loops[0].Title)
	assert.Equal(t, "Alice", loops[0].Who)

	assert.FileExists(t, s.DailyPath(today))
	assert.FileExists(t, s.ProjectPath("example-project"))
	assert.FileExists(t, filepath.Join(s.ReviewsDir(), "2026-W08.md"))
	assert.FileExists(t, filepath.Join(s.KnowledgeDir(), "example-note.md"))

	gitignore, giErr := os.ReadFile(filepath.Join(s.Root, ".gitignore"))
	require.NoError(t, giErr)
	assert.Contains(t, string(gitignore), "stock/")
	assert.Contains(t, string(gitignore), "drafts/")

	marker, markerErr := os.ReadFile(s.MarkerPath())
	require.NoError(t, markerErr)
	assert.Contains(t, string(marker), "backbone_version = 1")
	assert.True(t, s.IsInitialized())
}

// Contract: rerunning InitShed never overwrites user content.
func Test_InitShed_Preserves_Content_When_Rerun(t *testing.T) {
	t.Parallel()

	s := testSettings(t)
	today := day("2026-02-17")
	require.NoError(t, shed.InitShed(s, today))

	require.NoError(t, os.WriteFile(s.InboxPath(), []byte("my captures\n"), 0o600))
	require.NoError(t, os.WriteFile(s.OpenLoopsPath(), []byte("# Open Loops\n\n- [ ] Mine\n"), 0o600))

	require.NoError(t, shed.InitShed(s, today))

	inbox, _ := os.ReadFile(s.InboxPath())
	assert.Equal(t, "my captures\n", string(inbox))

	open, _ := os.ReadFile(s.OpenLoopsPath())
	assert.Equal(t, "# Open Loops\n\n- [ ] Mine\n", string(open))
}

// Contract: the example project is only seeded into a projects root that
// has no project files yet.
func Test_InitShed_Skips_Example_Project_When_Projects_Exist(t *testing.T) {
	t.Parallel()

	s := testSettings(t)
	require.NoError(t, os.MkdirAll(s.ProjectsDir(), 0o750))
	require.NoError(t, os.WriteFile(s.ProjectPath("mine"), []byte("# Mine\n"), 0o600))

	require.NoError(t, shed.InitShed(s, day("2026-02-17")))

	assert.NoFileExists(t, s.ProjectPath("example-project"))
}

// Contract: the daily note renders date, weekday, and the three fixed
// sections.
func Test_CreateDailyNote_Renders_Template(t *testing.T) {
	t.Parallel()

	s := testSettings(t)

	path, err := shed.CreateDailyNote(s, day("2026-02-17"))
	require.NoError(t, err)
	assert.Equal(t, s.DailyPath(day("2026-02-17")), path)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "# 2026-02-17 Tuesday\n"))
	assert.Contains(t, content, "## Morning: Intention\n- [ ] Top priority:\n- [ ] Close loop:\n")
	assert.Contains(t, content, "## Log\n")
	assert.Contains(t, content, "## Evening: Reflection\n- **Finished:**\n- **Blocked:**\n- **Tomorrow:**\n")
}

// Contract: creating a daily note twice does not overwrite it.
func Test_CreateDailyNote_Keeps_Existing_Note(t *testing.T) {
	t.Parallel()

	s := testSettings(t)
	today := day("2026-02-17")

	path, err := shed.CreateDailyNote(s, today)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("custom content"), 0o600))

	again, err := shed.CreateDailyNote(s, today)
	require.NoError(t, err)
	assert.Equal(t, path, again)

	data, _ := os.ReadFile(again)
	assert.Equal(t, "custom content", string(data))
}

// Contract: new projects go to backlog/ by default; backlog=false places
// them in the projects root as active.
func Test_CreateProject_Places_File_By_State(t *testing.T) {
	t.Parallel()

	s := testSettings(t)

	backlogPath, err := shed.CreateProject(s, "test-proj", "Test Project", true)
	require.NoError(t, err)
	assert.Equal(t, s.BacklogPath("test-proj"), backlogPath)

	activePath, err := shed.CreateProject(s, "active-proj", "", false)
	require.NoError(t, err)
	assert.Equal(t, s.ProjectPath("active-proj"), activePath)

	data, readErr := os.ReadFile(backlogPath)
	require.NoError(t, readErr)
	content := string(data)

	assert.Contains(t, content, "# Test Project\n")
	assert.Contains(t, content, "## Context\n")
	assert.Contains(t, content, "## Log\n")
	assert.Contains(t, content, "## Notes\n")

	activeData, _ := os.ReadFile(activePath)
	assert.Contains(t, string(activeData), "# active-proj\n", "title falls back to slug")
}

// Contract: creating a project twice does not overwrite it.
func Test_CreateProject_Keeps_Existing_File(t *testing.T) {
	t.Parallel()

	s := testSettings(t)

	path, err := shed.CreateProject(s, "test-proj", "Test Project", true)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("custom content"), 0o600))

	again, err := shed.CreateProject(s, "test-proj", "", true)
	require.NoError(t, err)

	data, _ := os.ReadFile(again)
	assert.Equal(t, "custom content", string(data))
}

// Contract: reviews are keyed by calendar year plus ISO week, and the
// header names the week and the date it was created for.
func Test_CreateReview_Uses_ISO_Week(t *testing.T) {
	t.Parallel()

	s := testSettings(t)

	path, err := shed.CreateReview(s, day("2026-01-06"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.ReviewsDir(), "2026-W02.md"), path)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "# Weekly Review -- 2026 Week 02 (2026-01-06)\n"))
	assert.Contains(t, content, "## Open Loops\n")
	assert.Contains(t, content, "## Active Projects\n")
	assert.Contains(t, content, "## Decisions\n")
	assert.Contains(t, content, "## Reflection\n")
}

// Contract: creating a review twice does not overwrite it.
func Test_CreateReview_Keeps_Existing_File(t *testing.T) {
	t.Parallel()

	s := testSettings(t)

	path, err := shed.CreateReview(s, day("2026-01-06"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("custom content"), 0o600))

	_, err = shed.CreateReview(s, day("2026-01-06"))
	require.NoError(t, err)

	data, _ := os.ReadFile(path)
	assert.Equal(t, "custom content", string(data))
}

// Contract: the sweep entry lands directly under the "## Log" heading,
// above any later section.
func Test_AppendSweepLog_Inserts_Under_Log_Heading(t *testing.T) {
	t.Parallel()

	s := testSettings(t)
	today := day("2026-02-17")

	_, err := shed.CreateDailyNote(s, today)
	require.NoError(t, err)
	require.NoError(t, shed.AppendSweepLog(s, 2, today))

	data, readErr := os.ReadFile(s.DailyPath(today))
	require.NoError(t, readErr)

	assert.Contains(t, string(data), "## Log\n\n- Swept 2 loop(s) closed\n## Evening: Reflection")
}

// Contract: a note without a Log section gets the sweep entry appended at
// the end.
func Test_AppendSweepLog_Appends_When_No_Log_Section(t *testing.T) {
	t.Parallel()

	s := testSettings(t)
	today := day("2026-02-17")

	require.NoError(t, os.MkdirAll(s.DailyDir(), 0o750))
	require.NoError(t, os.WriteFile(s.DailyPath(today), []byte("# 2026-02-17 Tuesday\n\nfreeform\n"), 0o600))

	require.NoError(t, shed.AppendSweepLog(s, 1, today))

	data, _ := os.ReadFile(s.DailyPath(today))
	assert.Equal(t, "# 2026-02-17 Tuesday\n\nfreeform\n\n- Swept 1 loop(s) closed\n", string(data))
}

// Contract: sweeping with no daily note first creates one from the
// template.
func Test_AppendSweepLog_Creates_Note_When_Missing(t *testing.T) {
	t.Parallel()

	s := testSettings(t)
	today := day("2026-02-17")

	require.NoError(t, shed.AppendSweepLog(s, 3, today))

	data, readErr := os.ReadFile(s.DailyPath(today))
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "# 2026-02-17 Tuesday")
	assert.Contains(t, string(data), "- Swept 3 loop(s) closed")
}

// testSettings returns defaults rooted in a fresh temp dir.
func testSettings(t *testing.T) shed.Settings {
	t.Helper()

	s := shed.DefaultSettings()
	s.Root = t.TempDir()

	return s
}

// day parses an ISO date for test fixtures.
func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}

	return t
}
