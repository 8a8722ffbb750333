package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/AdzeKit/AdzeKit/internal/note"
	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// ErrBadArgument means a required tool argument is absent or not a string.
var ErrBadArgument = errors.New("argument missing or not a string")

// ShedTools exposes the shed to the agent. The agent can read the
// backbone (daily notes, loops, projects, inbox) but never writes to it;
// the backbone is the human's domain. Writes go to stock/ for raw
// material and drafts/ for proposals awaiting human review.
type ShedTools struct {
	settings shed.Settings
	store    *shed.DirStore
	clock    shed.Clock
}

// NewShedTools wires the shed tools against one shed.
func NewShedTools(s shed.Settings, clock shed.Clock) *ShedTools {
	return &ShedTools{
		settings: s,
		store:    shed.NewDirStore(s.Root),
		clock:    clock,
	}
}

// RegisterAll adds every shed tool to the registry.
func (t *ShedTools) RegisterAll(r *Registry) error {
	defs := []Def{
		{
			Name:        "shed_get_open_loops",
			Description: "Get all open loops (commitments) from the shed. Read-only.",
			Run:         t.openLoops,
		},
		{
			Name:        "shed_get_today",
			Description: "Get today's daily note content. Read-only.",
			Run:         t.todayNote,
		},
		{
			Name:        "shed_get_inbox",
			Description: "Read the shed inbox (quick capture items). Read-only.",
			Run:         t.inbox,
		},
		{
			Name:        "shed_get_projects",
			Description: "List active and backlog projects with their progress. Read-only.",
			Run:         t.projects,
		},
		{
			Name: "shed_propose_loop",
			Description: "Propose a new loop to add to the shed. Writes a proposal to drafts/ " +
				"for the human to review and approve. Does NOT modify open.md.",
			Params: []Param{
				{Name: "title", Type: "string", Description: "Short description of the commitment.", Required: true},
				{Name: "who", Type: "string", Description: "Person this commitment is with (optional)."},
				{Name: "size", Type: "string", Description: "T-shirt size: XS, S, M, L, XL (optional)."},
				{Name: "due_date", Type: "string", Description: "Due date in YYYY-MM-DD format (optional)."},
				{Name: "reason", Type: "string", Description: "Why this loop should be added (context for the human)."},
			},
			Run: t.proposeLoop,
		},
		{
			Name: "shed_propose_inbox_item",
			Description: "Propose an item to add to the shed inbox. Writes a proposal to drafts/ " +
				"for the human to review. Does NOT modify inbox.md.",
			Params: []Param{
				{Name: "text", Type: "string", Description: "The text to propose adding to the inbox.", Required: true},
			},
			Run: t.proposeInboxItem,
		},
		{
			Name: "shed_save_summary",
			Description: "Save an agent-generated summary or analysis to drafts/. Use this " +
				"to persist triage results, email summaries, or status reports.",
			Params: []Param{
				{Name: "filename", Type: "string", Description: "Name for the file (e.g. 'email-triage-2026-02-26.md').", Required: true},
				{Name: "content", Type: "string", Description: "The markdown content to save.", Required: true},
			},
			Run: t.saveSummary,
		},
		{
			Name: "shed_save_to_stock",
			Description: "Save raw material (transcripts, notes, exports) to stock/<project>/. " +
				"Stock is for unprocessed input that supports a project.",
			Params: []Param{
				{Name: "project_slug", Type: "string", Description: "Project slug for the subdirectory.", Required: true},
				{Name: "filename", Type: "string", Description: "File name (e.g. 'meeting-notes-2026-02-26.md').", Required: true},
				{Name: "content", Type: "string", Description: "The content to save.", Required: true},
			},
			Run: t.saveToStock,
		},
		{
			Name:        "shed_list_drafts",
			Description: "List all files in drafts/ awaiting human review.",
			Run:         t.listDrafts,
		},
	}

	for _, def := range defs {
		if registerErr := r.Register(def); registerErr != nil {
			return registerErr
		}
	}

	return nil
}

type loopPayload struct {
	Title  string  `json:"title"`
	Date   string  `json:"date"`
	Size   string  `json:"size"`
	Due    *string `json:"due"`
	Status string  `json:"status"`
	Who    string  `json:"who"`
}

type loopsPayload struct {
	Count int           `json:"count"`
	Loops []loopPayload `json:"loops"`
}

func (t *ShedTools) openLoops(map[string]any) (string, error) {
	loops, loadErr := shed.LoadOpenLoops(t.settings, t.clock.Today())
	if loadErr != nil {
		return "", loadErr
	}

	payload := loopsPayload{
		Count: len(loops),
		Loops: make([]loopPayload, 0, len(loops)),
	}

	for _, l := range loops {
		var due *string

		if !l.Due.IsZero() {
			d := l.Due.Format(note.DateLayout)
			due = &d
		}

		payload.Loops = append(payload.Loops, loopPayload{
			Title:  l.Title,
			Date:   l.Date.Format(note.DateLayout),
			Size:   l.Size,
			Due:    due,
			Status: l.Status,
			Who:    l.Who,
		})
	}

	return renderJSON(payload)
}

type taskPayload struct {
	Desc string `json:"desc"`
	Done bool   `json:"done"`
}

type logPayload struct {
	Time string `json:"time"`
	Text string `json:"text"`
}

type todayPayload struct {
	Exists     bool          `json:"exists"`
	Date       string        `json:"date"`
	Intentions []taskPayload `json:"intentions"`
	LogEntries []logPayload  `json:"log_entries"`
	Finished   []string      `json:"finished"`
	Blocked    []string      `json:"blocked"`
	Tomorrow   []string      `json:"tomorrow"`
}

func (t *ShedTools) todayNote(map[string]any) (string, error) {
	n, loadErr := shed.LoadDailyNote(t.settings, t.clock.Today())
	if loadErr != nil {
		return "", loadErr
	}

	if n == nil {
		return renderJSON(map[string]bool{"exists": false})
	}

	payload := todayPayload{
		Exists:     true,
		Date:       n.Date.Format(note.DateLayout),
		Intentions: make([]taskPayload, 0, len(n.Intentions)),
		LogEntries: make([]logPayload, 0, len(n.Log)),
		Finished:   stringList(n.Finished),
		Blocked:    stringList(n.Blocked),
		Tomorrow:   stringList(n.Tomorrow),
	}

	for _, task := range n.Intentions {
		payload.Intentions = append(payload.Intentions, taskPayload{Desc: task.Description, Done: task.Done})
	}

	for _, entry := range n.Log {
		payload.LogEntries = append(payload.LogEntries, logPayload{Time: entry.Time, Text: entry.Text})
	}

	return renderJSON(payload)
}

type inboxPayload struct {
	Content string `json:"content"`
}

func (t *ShedTools) inbox(map[string]any) (string, error) {
	content, loadErr := shed.LoadInbox(t.settings)
	if loadErr != nil {
		return "", loadErr
	}

	return renderJSON(inboxPayload{Content: content})
}

type projectPayload struct {
	Slug       string  `json:"slug"`
	Title      string  `json:"title"`
	State      string  `json:"state"`
	Progress   float64 `json:"progress"`
	TotalTasks int     `json:"total_tasks"`
	DoneTasks  int     `json:"done_tasks"`
}

type projectsPayload struct {
	Count    int              `json:"count"`
	Projects []projectPayload `json:"projects"`
}

func (t *ShedTools) projects(map[string]any) (string, error) {
	projects, loadErr := shed.LoadProjects(t.settings, "")
	if loadErr != nil {
		return "", loadErr
	}

	payload := projectsPayload{
		Count:    len(projects),
		Projects: make([]projectPayload, 0, len(projects)),
	}

	for _, p := range projects {
		done := 0

		for _, task := range p.Tasks {
			if task.Done {
				done++
			}
		}

		payload.Projects = append(payload.Projects, projectPayload{
			Slug:       p.Slug,
			Title:      p.Title,
			State:      string(p.State),
			Progress:   math.Round(p.Progress()*100) / 100,
			TotalTasks: len(p.Tasks),
			DoneTasks:  done,
		})
	}

	return renderJSON(payload)
}

type proposalPayload struct {
	Action       string `json:"action"`
	Formatted    string `json:"formatted"`
	ProposalFile string `json:"proposal_file"`
	Note         string `json:"note"`
}

const reviewNote = "Proposal saved to drafts/. Human must review and apply."

const loopProposalTemplate = "# Proposed Loop\n\n%s\n\n## Reason\n%s\n\n## To apply\nCopy the line above into `loops/open.md`.\n"

func (t *ShedTools) proposeLoop(args map[string]any) (string, error) {
	title, argErr := requiredString(args, "title")
	if argErr != nil {
		return "", argErr
	}

	var due time.Time

	if raw := optionalString(args, "due_date"); raw != "" {
		parsed, parseErr := time.Parse(note.DateLayout, raw)
		if parseErr != nil {
			return "", fmt.Errorf("invalid due_date %q: expected YYYY-MM-DD", raw)
		}

		due = parsed
	}

	today := t.clock.Today()

	formatted := note.FormatLoop(note.Loop{
		Date:   today,
		Title:  title,
		Who:    optionalString(args, "who"),
		Due:    due,
		Status: note.StatusOpen,
		Size:   optionalString(args, "size"),
	})

	reason := optionalString(args, "reason")
	if reason == "" {
		reason = "Agent-suggested loop."
	}

	name := fmt.Sprintf("loop-%s-%s.md", today.Format(note.DateLayout), slugify(title))
	content := fmt.Sprintf(loopProposalTemplate, formatted, reason)

	if writeErr := t.store.WriteFile(filepath.Join("drafts", name), []byte(content)); writeErr != nil {
		return "", writeErr
	}

	return renderJSON(proposalPayload{
		Action:       "propose_add_loop",
		Formatted:    formatted,
		ProposalFile: name,
		Note:         reviewNote,
	})
}

const inboxProposalTemplate = "# Proposed Inbox Item\n\n%s\n\n## To apply\nCopy the line above into `inbox.md`.\n"

func (t *ShedTools) proposeInboxItem(args map[string]any) (string, error) {
	text, argErr := requiredString(args, "text")
	if argErr != nil {
		return "", argErr
	}

	today := t.clock.Today().Format(note.DateLayout)
	entry := fmt.Sprintf("- [%s] %s", today, text)

	name := fmt.Sprintf("inbox-%s-%s.md", today, slugify(truncate(text, 40)))
	content := fmt.Sprintf(inboxProposalTemplate, entry)

	if writeErr := t.store.WriteFile(filepath.Join("drafts", name), []byte(content)); writeErr != nil {
		return "", writeErr
	}

	return renderJSON(proposalPayload{
		Action:       "propose_inbox_item",
		Formatted:    entry,
		ProposalFile: name,
		Note:         reviewNote,
	})
}

type savedPayload struct {
	Status string `json:"status"`
	Path   string `json:"path"`
	Note   string `json:"note,omitempty"`
}

func (t *ShedTools) saveSummary(args map[string]any) (string, error) {
	filename, argErr := requiredString(args, "filename")
	if argErr != nil {
		return "", argErr
	}

	content, contentErr := requiredString(args, "content")
	if contentErr != nil {
		return "", contentErr
	}

	safe := sanitizeFilename(filename)
	if !strings.HasSuffix(safe, ".md") {
		safe += ".md"
	}

	if writeErr := t.store.WriteFile(filepath.Join("drafts", safe), []byte(content)); writeErr != nil {
		return "", writeErr
	}

	return renderJSON(savedPayload{
		Status: "saved",
		Path:   "drafts/" + safe,
		Note:   "Summary saved to drafts/ for review.",
	})
}

func (t *ShedTools) saveToStock(args map[string]any) (string, error) {
	slug, argErr := requiredString(args, "project_slug")
	if argErr != nil {
		return "", argErr
	}

	filename, nameErr := requiredString(args, "filename")
	if nameErr != nil {
		return "", nameErr
	}

	content, contentErr := requiredString(args, "content")
	if contentErr != nil {
		return "", contentErr
	}

	safe := sanitizeFilename(filename)

	if writeErr := t.store.WriteFile(filepath.Join("stock", slug, safe), []byte(content)); writeErr != nil {
		return "", writeErr
	}

	return renderJSON(savedPayload{
		Status: "saved",
		Path:   "stock/" + slug + "/" + safe,
	})
}

type draftsPayload struct {
	Count int      `json:"count"`
	Files []string `json:"files"`
}

func (t *ShedTools) listDrafts(map[string]any) (string, error) {
	entries, readErr := os.ReadDir(t.settings.DraftsDir())
	if readErr != nil {
		if errors.Is(readErr, os.ErrNotExist) {
			return renderJSON(draftsPayload{Count: 0, Files: []string{}})
		}

		return "", fmt.Errorf("cannot list drafts: %w", readErr)
	}

	files := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		files = append(files, entry.Name())
	}

	return renderJSON(draftsPayload{Count: len(files), Files: files})
}

func renderJSON(v any) (string, error) {
	data, marshalErr := json.Marshal(v)
	if marshalErr != nil {
		return "", fmt.Errorf("cannot render tool result: %w", marshalErr)
	}

	return string(data), nil
}

func requiredString(args map[string]any, name string) (string, error) {
	v, ok := args[name].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrBadArgument, name)
	}

	return v, nil
}

func optionalString(args map[string]any, name string) string {
	v, _ := args[name].(string)

	return v
}

// stringList keeps empty lists rendering as [] instead of null.
func stringList(ss []string) []string {
	if ss == nil {
		return []string{}
	}

	return ss
}

// slugify converts free text to a filesystem-safe slug, capped at 50
// characters.
func slugify(text string) string {
	var b strings.Builder

	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}

	return strings.Trim(truncate(b.String(), 50), "-")
}

// sanitizeFilename replaces anything outside letters, digits, and "-_."
// with a hyphen.
func sanitizeFilename(name string) string {
	var b strings.Builder

	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("-_.", r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}

	return b.String()
}

// truncate caps text at n characters, not bytes.
func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[:n])
}
