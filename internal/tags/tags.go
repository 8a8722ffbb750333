// Package tags scans the shed's markdown files for inline #tags and
// builds an in-memory index. There is no separate tag registry; the
// filesystem is the source of truth.
package tags

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// A tag is "#" followed by a letter and any run of letters, digits, or
// hyphens, not glued to the tail of a word. The leading group stands in
// for a lookbehind.
var tagRe = regexp.MustCompile(`(^|[^0-9A-Za-z_])#([a-zA-Z][a-zA-Z0-9-]*)`)

// Extract returns the lowercased tag names in text, deduplicated and
// sorted, without the leading "#".
func Extract(text string) []string {
	seen := make(map[string]struct{})

	for _, m := range tagRe.FindAllStringSubmatch(text, -1) {
		seen[strings.ToLower(m[2])] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}

	slices.Sort(out)

	return out
}

// Index maps a tag to the shed-relative paths of the files containing it,
// in walk order.
type Index map[string][]string

// BuildIndex scans every .md file in the shed, excluding stock/ and
// drafts/ which are not part of the backbone.
func BuildIndex(s shed.Settings) (Index, error) {
	var files []string

	walkErr := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == s.StockDir() || path == s.DraftsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, relErr := filepath.Rel(s.Root, path)
		if relErr != nil {
			return relErr
		}

		files = append(files, rel)

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("cannot scan shed: %w", walkErr)
	}

	slices.Sort(files)

	index := make(Index)

	for _, rel := range files {
		data, readErr := os.ReadFile(filepath.Join(s.Root, rel))
		if readErr != nil {
			return nil, fmt.Errorf("cannot read %s: %w", rel, readErr)
		}

		for _, tag := range Extract(string(data)) {
			index[tag] = append(index[tag], rel)
		}
	}

	return index, nil
}

// Files returns the files containing a tag. A leading "#" and any casing
// on the query are tolerated.
func (idx Index) Files(tag string) []string {
	return idx[strings.ToLower(strings.TrimLeft(tag, "#"))]
}

// Tags returns every indexed tag, sorted.
func (idx Index) Tags() []string {
	out := make([]string, 0, len(idx))
	for tag := range idx {
		out = append(out, tag)
	}

	slices.Sort(out)

	return out
}

// TagsForFile returns the tags found in a single file.
func TagsForFile(path string) ([]string, error) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, readErr)
	}

	return Extract(string(data)), nil
}

// snippet is one VS Code/Cursor snippet entry.
type snippet struct {
	Prefix      string `json:"prefix"`
	Body        string `json:"body"`
	Scope       string `json:"scope"`
	Description string `json:"description"`
}

// GenerateSnippets writes .vscode/adzekit.code-snippets so every tag in
// the shed autocompletes after typing "#". Returns the generated path.
func GenerateSnippets(s shed.Settings) (string, error) {
	index, buildErr := BuildIndex(s)
	if buildErr != nil {
		return "", buildErr
	}

	snippets := make(map[string]snippet)

	for _, tag := range index.Tags() {
		snippets["tag: "+tag] = snippet{
			Prefix:      "#" + tag,
			Body:        "#" + tag,
			Scope:       "markdown",
			Description: "AdzeKit tag: #" + tag,
		}
	}

	data, marshalErr := json.MarshalIndent(snippets, "", "  ")
	if marshalErr != nil {
		return "", fmt.Errorf("cannot render snippets: %w", marshalErr)
	}

	store := shed.NewDirStore(s.Root)

	writeErr := store.WriteFile(filepath.Join(".vscode", "adzekit.code-snippets"), append(data, '\n'))
	if writeErr != nil {
		return "", writeErr
	}

	return s.SnippetsPath(), nil
}
