package shed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/tailscale/hujson"

	"github.com/AdzeKit/AdzeKit/internal/note"
)

// Settings holds the resolved configuration for one shed.
type Settings struct {
	// Root is the absolute path to the shed directory.
	Root string

	// From the marker file (and overridable via config/env)
	Backbone          int
	MaxActiveProjects int
	MaxDailyTasks     int
	LoopSLAHours      int
	StaleLoopDays     int

	// Extra holds unrecognized marker keys, preserved on rewrite.
	Extra map[string]string

	// WorkDir is the effective working directory (from -C flag or os.Getwd).
	WorkDir string

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global string // Path to global config if loaded, empty otherwise
	Marker string // Path to shed marker if loaded, empty otherwise
}

// DefaultSettings returns the default configuration.
func DefaultSettings() Settings {
	return Settings{
		Backbone:          BackboneVersion,
		MaxActiveProjects: 3,
		MaxDailyTasks:     5,
		LoopSLAHours:      24,
		StaleLoopDays:     7,
	}
}

// Environment variable names.
const (
	EnvShed              = "ADZEKIT_SHED"
	EnvMaxActiveProjects = "ADZEKIT_MAX_ACTIVE_PROJECTS"
	EnvMaxDailyTasks     = "ADZEKIT_MAX_DAILY_TASKS"
	EnvLoopSLAHours      = "ADZEKIT_LOOP_SLA_HOURS"
	EnvStaleLoopDays     = "ADZEKIT_STALE_LOOP_DAYS"
)

// fileConfig mirrors the global config file. Pointer fields distinguish
// absent keys from explicit zero values.
type fileConfig struct {
	Shed              *string `json:"shed"`
	MaxActiveProjects *int    `json:"max_active_projects"`
	MaxDailyTasks     *int    `json:"max_daily_tasks"`
	LoopSLAHours      *int    `json:"loop_sla_hours"`
	StaleLoopDays     *int    `json:"stale_loop_days"`
}

// globalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/adzekit/config.json if set, otherwise
// ~/.config/adzekit/config.json. Returns empty string if the home
// directory cannot be determined.
func globalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "adzekit", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "adzekit", "config.json")
	}

	return ""
}

// LoadSettingsInput holds the inputs for LoadSettings.
type LoadSettingsInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	ShedOverride    string            // --shed flag value; empty means no override
	Env             map[string]string // environment variables
}

// LoadSettings loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/adzekit/config.json or $XDG_CONFIG_HOME/adzekit/config.json)
// 3. Shed marker file (.adzekit inside the resolved shed)
// 4. Environment variables (ADZEKIT_*)
// 5. CLI overrides.
//
// The shed root itself resolves --shed flag, then ADZEKIT_SHED, then the
// config file, then ~/adzekit. All paths in the returned Settings are absolute.
func LoadSettings(input LoadSettingsInput) (Settings, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Settings{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	s := DefaultSettings()
	s.WorkDir = workDir

	fileCfg, globalPath, err := loadGlobalConfig(workDir, input.ConfigPath, input.Env)
	if err != nil {
		return Settings{}, err
	}

	s.Sources.Global = globalPath
	applyFileConfig(&s, fileCfg)

	root := input.ShedOverride
	if root == "" {
		root = input.Env[EnvShed]
	}

	if root == "" {
		root = s.Root // from config file, if any
	}

	if root == "" {
		home := input.Env["HOME"]
		if home == "" {
			return Settings{}, ErrNoShedPath
		}

		root = filepath.Join(home, "adzekit")
	}

	if !filepath.IsAbs(root) {
		root = filepath.Join(workDir, root)
	}

	s.Root = root

	markerErr := readMarker(&s)
	if markerErr != nil {
		return Settings{}, markerErr
	}

	envErr := applyEnv(&s, input.Env)
	if envErr != nil {
		return Settings{}, envErr
	}

	return s, nil
}

// loadGlobalConfig loads the global user config file if it exists.
// An explicit configPath must exist; the default location is optional.
func loadGlobalConfig(workDir, configPath string, env map[string]string) (fileConfig, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true
	} else {
		cfgFile = globalConfigPath(env)
		if cfgFile == "" {
			return fileConfig{}, "", nil
		}
	}

	data, readErr := os.ReadFile(cfgFile)
	if readErr != nil {
		if os.IsNotExist(readErr) && !mustExist {
			return fileConfig{}, "", nil
		}

		if mustExist {
			return fileConfig{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}

		return fileConfig{}, "", nil
	}

	cfg, parseErr := parseFileConfig(data)
	if parseErr != nil {
		return fileConfig{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, cfgFile, parseErr)
	}

	return cfg, cfgFile, nil
}

func parseFileConfig(data []byte) (fileConfig, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg fileConfig

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	return cfg, nil
}

func applyFileConfig(s *Settings, cfg fileConfig) {
	if cfg.Shed != nil && *cfg.Shed != "" {
		s.Root = *cfg.Shed
	}

	if cfg.MaxActiveProjects != nil {
		s.MaxActiveProjects = *cfg.MaxActiveProjects
	}

	if cfg.MaxDailyTasks != nil {
		s.MaxDailyTasks = *cfg.MaxDailyTasks
	}

	if cfg.LoopSLAHours != nil {
		s.LoopSLAHours = *cfg.LoopSLAHours
	}

	if cfg.StaleLoopDays != nil {
		s.StaleLoopDays = *cfg.StaleLoopDays
	}
}

// readMarker merges the shed marker file into s. A missing marker is not an
// error; the shed may simply not be initialized yet.
func readMarker(s *Settings) error {
	data, readErr := os.ReadFile(s.MarkerPath())
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return nil
		}

		return fmt.Errorf("cannot read shed marker: %w", readErr)
	}

	s.Sources.Marker = s.MarkerPath()

	return parseMarker(s, string(data))
}

// parseMarker reads "key = value" lines. Unknown keys are preserved in
// s.Extra so a marker rewrite does not lose them.
func parseMarker(s *Settings, text string) error {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "backbone_version":
			n, err := markerInt(key, value)
			if err != nil {
				return err
			}

			s.Backbone = n
		case "max_active_projects":
			n, err := markerInt(key, value)
			if err != nil {
				return err
			}

			s.MaxActiveProjects = n
		case "max_daily_tasks":
			n, err := markerInt(key, value)
			if err != nil {
				return err
			}

			s.MaxDailyTasks = n
		case "loop_sla_hours":
			n, err := markerInt(key, value)
			if err != nil {
				return err
			}

			s.LoopSLAHours = n
		case "stale_loop_days":
			n, err := markerInt(key, value)
			if err != nil {
				return err
			}

			s.StaleLoopDays = n
		default:
			if s.Extra == nil {
				s.Extra = make(map[string]string)
			}

			s.Extra[key] = value
		}
	}

	return nil
}

func markerInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s = %q is not an integer", ErrMarkerInvalid, key, value)
	}

	return n, nil
}

func applyEnv(s *Settings, env map[string]string) error {
	for _, e := range []struct {
		key string
		dst *int
	}{
		{EnvMaxActiveProjects, &s.MaxActiveProjects},
		{EnvMaxDailyTasks, &s.MaxDailyTasks},
		{EnvLoopSLAHours, &s.LoopSLAHours},
		{EnvStaleLoopDays, &s.StaleLoopDays},
	} {
		value, ok := env[e.key]
		if !ok || value == "" {
			continue
		}

		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrEnvInvalid, e.key, value)
		}

		*e.dst = n
	}

	return nil
}

// MarkerContent renders the marker file: known keys in a fixed order,
// then preserved extras sorted by key.
func (s Settings) MarkerContent() string {
	var b strings.Builder

	fmt.Fprintf(&b, "backbone_version = %d\n", s.Backbone)
	fmt.Fprintf(&b, "max_active_projects = %d\n", s.MaxActiveProjects)
	fmt.Fprintf(&b, "max_daily_tasks = %d\n", s.MaxDailyTasks)
	fmt.Fprintf(&b, "loop_sla_hours = %d\n", s.LoopSLAHours)
	fmt.Fprintf(&b, "stale_loop_days = %d\n", s.StaleLoopDays)

	keys := make([]string, 0, len(s.Extra))
	for k := range s.Extra {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	for _, k := range keys {
		fmt.Fprintf(&b, "%s = %s\n", k, s.Extra[k])
	}

	return b.String()
}

// WriteMarker writes the marker file, creating the shed directory if needed.
func (s Settings) WriteMarker() error {
	mkdirErr := os.MkdirAll(s.Root, dirPerms)
	if mkdirErr != nil {
		return fmt.Errorf("cannot create shed directory: %w", mkdirErr)
	}

	return writeFileAtomic(s.MarkerPath(), []byte(s.MarkerContent()))
}

// SetConfig sets one marker key and rewrites the marker file, keeping
// every other key. Known keys must hold integers; anything else lands in
// Extra.
func (s *Settings) SetConfig(key, value string) error {
	parseErr := parseMarker(s, key+" = "+value)
	if parseErr != nil {
		return parseErr
	}

	return s.WriteMarker()
}

// IsInitialized reports whether the shed marker exists.
func (s Settings) IsInitialized() bool {
	info, err := os.Stat(s.MarkerPath())

	return err == nil && !info.IsDir()
}

// RequireInitialized returns an error unless the shed marker exists.
func (s Settings) RequireInitialized() error {
	if !s.IsInitialized() {
		return fmt.Errorf("%w: %s (run: adze init)", ErrNotAShed, s.Root)
	}

	return nil
}

// Path helpers. All return absolute paths under the shed root.

func (s Settings) MarkerPath() string { return filepath.Join(s.Root, Marker) }

func (s Settings) InboxPath() string { return filepath.Join(s.Root, "inbox.md") }

func (s Settings) LoopsDir() string { return filepath.Join(s.Root, "loops") }

func (s Settings) OpenLoopsPath() string { return filepath.Join(s.LoopsDir(), "open.md") }

func (s Settings) ClosedLoopsDir() string { return filepath.Join(s.LoopsDir(), "closed") }

func (s Settings) ClosedLoopsPath() string { return filepath.Join(s.LoopsDir(), "closed.md") }

// ProjectsDir is the projects root. Active project files live directly in it.
func (s Settings) ProjectsDir() string { return filepath.Join(s.Root, "projects") }

func (s Settings) BacklogDir() string { return filepath.Join(s.ProjectsDir(), "backlog") }

func (s Settings) ArchiveDir() string { return filepath.Join(s.ProjectsDir(), "archive") }

func (s Settings) DailyDir() string { return filepath.Join(s.Root, "daily") }

func (s Settings) DailyPath(day time.Time) string {
	return filepath.Join(s.DailyDir(), day.Format(note.DateLayout)+".md")
}

func (s Settings) KnowledgeDir() string { return filepath.Join(s.Root, "knowledge") }

func (s Settings) ReviewsDir() string { return filepath.Join(s.Root, "reviews") }

func (s Settings) StockDir() string { return filepath.Join(s.Root, "stock") }

func (s Settings) DraftsDir() string { return filepath.Join(s.Root, "drafts") }

func (s Settings) SnippetsPath() string {
	return filepath.Join(s.Root, ".vscode", "adzekit.code-snippets")
}

// ProjectPath returns the active-state path for a project slug.
func (s Settings) ProjectPath(slug string) string {
	return filepath.Join(s.ProjectsDir(), slug+".md")
}

func (s Settings) BacklogPath(slug string) string {
	return filepath.Join(s.BacklogDir(), slug+".md")
}

func (s Settings) ArchivePath(slug string) string {
	return filepath.Join(s.ArchiveDir(), slug+".md")
}
