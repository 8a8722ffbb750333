package shed_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdzeKit/AdzeKit/internal/shed"
)

// Contract: with no config file, no marker, and no environment overrides,
// LoadSettings returns the documented defaults rooted at ~/adzekit.
func Test_LoadSettings_Returns_Defaults_When_NothingConfigured(t *testing.T) {
	t.Parallel()

	home := t.TempDir()

	s, err := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: home,
		Env:             map[string]string{"HOME": home},
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "adzekit"), s.Root)
	assert.Equal(t, 1, s.Backbone)
	assert.Equal(t, 3, s.MaxActiveProjects)
	assert.Equal(t, 5, s.MaxDailyTasks)
	assert.Equal(t, 24, s.LoopSLAHours)
	assert.Equal(t, 7, s.StaleLoopDays)
	assert.Empty(t, s.Sources.Global)
	assert.Empty(t, s.Sources.Marker)
}

// Contract: the shed root resolves --shed flag over ADZEKIT_SHED over the
// config file over the ~/adzekit default.
func Test_LoadSettings_Resolves_Shed_By_Precedence(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	flagShed := filepath.Join(home, "from-flag")
	envShed := filepath.Join(home, "from-env")

	cases := []struct {
		name     string
		override string
		env      map[string]string
		want     string
	}{
		{
			name:     "flag beats env",
			override: flagShed,
			env:      map[string]string{"HOME": home, "ADZEKIT_SHED": envShed},
			want:     flagShed,
		},
		{
			name: "env beats default",
			env:  map[string]string{"HOME": home, "ADZEKIT_SHED": envShed},
			want: envShed,
		},
		{
			name: "default is HOME/adzekit",
			env:  map[string]string{"HOME": home},
			want: filepath.Join(home, "adzekit"),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, err := shed.LoadSettings(shed.LoadSettingsInput{
				WorkDirOverride: home,
				ShedOverride:    tc.override,
				Env:             tc.env,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.Root)
		})
	}
}

// Contract: a relative --shed value is resolved against the effective
// working directory.
func Test_LoadSettings_Resolves_Relative_Shed_Against_WorkDir(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()

	s, err := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: workDir,
		ShedOverride:    "kit",
		Env:             map[string]string{"HOME": workDir},
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(workDir, "kit"), s.Root)
}

// Contract: LoadSettings errors when neither HOME nor any shed override is
// available to resolve a root from.
func Test_LoadSettings_Errors_When_ShedUnresolvable(t *testing.T) {
	t.Parallel()

	_, err := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: t.TempDir(),
		Env:             map[string]string{},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, shed.ErrNoShedPath)
}

// Contract: the global config file under $XDG_CONFIG_HOME/adzekit supplies
// shed path and limit overrides, and JSONC comments are accepted.
func Test_LoadSettings_Reads_Global_Config_When_Present(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	xdg := filepath.Join(home, "xdg")
	configDir := filepath.Join(xdg, "adzekit")
	require.NoError(t, os.MkdirAll(configDir, 0o750))

	shedDir := filepath.Join(home, "custom-shed")
	config := `{
	// where the shed lives
	"shed": "` + shedDir + `",
	"max_daily_tasks": 9,
}`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.json"), []byte(config), 0o600))

	s, err := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: home,
		Env:             map[string]string{"HOME": home, "XDG_CONFIG_HOME": xdg},
	})
	require.NoError(t, err)

	assert.Equal(t, shedDir, s.Root)
	assert.Equal(t, 9, s.MaxDailyTasks)
	assert.Equal(t, filepath.Join(configDir, "config.json"), s.Sources.Global)
}

// Contract: an explicitly passed config file must exist.
func Test_LoadSettings_Errors_When_ExplicitConfigMissing(t *testing.T) {
	t.Parallel()

	home := t.TempDir()

	_, err := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: home,
		ConfigPath:      filepath.Join(home, "no-such.json"),
		Env:             map[string]string{"HOME": home},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, shed.ErrConfigFileNotFound)
}

// Contract: malformed JSON in a config file is reported as invalid, not
// silently ignored.
func Test_LoadSettings_Errors_When_ConfigMalformed(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	cfgPath := filepath.Join(home, "config.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{not json"), 0o600))

	_, err := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: home,
		ConfigPath:      cfgPath,
		Env:             map[string]string{"HOME": home},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, shed.ErrConfigInvalid)
}

// Contract: limits in the shed marker override defaults, and environment
// variables override the marker.
func Test_LoadSettings_Applies_Marker_Then_Env(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	shedDir := filepath.Join(home, "shed")
	require.NoError(t, os.MkdirAll(shedDir, 0o750))

	marker := "backbone_version = 1\n" +
		"max_active_projects = 7\n" +
		"max_daily_tasks = 12\n" +
		"loop_sla_hours = 36\n" +
		"stale_loop_days = 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(shedDir, ".adzekit"), []byte(marker), 0o600))

	s, err := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: home,
		ShedOverride:    shedDir,
		Env: map[string]string{
			"HOME":                    home,
			"ADZEKIT_MAX_DAILY_TASKS": "20",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, s.MaxActiveProjects, "from marker")
	assert.Equal(t, 20, s.MaxDailyTasks, "env wins over marker")
	assert.Equal(t, 36, s.LoopSLAHours)
	assert.Equal(t, 3, s.StaleLoopDays)
	assert.Equal(t, filepath.Join(shedDir, ".adzekit"), s.Sources.Marker)
}

// Contract: a marker with only backbone_version leaves the limit defaults
// in place.
func Test_LoadSettings_Keeps_Defaults_When_MarkerSparse(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	shedDir := filepath.Join(home, "shed")
	require.NoError(t, os.MkdirAll(shedDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(shedDir, ".adzekit"), []byte("backbone_version = 1\n"), 0o600))

	s, err := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: home,
		ShedOverride:    shedDir,
		Env:             map[string]string{"HOME": home},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, s.MaxActiveProjects)
	assert.Equal(t, 5, s.MaxDailyTasks)
	assert.Equal(t, 24, s.LoopSLAHours)
	assert.Equal(t, 7, s.StaleLoopDays)
}

// Contract: a non-integer value for a numeric environment override is an
// error, not a silent fallback.
func Test_LoadSettings_Errors_When_EnvNotInteger(t *testing.T) {
	t.Parallel()

	home := t.TempDir()

	_, err := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: home,
		Env: map[string]string{
			"HOME":                        home,
			"ADZEKIT_MAX_ACTIVE_PROJECTS": "lots",
		},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, shed.ErrEnvInvalid)
}

// Contract: a non-integer value for a known marker key is an error.
func Test_LoadSettings_Errors_When_MarkerValueNotInteger(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	shedDir := filepath.Join(home, "shed")
	require.NoError(t, os.MkdirAll(shedDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(shedDir, ".adzekit"), []byte("loop_sla_hours = soon\n"), 0o600))

	_, err := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: home,
		ShedOverride:    shedDir,
		Env:             map[string]string{"HOME": home},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, shed.ErrMarkerInvalid)
}

// Contract: WriteMarker writes every known key with its current value and
// preserves unrecognized keys from the existing marker.
func Test_WriteMarker_Preserves_Custom_Values(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	shedDir := filepath.Join(home, "shed")
	require.NoError(t, os.MkdirAll(shedDir, 0o750))

	existing := "backbone_version = 1\n" +
		"max_active_projects = 7\n" +
		"theme = dark\n"
	require.NoError(t, os.WriteFile(filepath.Join(shedDir, ".adzekit"), []byte(existing), 0o600))

	s, err := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: home,
		ShedOverride:    shedDir,
		Env:             map[string]string{"HOME": home},
	})
	require.NoError(t, err)
	require.NoError(t, s.WriteMarker())

	data, readErr := os.ReadFile(filepath.Join(shedDir, ".adzekit"))
	require.NoError(t, readErr)
	content := string(data)

	assert.Contains(t, content, "backbone_version = 1\n")
	assert.Contains(t, content, "max_active_projects = 7\n")
	assert.Contains(t, content, "max_daily_tasks = 5\n")
	assert.Contains(t, content, "loop_sla_hours = 24\n")
	assert.Contains(t, content, "stale_loop_days = 7\n")
	assert.Contains(t, content, "theme = dark\n")
	assert.True(t, strings.HasPrefix(content, "backbone_version = "), "known keys come first")
}

// Contract: SetConfig rewrites one marker key and leaves the rest alone.
func Test_SetConfig_Updates_One_Key_And_Keeps_Rest(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	shedDir := filepath.Join(home, "shed")
	require.NoError(t, os.MkdirAll(shedDir, 0o750))

	existing := "backbone_version = 1\n" +
		"max_active_projects = 7\n" +
		"theme = dark\n"
	require.NoError(t, os.WriteFile(filepath.Join(shedDir, ".adzekit"), []byte(existing), 0o600))

	s, err := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: home,
		ShedOverride:    shedDir,
		Env:             map[string]string{"HOME": home},
	})
	require.NoError(t, err)
	require.NoError(t, s.SetConfig("rclone_remote", "gdrive:shed"))

	data, readErr := os.ReadFile(filepath.Join(shedDir, ".adzekit"))
	require.NoError(t, readErr)
	content := string(data)

	assert.Contains(t, content, "max_active_projects = 7\n")
	assert.Contains(t, content, "theme = dark\n")
	assert.Contains(t, content, "rclone_remote = gdrive:shed\n")
}

// Contract: SetConfig rejects non-integer values for known numeric keys
// and leaves the marker untouched.
func Test_SetConfig_Errors_When_KnownKeyNotInteger(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	shedDir := filepath.Join(home, "shed")
	require.NoError(t, os.MkdirAll(shedDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(shedDir, ".adzekit"), []byte("backbone_version = 1\n"), 0o600))

	s, err := shed.LoadSettings(shed.LoadSettingsInput{
		WorkDirOverride: home,
		ShedOverride:    shedDir,
		Env:             map[string]string{"HOME": home},
	})
	require.NoError(t, err)

	setErr := s.SetConfig("max_daily_tasks", "plenty")
	require.Error(t, setErr)
	assert.ErrorIs(t, setErr, shed.ErrMarkerInvalid)

	data, readErr := os.ReadFile(filepath.Join(shedDir, ".adzekit"))
	require.NoError(t, readErr)
	assert.Equal(t, "backbone_version = 1\n", string(data))
}

// Contract: a directory without the marker file is not an initialized
// shed, and RequireInitialized says so.
func Test_RequireInitialized_Errors_When_NoMarker(t *testing.T) {
	t.Parallel()

	s := shed.DefaultSettings()
	s.Root = t.TempDir()

	assert.False(t, s.IsInitialized())

	err := s.RequireInitialized()
	require.Error(t, err)
	assert.True(t, errors.Is(err, shed.ErrNotAShed))
	assert.Contains(t, err.Error(), "not an AdzeKit shed")
}

// Contract: WriteMarker initializes the shed.
func Test_RequireInitialized_Passes_When_MarkerWritten(t *testing.T) {
	t.Parallel()

	s := shed.DefaultSettings()
	s.Root = filepath.Join(t.TempDir(), "shed")

	require.NoError(t, s.WriteMarker())
	assert.True(t, s.IsInitialized())
	assert.NoError(t, s.RequireInitialized())
}

// Contract: active projects live directly in the projects root, not in a
// separate active/ subdirectory.
func Test_Settings_Active_Projects_Live_In_ProjectsRoot(t *testing.T) {
	t.Parallel()

	s := shed.DefaultSettings()
	s.Root = "/shed"

	assert.Equal(t, filepath.Join(s.ProjectsDir(), "x.md"), s.ProjectPath("x"))
	assert.Equal(t, filepath.Join(s.ProjectsDir(), "backlog", "x.md"), s.BacklogPath("x"))
	assert.Equal(t, filepath.Join(s.ProjectsDir(), "archive", "x.md"), s.ArchivePath("x"))
}
